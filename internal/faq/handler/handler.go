package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradegate/internal/faq"
	"tradegate/internal/transport/http/shared"
	dErrors "tradegate/pkg/domain-errors"
)

// Service defines the FAQ operations the transport needs.
type Service interface {
	Answer(ctx context.Context, query string) (string, error)
	Add(ctx context.Context, question, answer string) (*faq.FAQ, error)
	List(ctx context.Context) ([]*faq.FAQ, error)
}

// Handler handles FAQ endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the FAQ routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/faq/ask", h.handleAsk)
	r.Post("/faq", h.handleAdd)
	r.Get("/faq", h.handleList)
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type addRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type faqResponse struct {
	FAQID    int64  `json:"faq_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	answer, err := h.service.Answer(r.Context(), req.Question)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, askResponse{Answer: answer})
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	f, err := h.service.Add(r.Context(), req.Question, req.Answer)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, faqResponse{FAQID: f.ID, Question: f.Question, Answer: f.Answer})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]faqResponse, 0, len(all))
	for _, f := range all {
		out = append(out, faqResponse{FAQID: f.ID, Question: f.Question, Answer: f.Answer})
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
