package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradegate/internal/exporter"
	"tradegate/internal/transport/http/shared"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/requestcontext"
)

// Service defines the exporter operations the transport needs.
type Service interface {
	Register(ctx context.Context, in exporter.RegisterInput) (*exporter.Exporter, error)
	ByIEC(ctx context.Context, iec string) (*exporter.Exporter, error)
	List(ctx context.Context) ([]*exporter.Exporter, error)
}

// Handler handles exporter registry endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the exporter routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/exporters", h.handleRegister)
	r.Get("/exporters", h.handleList)
	r.Get("/exporters/{iec}", h.handleByIEC)
}

type registerRequest struct {
	FirmName      string `json:"firm_name"`
	IECNumber     string `json:"iec_number"`
	ContactPerson string `json:"contact_person"`
	Country       string `json:"country"`
}

type exporterResponse struct {
	ExporterID    int64  `json:"exporter_id"`
	FirmName      string `json:"firm_name"`
	IECNumber     string `json:"iec_number"`
	ContactPerson string `json:"contact_person"`
	Country       string `json:"country"`
}

func toExporterResponse(e *exporter.Exporter) exporterResponse {
	return exporterResponse{
		ExporterID:    e.ID,
		FirmName:      e.FirmName,
		IECNumber:     e.IEC,
		ContactPerson: e.ContactPerson,
		Country:       e.Country,
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	e, err := h.service.Register(ctx, exporter.RegisterInput{
		FirmName:      req.FirmName,
		IEC:           req.IECNumber,
		ContactPerson: req.ContactPerson,
		Country:       req.Country,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "exporter registration failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, toExporterResponse(e))
}

func (h *Handler) handleByIEC(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.ByIEC(r.Context(), chi.URLParam(r, "iec"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toExporterResponse(e))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]exporterResponse, 0, len(all))
	for _, e := range all {
		out = append(out, toExporterResponse(e))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
