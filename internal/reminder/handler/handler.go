package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tradegate/internal/reminder"
	"tradegate/internal/transport/http/shared"
	dErrors "tradegate/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// Scanner defines the renewal scan the transport needs.
type Scanner interface {
	Scan(ctx context.Context, horizonDays int) ([]reminder.Fact, error)
}

// Handler exposes on-demand renewal scans. The scheduled advisor worker uses
// the same scanner; this endpoint lets operators look at the current window.
type Handler struct {
	logger             *slog.Logger
	scanner            Scanner
	defaultHorizonDays int
}

func New(scanner Scanner, logger *slog.Logger, defaultHorizonDays int) *Handler {
	return &Handler{logger: logger, scanner: scanner, defaultHorizonDays: defaultHorizonDays}
}

// Register registers the reminder routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reminders", h.handleScan)
}

type reminderResponse struct {
	LicenseNumber string `json:"license_number"`
	ExporterID    int64  `json:"exporter_id"`
	RemainingDays int    `json:"remaining_days"`
	ExpiryDate    string `json:"expiry_date"`
	Message       string `json:"message"`
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	horizon := h.defaultHorizonDays
	if raw := r.URL.Query().Get("horizon_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "horizon_days must be numeric"))
			return
		}
		horizon = parsed
	}

	facts, err := h.scanner.Scan(r.Context(), horizon)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	out := make([]reminderResponse, 0, len(facts))
	for _, fact := range facts {
		out = append(out, reminderResponse{
			LicenseNumber: fact.LicenseNumber,
			ExporterID:    fact.ExporterID,
			RemainingDays: fact.RemainingDays,
			ExpiryDate:    fact.ExpiryDate.Format(dateLayout),
			Message:       fact.Message(),
		})
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
