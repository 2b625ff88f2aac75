package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tradegate/internal/invoice"
	"tradegate/internal/transport/http/shared"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/requestcontext"
)

const dateLayout = "2006-01-02"

// Service defines the invoice operations the transport needs.
type Service interface {
	Create(ctx context.Context, shipmentID int64, amount float64) (*invoice.Invoice, error)
	MarkPaid(ctx context.Context, id int64) (*invoice.Invoice, error)
	ByID(ctx context.Context, id int64) (*invoice.Invoice, error)
	ByShipment(ctx context.Context, shipmentID int64) (*invoice.Invoice, error)
	List(ctx context.Context) ([]*invoice.Invoice, error)
}

// Handler handles invoice endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the invoice routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/invoices", h.handleCreate)
	r.Get("/invoices", h.handleList)
	r.Get("/invoices/{id}", h.handleByID)
	r.Post("/invoices/{id}/payment", h.handleMarkPaid)
}

type createRequest struct {
	ShipmentID int64   `json:"shipment_id"`
	Amount     float64 `json:"amount"`
}

type invoiceResponse struct {
	InvoiceID     int64   `json:"invoice_id"`
	ShipmentID    int64   `json:"shipment_id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	PaymentStatus string  `json:"payment_status"`
}

func toInvoiceResponse(inv *invoice.Invoice) invoiceResponse {
	resp := invoiceResponse{
		InvoiceID:     inv.ID,
		ShipmentID:    inv.ShipmentID,
		Amount:        inv.Amount,
		PaymentStatus: string(inv.PaymentStatus),
	}
	if !inv.PaymentDate.IsZero() {
		resp.PaymentDate = inv.PaymentDate.Format(dateLayout)
	}
	return resp
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	inv, err := h.service.Create(ctx, req.ShipmentID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "invoice creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"shipment_id", req.ShipmentID,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, toInvoiceResponse(inv))
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invoice id must be numeric"))
		return
	}

	inv, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
}

func (h *Handler) handleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invoice id must be numeric"))
		return
	}
	inv, err := h.service.ByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("shipment_id"); raw != "" {
		shipmentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "shipment_id must be numeric"))
			return
		}
		inv, err := h.service.ByShipment(r.Context(), shipmentID)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		shared.WriteJSON(w, http.StatusOK, []invoiceResponse{toInvoiceResponse(inv)})
		return
	}

	all, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]invoiceResponse, 0, len(all))
	for _, inv := range all {
		out = append(out, toInvoiceResponse(inv))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
