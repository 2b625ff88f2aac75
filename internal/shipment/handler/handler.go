package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tradegate/internal/shipment"
	"tradegate/internal/transport/http/shared"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/requestcontext"
)

const dateLayout = "2006-01-02"

// Service defines the shipment operations the transport needs.
type Service interface {
	Admit(ctx context.Context, in shipment.AdmitInput) (*shipment.Shipment, error)
	ByID(ctx context.Context, id int64) (*shipment.Shipment, error)
	ByLicense(ctx context.Context, licenseID int64) ([]*shipment.Shipment, error)
	List(ctx context.Context) ([]*shipment.Shipment, error)
}

// Handler handles shipment admission endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the shipment routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/shipments", h.handleAdmit)
	r.Get("/shipments", h.handleList)
	r.Get("/shipments/{id}", h.handleByID)
}

type admitRequest struct {
	LicenseID    int64   `json:"license_id"`
	ProductName  string  `json:"product_name"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Quantity     float64 `json:"quantity"`
	TotalCost    float64 `json:"total_cost"`
	ExportDate   string  `json:"export_date,omitempty"`
	HasInsurance bool    `json:"has_insurance"`
}

type shipmentResponse struct {
	ShipmentID   int64   `json:"shipment_id"`
	LicenseID    int64   `json:"license_id"`
	ProductName  string  `json:"product_name"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Quantity     float64 `json:"quantity"`
	TotalCost    float64 `json:"total_cost"`
	ExportDate   string  `json:"export_date,omitempty"`
	HasInsurance bool    `json:"has_insurance"`
	Status       string  `json:"status"`
}

func toShipmentResponse(s *shipment.Shipment) shipmentResponse {
	resp := shipmentResponse{
		ShipmentID:   s.ID,
		LicenseID:    s.LicenseID,
		ProductName:  s.ProductName,
		Origin:       s.Origin,
		Destination:  s.Destination,
		Quantity:     s.Quantity,
		TotalCost:    s.TotalCost,
		HasInsurance: s.HasInsurance,
		Status:       string(s.Status),
	}
	if !s.ExportDate.IsZero() {
		resp.ExportDate = s.ExportDate.Format(dateLayout)
	}
	return resp
}

func (h *Handler) handleAdmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req admitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	var exportDate time.Time
	if req.ExportDate != "" {
		parsed, err := time.Parse(dateLayout, req.ExportDate)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "export_date must be formatted YYYY-MM-DD"))
			return
		}
		exportDate = parsed
	}

	shp, err := h.service.Admit(ctx, shipment.AdmitInput{
		LicenseID:    req.LicenseID,
		ProductName:  req.ProductName,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Quantity:     req.Quantity,
		TotalCost:    req.TotalCost,
		ExportDate:   exportDate,
		HasInsurance: req.HasInsurance,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "shipment admission failed",
			"request_id", requestcontext.RequestID(ctx),
			"license_id", req.LicenseID,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "shipment admitted",
		"request_id", requestcontext.RequestID(ctx),
		"shipment_id", shp.ID,
		"status", string(shp.Status),
	)
	shared.WriteJSON(w, http.StatusCreated, toShipmentResponse(shp))
}

func (h *Handler) handleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "shipment id must be numeric"))
		return
	}
	shp, err := h.service.ByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toShipmentResponse(shp))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		all []*shipment.Shipment
		err error
	)
	if raw := r.URL.Query().Get("license_id"); raw != "" {
		licenseID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "license_id must be numeric"))
			return
		}
		all, err = h.service.ByLicense(r.Context(), licenseID)
	} else {
		all, err = h.service.List(r.Context())
	}
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	out := make([]shipmentResponse, 0, len(all))
	for _, s := range all {
		out = append(out, toShipmentResponse(s))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
