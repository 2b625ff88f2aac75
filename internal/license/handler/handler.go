package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradegate/internal/document"
	"tradegate/internal/license"
	"tradegate/internal/transport/http/shared"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/requestcontext"
)

const dateLayout = "2006-01-02"

// Service defines the license operations the transport needs.
type Service interface {
	Issue(ctx context.Context, iecNumber string, expiryPeriodDays int) (*license.License, error)
	CheckValidity(ctx context.Context, licenseNumber string) (*license.ValidityReport, error)
	ByNumber(ctx context.Context, licenseNumber string) (*license.License, error)
	List(ctx context.Context) ([]*license.License, error)
}

// CertificateBuilder assembles the payload for the external certificate
// renderer.
type CertificateBuilder interface {
	BuildCertificateData(ctx context.Context, licenseNumber string) (*document.CertificateData, error)
}

// Handler handles license issuance, validity and certificate endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	certificates CertificateBuilder
}

func New(service Service, certificates CertificateBuilder, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service, certificates: certificates}
}

// Register registers the license routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/licenses", h.handleIssue)
	r.Get("/licenses", h.handleList)
	r.Get("/licenses/{number}", h.handleByNumber)
	r.Get("/licenses/{number}/validity", h.handleValidity)
	r.Get("/licenses/{number}/certificate", h.handleCertificate)
}

type issueRequest struct {
	IECNumber        string `json:"iec_number"`
	ExpiryPeriodDays int    `json:"expiry_period_days"`
}

type licenseResponse struct {
	LicenseID     int64  `json:"license_id"`
	ExporterID    int64  `json:"exporter_id"`
	LicenseNumber string `json:"license_number"`
	IssueDate     string `json:"issue_date"`
	ExpiryDate    string `json:"expiry_date"`
	SignatureRef  string `json:"signature_ref"`
}

func toLicenseResponse(l *license.License) licenseResponse {
	return licenseResponse{
		LicenseID:     l.ID,
		ExporterID:    l.ExporterID,
		LicenseNumber: l.Number,
		IssueDate:     l.IssueDate.Format(dateLayout),
		ExpiryDate:    l.ExpiryDate.Format(dateLayout),
		SignatureRef:  l.SignatureRef,
	}
}

type validityResponse struct {
	LicenseNumber string `json:"license_number"`
	Valid         bool   `json:"valid"`
	ExpiryDate    string `json:"expiry_date"`
}

type certificateResponse struct {
	LicenseNumber string `json:"license_number"`
	ExporterID    int64  `json:"exporter_id"`
	FirmName      string `json:"firm_name"`
	IssueDate     string `json:"issue_date"`
	ExpiryDate    string `json:"expiry_date"`
	SignatureRef  string `json:"signature_ref"`
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	l, err := h.service.Issue(ctx, req.IECNumber, req.ExpiryPeriodDays)
	if err != nil {
		h.logger.WarnContext(ctx, "license issuance failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "license issued",
		"request_id", requestcontext.RequestID(ctx),
		"license_number", l.Number,
		"exporter_id", l.ExporterID,
	)
	shared.WriteJSON(w, http.StatusCreated, toLicenseResponse(l))
}

func (h *Handler) handleByNumber(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.ByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toLicenseResponse(l))
}

func (h *Handler) handleValidity(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.CheckValidity(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, validityResponse{
		LicenseNumber: report.LicenseNumber,
		Valid:         report.Valid,
		ExpiryDate:    report.ExpiryDate.Format(dateLayout),
	})
}

func (h *Handler) handleCertificate(w http.ResponseWriter, r *http.Request) {
	data, err := h.certificates.BuildCertificateData(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, certificateResponse{
		LicenseNumber: data.LicenseNumber,
		ExporterID:    data.ExporterID,
		FirmName:      data.FirmName,
		IssueDate:     data.IssueDate.Format(dateLayout),
		ExpiryDate:    data.ExpiryDate.Format(dateLayout),
		SignatureRef:  data.SignatureRef,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]licenseResponse, 0, len(all))
	for _, l := range all {
		out = append(out, toLicenseResponse(l))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
