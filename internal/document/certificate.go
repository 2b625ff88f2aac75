package document

import (
	"context"
	"errors"
	"strings"
	"time"

	"tradegate/internal/exporter"
	"tradegate/internal/license"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/platform/sentinel"
)

// CertificateData is everything the external certificate renderer needs.
// Rendering itself happens outside this system.
type CertificateData struct {
	LicenseNumber string    `json:"license_number"`
	ExporterID    int64     `json:"exporter_id"`
	FirmName      string    `json:"firm_name"`
	IssueDate     time.Time `json:"issue_date"`
	ExpiryDate    time.Time `json:"expiry_date"`
	SignatureRef  string    `json:"signature_ref"`
}

// LicenseSource resolves a license by number. The license store satisfies it.
type LicenseSource interface {
	FindByNumber(ctx context.Context, number string) (*license.License, error)
}

// ExporterSource resolves an exporter by id. The exporter store satisfies it.
type ExporterSource interface {
	FindByID(ctx context.Context, id int64) (*exporter.Exporter, error)
}

// Assembler joins license and exporter records into certificate data.
type Assembler struct {
	licenses  LicenseSource
	exporters ExporterSource
}

func NewAssembler(licenses LicenseSource, exporters ExporterSource) *Assembler {
	return &Assembler{licenses: licenses, exporters: exporters}
}

// BuildCertificateData assembles the renderer payload for a license number.
// A license row pointing at a missing exporter is an internal inconsistency,
// not a not-found.
func (a *Assembler) BuildCertificateData(ctx context.Context, licenseNumber string) (*CertificateData, error) {
	licenseNumber = strings.TrimSpace(licenseNumber)
	if licenseNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "license number is required")
	}

	l, err := a.licenses.FindByNumber(ctx, licenseNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "license %s was not found", licenseNumber)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up license")
	}

	exp, err := a.exporters.FindByID(ctx, l.ExporterID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeInternal,
				"license %s references missing exporter %d", licenseNumber, l.ExporterID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up exporter")
	}

	return &CertificateData{
		LicenseNumber: l.Number,
		ExporterID:    exp.ID,
		FirmName:      exp.FirmName,
		IssueDate:     l.IssueDate,
		ExpiryDate:    l.ExpiryDate,
		SignatureRef:  l.SignatureRef,
	}, nil
}
