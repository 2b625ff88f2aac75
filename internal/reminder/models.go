package reminder

import (
	"fmt"
	"time"
)

// Fact is one renewal reminder: a license inside the renewal horizon,
// together with everything an advisor channel needs to act on it.
type Fact struct {
	LicenseNumber string    `json:"license_number"`
	ExporterID    int64     `json:"exporter_id"`
	RemainingDays int       `json:"remaining_days"`
	ExpiryDate    time.Time `json:"expiry_date"`
}

// Message renders the human-readable reminder line. The wording is part of
// the downstream contract; notification templates match on it.
func (f Fact) Message() string {
	return fmt.Sprintf(
		"REMINDER: License %s (Exporter ID: %d) will expire in %d days (%s). Please renew immediately.",
		f.LicenseNumber, f.ExporterID, f.RemainingDays, f.ExpiryDate.Format("2006-01-02"))
}
