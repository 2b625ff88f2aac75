package license

import "time"

// License is an export license issued to a registered exporter. Records are
// never mutated or deleted by the workflow core; validity is derived from the
// expiry date, not stored.
type License struct {
	ID           int64
	ExporterID   int64
	Number       string
	IssueDate    time.Time
	ExpiryDate   time.Time
	SignatureRef string
}

// IsValid reports whether the license has not expired as of now. The expiry
// day itself still counts as valid.
func (l *License) IsValid(now time.Time) bool {
	return !DateOf(l.ExpiryDate).Before(DateOf(now))
}

// RemainingDays returns whole days until expiry as of now. Negative when
// already expired.
func (l *License) RemainingDays(now time.Time) int {
	return int(DateOf(l.ExpiryDate).Sub(DateOf(now)).Hours() / 24)
}

// DateOf truncates a timestamp to its calendar date at UTC midnight. Licenses
// carry calendar dates with no time component, so every comparison goes
// through this.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidityReport answers a point-in-time validity question. Callers render
// "expires on" or "expired on" from the same expiry date.
type ValidityReport struct {
	LicenseNumber string
	Valid         bool
	ExpiryDate    time.Time
}
