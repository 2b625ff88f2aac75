package invoice

import "time"

// PaymentStatus is the settlement state of an invoice.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	// PaymentOverdue is applied by the back-office dunning process, never by
	// this service.
	PaymentOverdue PaymentStatus = "OVERDUE"
)

// Invoice bills a single shipment. PaymentDate is zero until the invoice is
// marked paid.
type Invoice struct {
	ID            int64
	ShipmentID    int64
	Amount        float64
	PaymentDate   time.Time
	PaymentStatus PaymentStatus
}
