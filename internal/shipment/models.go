package shipment

import "time"

// Status is the lifecycle state of a shipment.
type Status string

const (
	// StatusPending is the staging state an insured shipment passes through
	// inside the admission transaction. It is never observable from outside.
	StatusPending Status = "PENDING"
	// StatusReadyToShip is the final admission state for insured shipments.
	StatusReadyToShip Status = "READY_TO_SHIP"
	// StatusShipped and StatusCleared are reached only by downstream
	// processes (shipping, customs clearance), never by admission.
	StatusShipped Status = "SHIPPED"
	StatusCleared Status = "CLEARED"
	// StatusCancelled is the final admission state for uninsured shipments.
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReadyToShip, StatusShipped, StatusCleared, StatusCancelled:
		return true
	default:
		return false
	}
}

// Shipment is a consignment admitted against a license.
type Shipment struct {
	ID           int64
	LicenseID    int64
	ProductName  string
	Origin       string
	Destination  string
	Quantity     float64
	TotalCost    float64
	ExportDate   time.Time
	HasInsurance bool
	Status       Status
}
