package paymentbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/types/paymentmethod"
	"github.com/veltrip/platform/business/types/paymentstatus"
)

// Payment represents a payment record for a completed booking. Gateway
// integration is out of scope; only the record and its status live here.
type Payment struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	CompanyID  uuid.UUID
	CustomerID uuid.UUID
	Amount     float64
	Method     paymentmethod.Method
	Status     paymentstatus.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPayment contains information needed to create a new payment. A nil
// Amount falls back to the booking's estimated fare.
type NewPayment struct {
	BookingID uuid.UUID
	Amount    *float64
	Method    paymentmethod.Method
}
