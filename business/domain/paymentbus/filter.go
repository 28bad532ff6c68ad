package paymentbus

import (
	"github.com/google/uuid"
	"github.com/veltrip/platform/business/types/paymentstatus"
)

type QueryFilter struct {
	ID         *uuid.UUID
	BookingID  *uuid.UUID
	CompanyID  *uuid.UUID
	CustomerID *uuid.UUID
	Status     *paymentstatus.Status
}
