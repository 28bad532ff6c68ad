package bookingbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/types/bookingstatus"
)

type QueryFilter struct {
	ID             *uuid.UUID
	CompanyID      *uuid.UUID
	CustomerID     *uuid.UUID
	DriverID       *uuid.UUID
	Status         *bookingstatus.Status
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
