package driverbus

import (
	"github.com/google/uuid"
)

type QueryFilter struct {
	ID        *uuid.UUID
	UserID    *uuid.UUID
	CompanyID *uuid.UUID
	Online    *bool
	Approved  *bool
}
