package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/role"
)

type QueryFilter struct {
	ID             *uuid.UUID
	CompanyID      *uuid.UUID
	Name           *name.Name
	Email          *mail.Address
	Role           *role.Role
	Enabled        *bool
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
