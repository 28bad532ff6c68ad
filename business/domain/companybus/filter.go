package companybus

import (
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/types/name"
)

type QueryFilter struct {
	ID             *uuid.UUID
	Name           *name.Name
	Domain         *string
	Enabled        *bool
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
