package companybus

import (
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/phone"
)

// Company represents a tenant in the system. Every vehicle, driver,
// booking, and non-admin user belongs to exactly one company.
type Company struct {
	ID        uuid.UUID
	Name      name.Name
	Domain    string
	Subdomain string
	Phone     phone.Null
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCompany contains information needed to create a new company.
type NewCompany struct {
	Name      name.Name
	Domain    string
	Subdomain string
	Phone     phone.Null
}

// UpdateCompany contains information needed to update a company.
type UpdateCompany struct {
	Name      *name.Name
	Domain    *string
	Subdomain *string
	Phone     *phone.Null
	Enabled   *bool
}
