package driverbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/types/name"
)

// Driver represents a driver in the system. A driver is backed 1:1 by a
// user with the DRIVER role. Location stays nil until the first location
// update comes in.
type Driver struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CompanyID uuid.UUID
	License   name.Name
	VehicleID *uuid.UUID
	Online    bool
	Approved  bool
	Location  *geo.Point
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available reports whether the driver is eligible for assignment.
func (d Driver) Available() bool {
	return d.Online && d.Approved
}

// NewDriver contains information needed to create a new driver.
type NewDriver struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	License   name.Name
	VehicleID *uuid.UUID
}

// UpdateDriver contains information needed to update a driver.
type UpdateDriver struct {
	License   *name.Name
	VehicleID *uuid.UUID
	Online    *bool
	Approved  *bool
}
