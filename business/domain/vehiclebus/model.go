package vehiclebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/plate"
)

// Vehicle represents a fleet vehicle. Plates are unique across all
// companies, not per tenant.
type Vehicle struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Plate     plate.Plate
	Type      name.Name
	Model     name.Null
	Color     name.Null
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewVehicle contains information needed to create a new vehicle.
type NewVehicle struct {
	CompanyID uuid.UUID
	Plate     plate.Plate
	Type      name.Name
	Model     name.Null
	Color     name.Null
}

// UpdateVehicle contains information needed to update a vehicle.
type UpdateVehicle struct {
	Plate  *plate.Plate
	Type   *name.Name
	Model  *name.Null
	Color  *name.Null
	Active *bool
}
