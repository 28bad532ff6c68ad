package vehiclebus

import (
	"github.com/google/uuid"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/plate"
)

type QueryFilter struct {
	ID        *uuid.UUID
	CompanyID *uuid.UUID
	Plate     *plate.Plate
	Type      *name.Name
	Active    *bool
}
