package bookingbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/types/bookingstatus"
	"github.com/veltrip/platform/business/types/role"
)

// Stop is one end of a trip.
type Stop struct {
	Point   geo.Point
	Address string
}

// Booking represents a single ride request moving through its lifecycle.
// StartedAt, CompletedAt, and CancelledAt are stamped at most once; at most
// one of CompletedAt/CancelledAt is ever set.
type Booking struct {
	ID                 uuid.UUID
	CompanyID          uuid.UUID
	CustomerID         uuid.UUID
	DriverID           *uuid.UUID
	Pickup             Stop
	Drop               Stop
	DistanceKm         float64
	EstimatedFare      float64
	ActualFare         *float64
	Status             bookingstatus.Status
	ScheduledAt        *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	Rating             *int
	Feedback           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewBooking contains information needed to create a new booking. DriverID
// set means the caller chose a driver explicitly and the availability
// search is skipped.
type NewBooking struct {
	CompanyID   uuid.UUID
	CustomerID  uuid.UUID
	DriverID    *uuid.UUID
	Pickup      Stop
	Drop        Stop
	ScheduledAt *time.Time
}

// UpdateBooking contains information needed to update a booking. Pickup and
// Drop must be supplied together for the distance and fare to be
// recomputed.
type UpdateBooking struct {
	Pickup             *Stop
	Drop               *Stop
	Status             *bookingstatus.Status
	ActualFare         *float64
	ScheduledAt        *time.Time
	CancellationReason *string
	Rating             *int
	Feedback           *string
}

// =============================================================================

// Actor identifies the caller of a booking operation for ownership and
// tenant checks.
type Actor struct {
	UserID    uuid.UUID
	Role      role.Role
	CompanyID uuid.UUID
}

// CanRead reports whether the actor may see the booking. Customers see
// their own bookings, companies their tenant's, admins everything.
func (a Actor) CanRead(bkg Booking) bool {
	switch {
	case a.Role.Equal(role.Admin):
		return true
	case a.Role.Equal(role.Customer):
		return bkg.CustomerID == a.UserID
	default:
		return bkg.CompanyID == a.CompanyID
	}
}

// CanRemove reports whether the actor may hard-delete the booking. The
// state machine rules apply separately.
func (a Actor) CanRemove(bkg Booking) bool {
	if a.Role.Equal(role.Admin) {
		return true
	}

	return a.Role.Equal(role.Company) && bkg.CompanyID == a.CompanyID
}
