// Package bookingbus provides business access to booking data and owns the
// booking lifecycle: creation with fare estimation and driver auto
// assignment, the status state machine, and deletion rules.
package bookingbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/fare"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/types/bookingstatus"
	"github.com/veltrip/platform/foundation/otel"
)

var (
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidAssignment = errors.New("driver not assignable")
	ErrNotOwner          = errors.New("caller does not own the booking")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, bkg Booking) error
	Update(ctx context.Context, bkg Booking) error
	Delete(ctx context.Context, bkg Booking) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Booking, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, bookingID uuid.UUID) (Booking, error)
}

type Core struct {
	driverBus *driverbus.Core
	storer    Storer
}

func NewCore(driverBus *driverbus.Core, storer Storer) *Core {
	return &Core{
		driverBus: driverBus,
		storer:    storer,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	driverBus, err := c.driverBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(driverBus, storer), nil
}

// Create opens a booking in PENDING. Distance and estimated fare are
// computed from the pickup and drop points. Without an explicit driver the
// nearest available driver of the company is assigned; zero available
// drivers leaves the booking unassigned, which is not an error.
func (c *Core) Create(ctx context.Context, nb NewBooking) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.create")
	defer span.End()

	distance := geo.DistanceKm(nb.Pickup.Point, nb.Drop.Point)
	estimated := fare.Estimate(distance)

	driverID := nb.DriverID
	if driverID == nil {
		drvs, err := c.driverBus.FindAvailable(ctx, nb.CompanyID, nb.Pickup.Point)
		if err != nil {
			return Booking{}, fmt.Errorf("findavailable: %w", err)
		}
		if len(drvs) > 0 {
			driverID = &drvs[0].ID
		}
	} else {
		drv, err := c.driverBus.QueryByID(ctx, *driverID)
		if err != nil {
			return Booking{}, fmt.Errorf("query driver: %w", err)
		}
		if drv.CompanyID != nb.CompanyID || !drv.Available() {
			return Booking{}, ErrInvalidAssignment
		}
	}

	now := time.Now()

	bkg := Booking{
		ID:            uuid.New(),
		CompanyID:     nb.CompanyID,
		CustomerID:    nb.CustomerID,
		DriverID:      driverID,
		Pickup:        nb.Pickup,
		Drop:          nb.Drop,
		DistanceKm:    distance,
		EstimatedFare: estimated,
		Status:        bookingstatus.Pending,
		ScheduledAt:   nb.ScheduledAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storer.Create(ctx, bkg); err != nil {
		return Booking{}, fmt.Errorf("create: %w", err)
	}

	return bkg, nil
}

// Update applies a field patch. Status changes stamp their lifecycle
// timestamps exactly once; re-sending a status the booking already has is a
// no-op for the timestamp. Setting COMPLETED fills the actual fare from the
// estimate when the caller supplies none. Resupplying both stops recomputes
// distance and estimated fare. A terminal booking rejects any status
// change.
func (c *Core) Update(ctx context.Context, bkg Booking, ub UpdateBooking) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.update")
	defer span.End()

	if ub.Status != nil && bkg.Status.Terminal() && !bkg.Status.Equal(*ub.Status) {
		return Booking{}, fmt.Errorf("status %s to %s: %w", bkg.Status, *ub.Status, ErrInvalidTransition)
	}

	if ub.Pickup != nil {
		bkg.Pickup = *ub.Pickup
	}

	if ub.Drop != nil {
		bkg.Drop = *ub.Drop
	}

	if ub.Pickup != nil && ub.Drop != nil {
		bkg.DistanceKm = geo.DistanceKm(bkg.Pickup.Point, bkg.Drop.Point)
		bkg.EstimatedFare = fare.Estimate(bkg.DistanceKm)
	}

	if ub.ScheduledAt != nil {
		bkg.ScheduledAt = ub.ScheduledAt
	}

	if ub.ActualFare != nil {
		bkg.ActualFare = ub.ActualFare
	}

	if ub.CancellationReason != nil {
		bkg.CancellationReason = *ub.CancellationReason
	}

	if ub.Rating != nil {
		bkg.Rating = ub.Rating
	}

	if ub.Feedback != nil {
		bkg.Feedback = *ub.Feedback
	}

	now := time.Now()

	if ub.Status != nil {
		bkg.Status = *ub.Status

		switch {
		case bkg.Status.Equal(bookingstatus.InProgress) && bkg.StartedAt == nil:
			bkg.StartedAt = &now

		case bkg.Status.Equal(bookingstatus.Completed) && bkg.CompletedAt == nil:
			bkg.CompletedAt = &now
			if bkg.ActualFare == nil {
				estimated := bkg.EstimatedFare
				bkg.ActualFare = &estimated
			}

		case bkg.Status.Equal(bookingstatus.Cancelled) && bkg.CancelledAt == nil:
			bkg.CancelledAt = &now
		}
	}

	bkg.UpdatedAt = now

	if err := c.storer.Update(ctx, bkg); err != nil {
		return Booking{}, fmt.Errorf("update: %w", err)
	}

	return bkg, nil
}

// Confirm moves a PENDING booking to ACCEPTED. Any other current status is
// rejected.
func (c *Core) Confirm(ctx context.Context, bkg Booking) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.confirm")
	defer span.End()

	if !bkg.Status.Equal(bookingstatus.Pending) {
		return Booking{}, fmt.Errorf("confirm from %s: %w", bkg.Status, ErrInvalidTransition)
	}

	bkg.Status = bookingstatus.Accepted
	bkg.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, bkg); err != nil {
		return Booking{}, fmt.Errorf("update: %w", err)
	}

	return bkg, nil
}

// AssignDriver places the driver on the booking. The driver must belong to
// the booking's company and be online and approved. Assignment to a PENDING
// booking also accepts it; any other non-terminal status is preserved.
func (c *Core) AssignDriver(ctx context.Context, bkg Booking, drv driverbus.Driver) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.assignDriver")
	defer span.End()

	if bkg.Status.Terminal() {
		return Booking{}, fmt.Errorf("assign on %s: %w", bkg.Status, ErrInvalidTransition)
	}

	if drv.CompanyID != bkg.CompanyID || !drv.Available() {
		return Booking{}, ErrInvalidAssignment
	}

	bkg.DriverID = &drv.ID
	if bkg.Status.Equal(bookingstatus.Pending) {
		bkg.Status = bookingstatus.Accepted
	}
	bkg.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, bkg); err != nil {
		return Booking{}, fmt.Errorf("update: %w", err)
	}

	return bkg, nil
}

// Cancel is the customer-facing wrapper over Update. Only the booking's
// customer may cancel, and a COMPLETED booking cannot be cancelled.
func (c *Core) Cancel(ctx context.Context, callerID uuid.UUID, bkg Booking, reason string) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.cancel")
	defer span.End()

	if bkg.CustomerID != callerID {
		return Booking{}, ErrNotOwner
	}

	if bkg.Status.Equal(bookingstatus.Completed) {
		return Booking{}, fmt.Errorf("cancel from %s: %w", bkg.Status, ErrInvalidTransition)
	}

	status := bookingstatus.Cancelled

	return c.Update(ctx, bkg, UpdateBooking{
		Status:             &status,
		CancellationReason: &reason,
	})
}

// Remove hard-deletes the booking. Only PENDING, ACCEPTED, and CANCELLED
// bookings can go; trips that ran or are running stay on record. The actor
// must be an admin or a company user of the booking's tenant.
func (c *Core) Remove(ctx context.Context, actor Actor, bkg Booking) error {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.remove")
	defer span.End()

	switch {
	case bkg.Status.Equal(bookingstatus.Pending),
		bkg.Status.Equal(bookingstatus.Accepted),
		bkg.Status.Equal(bookingstatus.Cancelled):
	default:
		return fmt.Errorf("remove on %s: %w", bkg.Status, ErrInvalidTransition)
	}

	if !actor.CanRemove(bkg) {
		return ErrNotOwner
	}

	if err := c.storer.Delete(ctx, bkg); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing bookings.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.query")
	defer span.End()

	bkgs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return bkgs, nil
}

// Count returns the total number of bookings.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the booking by the specified ID.
func (c *Core) QueryByID(ctx context.Context, bookingID uuid.UUID) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.queryByID")
	defer span.End()

	bkg, err := c.storer.QueryByID(ctx, bookingID)
	if err != nil {
		return Booking{}, fmt.Errorf("query: bookingID[%s]: %w", bookingID, err)
	}

	return bkg, nil
}
