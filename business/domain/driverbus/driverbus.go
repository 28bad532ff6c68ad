// Package driverbus provides business access to driver data, including the
// availability search used for booking assignment.
package driverbus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/types/role"
	"github.com/veltrip/platform/foundation/otel"
)

var (
	ErrNotFound      = errors.New("driver not found")
	ErrUserNotDriver = errors.New("user does not have the driver role")
	ErrWrongCompany  = errors.New("user does not belong to company")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, drv Driver) error
	Update(ctx context.Context, drv Driver) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Driver, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, driverID uuid.UUID) (Driver, error)
	QueryByUserID(ctx context.Context, userID uuid.UUID) (Driver, error)
	QueryAvailable(ctx context.Context, companyID uuid.UUID) ([]Driver, error)
}

type Core struct {
	userBus *userbus.Core
	storer  Storer
}

func NewCore(userBus *userbus.Core, storer Storer) *Core {
	return &Core{
		userBus: userBus,
		storer:  storer,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	userBus, err := c.userBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(userBus, storer), nil
}

// Create promotes an existing user to a driver. The user must carry the
// DRIVER role and belong to the driver's company.
func (c *Core) Create(ctx context.Context, nd NewDriver) (Driver, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.create")
	defer span.End()

	usr, err := c.userBus.QueryByID(ctx, nd.UserID)
	if err != nil {
		return Driver{}, fmt.Errorf("query user: %w", err)
	}

	if usr.CompanyID != nd.CompanyID {
		return Driver{}, ErrWrongCompany
	}

	if !usr.Role.Equal(role.Driver) {
		return Driver{}, ErrUserNotDriver
	}

	now := time.Now()

	drv := Driver{
		ID:        uuid.New(),
		UserID:    nd.UserID,
		CompanyID: nd.CompanyID,
		License:   nd.License,
		VehicleID: nd.VehicleID,
		Online:    false,
		Approved:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, drv); err != nil {
		return Driver{}, fmt.Errorf("create: %w", err)
	}

	return drv, nil
}

func (c *Core) Update(ctx context.Context, drv Driver, ud UpdateDriver) (Driver, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.update")
	defer span.End()

	if ud.License != nil {
		drv.License = *ud.License
	}

	if ud.VehicleID != nil {
		drv.VehicleID = ud.VehicleID
	}

	if ud.Online != nil {
		drv.Online = *ud.Online
	}

	if ud.Approved != nil {
		drv.Approved = *ud.Approved
	}

	drv.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, drv); err != nil {
		return Driver{}, fmt.Errorf("update: %w", err)
	}

	return drv, nil
}

// UpdateLocation records the driver's last known coordinate.
func (c *Core) UpdateLocation(ctx context.Context, drv Driver, loc geo.Point) (Driver, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.updateLocation")
	defer span.End()

	drv.Location = &loc
	drv.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, drv); err != nil {
		return Driver{}, fmt.Errorf("update: %w", err)
	}

	return drv, nil
}

// AssignVehicle attaches a vehicle to the driver.
func (c *Core) AssignVehicle(ctx context.Context, drv Driver, vehicleID uuid.UUID) (Driver, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.assignVehicle")
	defer span.End()

	drv.VehicleID = &vehicleID
	drv.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, drv); err != nil {
		return Driver{}, fmt.Errorf("update: %w", err)
	}

	return drv, nil
}

// Delete takes the driver off the road. The row stays so completed bookings
// keep a valid driver reference.
func (c *Core) Delete(ctx context.Context, drv Driver) error {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.delete")
	defer span.End()

	drv.Online = false
	drv.Approved = false
	drv.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, drv); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

// Query retrieves a list of existing drivers.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Driver, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.query")
	defer span.End()

	drvs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return drvs, nil
}

// Count returns the total number of drivers.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the driver by the specified ID.
func (c *Core) QueryByID(ctx context.Context, driverID uuid.UUID) (Driver, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.queryByID")
	defer span.End()

	drv, err := c.storer.QueryByID(ctx, driverID)
	if err != nil {
		return Driver{}, fmt.Errorf("query: driverID[%s]: %w", driverID, err)
	}

	return drv, nil
}

// QueryByUserID finds the driver backed by the specified user.
func (c *Core) QueryByUserID(ctx context.Context, userID uuid.UUID) (Driver, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.queryByUserID")
	defer span.End()

	drv, err := c.storer.QueryByUserID(ctx, userID)
	if err != nil {
		return Driver{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return drv, nil
}

// FindAvailable returns the company's online and approved drivers with a
// known location, sorted by distance to the pickup point. Drivers at the
// exact same distance keep their fetch order. An empty result is not an
// error.
func (c *Core) FindAvailable(ctx context.Context, companyID uuid.UUID, pickup geo.Point) ([]Driver, error) {
	ctx, span := otel.AddSpan(ctx, "business.driverbus.findAvailable")
	defer span.End()

	drvs, err := c.storer.QueryAvailable(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("queryavailable: %w", err)
	}

	located := drvs[:0]
	for _, drv := range drvs {
		if drv.Location != nil {
			located = append(located, drv)
		}
	}

	sort.SliceStable(located, func(i, j int) bool {
		return geo.DistanceKm(pickup, *located[i].Location) < geo.DistanceKm(pickup, *located[j].Location)
	})

	return located, nil
}
