// Package vehiclebus provides business access to vehicle data.
package vehiclebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/foundation/otel"
)

var (
	ErrNotFound    = errors.New("vehicle not found")
	ErrUniquePlate = errors.New("plate is not unique")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, veh Vehicle) error
	Update(ctx context.Context, veh Vehicle) error
	Delete(ctx context.Context, veh Vehicle) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Vehicle, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, vehicleID uuid.UUID) (Vehicle, error)
}

type Core struct {
	storer Storer
}

func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

func (c *Core) Create(ctx context.Context, nv NewVehicle) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.create")
	defer span.End()

	now := time.Now()

	veh := Vehicle{
		ID:        uuid.New(),
		CompanyID: nv.CompanyID,
		Plate:     nv.Plate,
		Type:      nv.Type,
		Model:     nv.Model,
		Color:     nv.Color,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, veh); err != nil {
		return Vehicle{}, fmt.Errorf("create: %w", err)
	}

	return veh, nil
}

func (c *Core) Update(ctx context.Context, veh Vehicle, uv UpdateVehicle) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.update")
	defer span.End()

	if uv.Plate != nil {
		veh.Plate = *uv.Plate
	}

	if uv.Type != nil {
		veh.Type = *uv.Type
	}

	if uv.Model != nil {
		veh.Model = *uv.Model
	}

	if uv.Color != nil {
		veh.Color = *uv.Color
	}

	if uv.Active != nil {
		veh.Active = *uv.Active
	}

	veh.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, veh); err != nil {
		return Vehicle{}, fmt.Errorf("update: %w", err)
	}

	return veh, nil
}

func (c *Core) Delete(ctx context.Context, veh Vehicle) error {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, veh); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing vehicles.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.query")
	defer span.End()

	vehs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return vehs, nil
}

// Count returns the total number of vehicles.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the vehicle by the specified ID.
func (c *Core) QueryByID(ctx context.Context, vehicleID uuid.UUID) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.queryByID")
	defer span.End()

	veh, err := c.storer.QueryByID(ctx, vehicleID)
	if err != nil {
		return Vehicle{}, fmt.Errorf("query: vehicleID[%s]: %w", vehicleID, err)
	}

	return veh, nil
}
