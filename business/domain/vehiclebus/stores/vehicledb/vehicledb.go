// Package vehicledb contains vehicle related CRUD functionality.
package vehicledb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/foundation/logger"
)

// Store manages the set of APIs for vehicle database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (vehiclebus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new vehicle into the database.
func (s *Store) Create(ctx context.Context, veh vehiclebus.Vehicle) error {
	const q = `
	INSERT INTO "public"."vehicle"
		(vehicle_id, company_id, plate, vehicle_type, model, color, active, created_at, updated_at)
	VALUES
		(:vehicle_id, :company_id, :plate, :vehicle_type, :model, :color, :active, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBVehicle(veh)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			switch dupErr.Column {
			case "plate", "uq_vehicle_plate":
				return fmt.Errorf("namedexeccontext: %w", vehiclebus.ErrUniquePlate)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a vehicle document in the database.
func (s *Store) Update(ctx context.Context, veh vehiclebus.Vehicle) error {
	const q = `
	UPDATE
		"public"."vehicle"
	SET
		plate = :plate,
		vehicle_type = :vehicle_type,
		model = :model,
		color = :color,
		active = :active,
		updated_at = :updated_at
	WHERE
		vehicle_id = :vehicle_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBVehicle(veh)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			switch dupErr.Column {
			case "plate", "uq_vehicle_plate":
				return vehiclebus.ErrUniquePlate
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a vehicle from the database.
func (s *Store) Delete(ctx context.Context, veh vehiclebus.Vehicle) error {
	const q = `
	DELETE FROM
		"public"."vehicle"
	WHERE
		vehicle_id = :vehicle_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBVehicle(veh)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing vehicles from the database.
func (s *Store) Query(ctx context.Context, filter vehiclebus.QueryFilter, orderBy order.By, page page.Page) ([]vehiclebus.Vehicle, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		vehicle_id, company_id, plate, vehicle_type, model, color, active, created_at, updated_at
	FROM
		"public"."vehicle"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbVehs []vehicleDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbVehs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusVehicles(dbVehs)
}

// Count returns the total number of vehicles in the DB.
func (s *Store) Count(ctx context.Context, filter vehiclebus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."vehicle"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified vehicle from the database.
func (s *Store) QueryByID(ctx context.Context, vehicleID uuid.UUID) (vehiclebus.Vehicle, error) {
	data := struct {
		ID string `db:"vehicle_id"`
	}{
		ID: vehicleID.String(),
	}

	const q = `
	SELECT
		vehicle_id, company_id, plate, vehicle_type, model, color, active, created_at, updated_at
	FROM
		"public"."vehicle"
	WHERE
		vehicle_id = :vehicle_id`

	var dbVeh vehicleDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbVeh); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return vehiclebus.Vehicle{}, fmt.Errorf("db: %w", vehiclebus.ErrNotFound)
		}
		return vehiclebus.Vehicle{}, fmt.Errorf("db: %w", err)
	}

	return toBusVehicle(dbVeh)
}
