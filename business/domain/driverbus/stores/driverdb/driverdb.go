// Package driverdb contains driver related CRUD functionality.
package driverdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/foundation/logger"
)

// Store manages the set of APIs for driver database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (driverbus.Storer, error) {
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

// Create inserts a new driver into the database.
func (s *Store) Create(ctx context.Context, drv driverbus.Driver) error {
	const q = `
	INSERT INTO "public"."driver"
		(driver_id, user_id, company_id, license, vehicle_id, online, approved, current_lat, current_lon, created_at, updated_at)
	VALUES
		(:driver_id, :user_id, :company_id, :license, :vehicle_id, :online, :approved, :current_lat, :current_lon, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDriver(drv)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a driver document in the database.
func (s *Store) Update(ctx context.Context, drv driverbus.Driver) error {
	const q = `
	UPDATE
		"public"."driver"
	SET
		license = :license,
		vehicle_id = :vehicle_id,
		online = :online,
		approved = :approved,
		current_lat = :current_lat,
		current_lon = :current_lon,
		updated_at = :updated_at
	WHERE
		driver_id = :driver_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDriver(drv)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing drivers from the database.
func (s *Store) Query(ctx context.Context, filter driverbus.QueryFilter, orderBy order.By, page page.Page) ([]driverbus.Driver, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		driver_id, user_id, company_id, license, vehicle_id, online, approved, current_lat, current_lon, created_at, updated_at
	FROM
		"public"."driver"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbDrvs []driverDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbDrvs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusDrivers(dbDrvs)
}

// Count returns the total number of drivers in the DB.
func (s *Store) Count(ctx context.Context, filter driverbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."driver"`

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

// QueryByID gets the specified driver from the database.
func (s *Store) QueryByID(ctx context.Context, driverID uuid.UUID) (driverbus.Driver, error) {
	data := struct {
		ID string `db:"driver_id"`
	}{
		ID: driverID.String(),
	}

	const q = `
	SELECT
		driver_id, user_id, company_id, license, vehicle_id, online, approved, current_lat, current_lon, created_at, updated_at
	FROM
		"public"."driver"
	WHERE
		driver_id = :driver_id`

	var dbDrv driverDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbDrv); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return driverbus.Driver{}, fmt.Errorf("db: %w", driverbus.ErrNotFound)
		}
		return driverbus.Driver{}, fmt.Errorf("db: %w", err)
	}

	return toBusDriver(dbDrv)
}

// QueryByUserID gets the driver backed by the specified user.
func (s *Store) QueryByUserID(ctx context.Context, userID uuid.UUID) (driverbus.Driver, error) {
	data := struct {
		ID string `db:"user_id"`
	}{
		ID: userID.String(),
	}

	const q = `
	SELECT
		driver_id, user_id, company_id, license, vehicle_id, online, approved, current_lat, current_lon, created_at, updated_at
	FROM
		"public"."driver"
	WHERE
		user_id = :user_id`

	var dbDrv driverDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbDrv); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return driverbus.Driver{}, fmt.Errorf("db: %w", driverbus.ErrNotFound)
		}
		return driverbus.Driver{}, fmt.Errorf("db: %w", err)
	}

	return toBusDriver(dbDrv)
}

// QueryAvailable retrieves the company's online and approved drivers in
// creation order. Proximity sorting happens in the business layer.
func (s *Store) QueryAvailable(ctx context.Context, companyID uuid.UUID) ([]driverbus.Driver, error) {
	data := struct {
		CompanyID string `db:"company_id"`
	}{
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		driver_id, user_id, company_id, license, vehicle_id, online, approved, current_lat, current_lon, created_at, updated_at
	FROM
		"public"."driver"
	WHERE
		company_id = :company_id AND online = true AND approved = true
	ORDER BY
		created_at ASC`

	var dbDrvs []driverDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbDrvs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusDrivers(dbDrvs)
}
