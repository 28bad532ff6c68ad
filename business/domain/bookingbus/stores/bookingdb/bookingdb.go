// Package bookingdb contains booking related CRUD functionality.
package bookingdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/foundation/logger"
)

// Store manages the set of APIs for booking database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (bookingbus.Storer, error) {
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

// Create inserts a new booking into the database.
func (s *Store) Create(ctx context.Context, bkg bookingbus.Booking) error {
	const q = `
	INSERT INTO "public"."booking"
		(booking_id, company_id, customer_id, driver_id,
		pickup_lat, pickup_lon, pickup_address, drop_lat, drop_lon, drop_address,
		distance_km, estimated_fare, actual_fare, status,
		scheduled_at, started_at, completed_at, cancelled_at,
		cancellation_reason, rating, feedback, created_at, updated_at)
	VALUES
		(:booking_id, :company_id, :customer_id, :driver_id,
		:pickup_lat, :pickup_lon, :pickup_address, :drop_lat, :drop_lon, :drop_address,
		:distance_km, :estimated_fare, :actual_fare, :status,
		:scheduled_at, :started_at, :completed_at, :cancelled_at,
		:cancellation_reason, :rating, :feedback, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBBooking(bkg)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a booking document in the database.
func (s *Store) Update(ctx context.Context, bkg bookingbus.Booking) error {
	const q = `
	UPDATE
		"public"."booking"
	SET
		driver_id = :driver_id,
		pickup_lat = :pickup_lat,
		pickup_lon = :pickup_lon,
		pickup_address = :pickup_address,
		drop_lat = :drop_lat,
		drop_lon = :drop_lon,
		drop_address = :drop_address,
		distance_km = :distance_km,
		estimated_fare = :estimated_fare,
		actual_fare = :actual_fare,
		status = :status,
		scheduled_at = :scheduled_at,
		started_at = :started_at,
		completed_at = :completed_at,
		cancelled_at = :cancelled_at,
		cancellation_reason = :cancellation_reason,
		rating = :rating,
		feedback = :feedback,
		updated_at = :updated_at
	WHERE
		booking_id = :booking_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBBooking(bkg)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a booking from the database.
func (s *Store) Delete(ctx context.Context, bkg bookingbus.Booking) error {
	const q = `
	DELETE FROM
		"public"."booking"
	WHERE
		booking_id = :booking_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBBooking(bkg)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing bookings from the database.
func (s *Store) Query(ctx context.Context, filter bookingbus.QueryFilter, orderBy order.By, page page.Page) ([]bookingbus.Booking, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		booking_id, company_id, customer_id, driver_id,
		pickup_lat, pickup_lon, pickup_address, drop_lat, drop_lon, drop_address,
		distance_km, estimated_fare, actual_fare, status,
		scheduled_at, started_at, completed_at, cancelled_at,
		cancellation_reason, rating, feedback, created_at, updated_at
	FROM
		"public"."booking"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbBkgs []bookingDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbBkgs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusBookings(dbBkgs)
}

// Count returns the total number of bookings in the DB.
func (s *Store) Count(ctx context.Context, filter bookingbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."booking"`

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

// QueryByID gets the specified booking from the database.
func (s *Store) QueryByID(ctx context.Context, bookingID uuid.UUID) (bookingbus.Booking, error) {
	data := struct {
		ID string `db:"booking_id"`
	}{
		ID: bookingID.String(),
	}

	const q = `
	SELECT
		booking_id, company_id, customer_id, driver_id,
		pickup_lat, pickup_lon, pickup_address, drop_lat, drop_lon, drop_address,
		distance_km, estimated_fare, actual_fare, status,
		scheduled_at, started_at, completed_at, cancelled_at,
		cancellation_reason, rating, feedback, created_at, updated_at
	FROM
		"public"."booking"
	WHERE
		booking_id = :booking_id`

	var dbBkg bookingDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbBkg); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return bookingbus.Booking{}, fmt.Errorf("db: %w", bookingbus.ErrNotFound)
		}
		return bookingbus.Booking{}, fmt.Errorf("db: %w", err)
	}

	return toBusBooking(dbBkg)
}
