// Package paymentdb contains payment related CRUD functionality.
package paymentdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/veltrip/platform/business/domain/paymentbus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/foundation/logger"
)

// Store manages the set of APIs for payment database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (paymentbus.Storer, error) {
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

// Create inserts a new payment into the database.
func (s *Store) Create(ctx context.Context, pay paymentbus.Payment) error {
	const q = `
	INSERT INTO "public"."payment"
		(payment_id, booking_id, company_id, customer_id, amount, method, status, created_at, updated_at)
	VALUES
		(:payment_id, :booking_id, :company_id, :customer_id, :amount, :method, :status, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBPayment(pay)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a payment document in the database.
func (s *Store) Update(ctx context.Context, pay paymentbus.Payment) error {
	const q = `
	UPDATE
		"public"."payment"
	SET
		amount = :amount,
		method = :method,
		status = :status,
		updated_at = :updated_at
	WHERE
		payment_id = :payment_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBPayment(pay)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing payments from the database.
func (s *Store) Query(ctx context.Context, filter paymentbus.QueryFilter, orderBy order.By, page page.Page) ([]paymentbus.Payment, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		payment_id, booking_id, company_id, customer_id, amount, method, status, created_at, updated_at
	FROM
		"public"."payment"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbPays []paymentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbPays); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusPayments(dbPays)
}

// Count returns the total number of payments in the DB.
func (s *Store) Count(ctx context.Context, filter paymentbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."payment"`

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

// QueryByID gets the specified payment from the database.
func (s *Store) QueryByID(ctx context.Context, paymentID uuid.UUID) (paymentbus.Payment, error) {
	data := struct {
		ID string `db:"payment_id"`
	}{
		ID: paymentID.String(),
	}

	const q = `
	SELECT
		payment_id, booking_id, company_id, customer_id, amount, method, status, created_at, updated_at
	FROM
		"public"."payment"
	WHERE
		payment_id = :payment_id`

	var dbPay paymentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbPay); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return paymentbus.Payment{}, fmt.Errorf("db: %w", paymentbus.ErrNotFound)
		}
		return paymentbus.Payment{}, fmt.Errorf("db: %w", err)
	}

	return toBusPayment(dbPay)
}

// QueryByBookingID gets the payment tied to the specified booking.
func (s *Store) QueryByBookingID(ctx context.Context, bookingID uuid.UUID) (paymentbus.Payment, error) {
	data := struct {
		ID string `db:"booking_id"`
	}{
		ID: bookingID.String(),
	}

	const q = `
	SELECT
		payment_id, booking_id, company_id, customer_id, amount, method, status, created_at, updated_at
	FROM
		"public"."payment"
	WHERE
		booking_id = :booking_id`

	var dbPay paymentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbPay); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return paymentbus.Payment{}, fmt.Errorf("db: %w", paymentbus.ErrNotFound)
		}
		return paymentbus.Payment{}, fmt.Errorf("db: %w", err)
	}

	return toBusPayment(dbPay)
}
