// Package paymentbus provides business access to payment data.
package paymentbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/types/bookingstatus"
	"github.com/veltrip/platform/business/types/paymentstatus"
	"github.com/veltrip/platform/foundation/otel"
)

var (
	ErrNotFound            = errors.New("payment not found")
	ErrNotOwner            = errors.New("caller does not own the booking")
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrAlreadyProcessed    = errors.New("payment already processed")
	ErrPaymentExists       = errors.New("payment already exists for booking")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, pay Payment) error
	Update(ctx context.Context, pay Payment) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Payment, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, paymentID uuid.UUID) (Payment, error)
	QueryByBookingID(ctx context.Context, bookingID uuid.UUID) (Payment, error)
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

// Create opens a PENDING payment for the booking. Only the booking's
// customer may pay, and only once the ride is COMPLETED.
func (c *Core) Create(ctx context.Context, callerID uuid.UUID, bkg bookingbus.Booking, np NewPayment) (Payment, error) {
	ctx, span := otel.AddSpan(ctx, "business.paymentbus.create")
	defer span.End()

	if bkg.CustomerID != callerID {
		return Payment{}, ErrNotOwner
	}

	if !bkg.Status.Equal(bookingstatus.Completed) {
		return Payment{}, ErrBookingNotCompleted
	}

	// One payment per booking.
	if _, err := c.storer.QueryByBookingID(ctx, bkg.ID); err == nil {
		return Payment{}, ErrPaymentExists
	} else if !errors.Is(err, ErrNotFound) {
		return Payment{}, fmt.Errorf("query by booking: %w", err)
	}

	amount := bkg.EstimatedFare
	if np.Amount != nil {
		amount = *np.Amount
	}

	now := time.Now()

	pay := Payment{
		ID:         uuid.New(),
		BookingID:  bkg.ID,
		CompanyID:  bkg.CompanyID,
		CustomerID: bkg.CustomerID,
		Amount:     amount,
		Method:     np.Method,
		Status:     paymentstatus.Pending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storer.Create(ctx, pay); err != nil {
		return Payment{}, fmt.Errorf("create: %w", err)
	}

	return pay, nil
}

// Verify marks a PENDING payment as PAID. Any other current status is
// rejected.
func (c *Core) Verify(ctx context.Context, pay Payment) (Payment, error) {
	ctx, span := otel.AddSpan(ctx, "business.paymentbus.verify")
	defer span.End()

	if !pay.Status.Equal(paymentstatus.Pending) {
		return Payment{}, ErrAlreadyProcessed
	}

	pay.Status = paymentstatus.Paid
	pay.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, pay); err != nil {
		return Payment{}, fmt.Errorf("update: %w", err)
	}

	return pay, nil
}

// Query retrieves a list of existing payments.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Payment, error) {
	ctx, span := otel.AddSpan(ctx, "business.paymentbus.query")
	defer span.End()

	pays, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return pays, nil
}

// Count returns the total number of payments.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.paymentbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the payment by the specified ID.
func (c *Core) QueryByID(ctx context.Context, paymentID uuid.UUID) (Payment, error) {
	ctx, span := otel.AddSpan(ctx, "business.paymentbus.queryByID")
	defer span.End()

	pay, err := c.storer.QueryByID(ctx, paymentID)
	if err != nil {
		return Payment{}, fmt.Errorf("query: paymentID[%s]: %w", paymentID, err)
	}

	return pay, nil
}
