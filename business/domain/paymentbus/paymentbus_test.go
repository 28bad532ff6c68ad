package paymentbus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/domain/paymentbus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/types/bookingstatus"
	"github.com/veltrip/platform/business/types/paymentmethod"
	"github.com/veltrip/platform/business/types/paymentstatus"
)

type fakePaymentStore struct {
	payments map[uuid.UUID]paymentbus.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[uuid.UUID]paymentbus.Payment)}
}

func (s *fakePaymentStore) NewWithTx(tx sqldb.CommitRollbacker) (paymentbus.Storer, error) {
	return s, nil
}

func (s *fakePaymentStore) Create(ctx context.Context, pay paymentbus.Payment) error {
	s.payments[pay.ID] = pay
	return nil
}

func (s *fakePaymentStore) Update(ctx context.Context, pay paymentbus.Payment) error {
	if _, exists := s.payments[pay.ID]; !exists {
		return paymentbus.ErrNotFound
	}
	s.payments[pay.ID] = pay
	return nil
}

func (s *fakePaymentStore) Query(ctx context.Context, filter paymentbus.QueryFilter, orderBy order.By, page page.Page) ([]paymentbus.Payment, error) {
	var pays []paymentbus.Payment
	for _, pay := range s.payments {
		pays = append(pays, pay)
	}
	return pays, nil
}

func (s *fakePaymentStore) Count(ctx context.Context, filter paymentbus.QueryFilter) (int, error) {
	return len(s.payments), nil
}

func (s *fakePaymentStore) QueryByID(ctx context.Context, paymentID uuid.UUID) (paymentbus.Payment, error) {
	pay, exists := s.payments[paymentID]
	if !exists {
		return paymentbus.Payment{}, paymentbus.ErrNotFound
	}
	return pay, nil
}

func (s *fakePaymentStore) QueryByBookingID(ctx context.Context, bookingID uuid.UUID) (paymentbus.Payment, error) {
	for _, pay := range s.payments {
		if pay.BookingID == bookingID {
			return pay, nil
		}
	}
	return paymentbus.Payment{}, paymentbus.ErrNotFound
}

// =============================================================================

func completedBooking(customerID uuid.UUID) bookingbus.Booking {
	return bookingbus.Booking{
		ID:            uuid.New(),
		CompanyID:     uuid.New(),
		CustomerID:    customerID,
		EstimatedFare: 150,
		Status:        bookingstatus.Completed,
	}
}

func Test_Create(t *testing.T) {
	customerID := uuid.New()
	bkg := completedBooking(customerID)

	core := paymentbus.NewCore(newFakePaymentStore())

	pay, err := core.Create(context.Background(), customerID, bkg, paymentbus.NewPayment{
		BookingID: bkg.ID,
		Method:    paymentmethod.Cash,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if pay.Amount != bkg.EstimatedFare {
		t.Errorf("amount = %v, want estimate %v", pay.Amount, bkg.EstimatedFare)
	}
	if !pay.Status.Equal(paymentstatus.Pending) {
		t.Errorf("status = %v, want PENDING", pay.Status)
	}
	if pay.CompanyID != bkg.CompanyID || pay.CustomerID != bkg.CustomerID {
		t.Error("payment did not inherit the booking's company and customer")
	}
}

func Test_Create_ExplicitAmount(t *testing.T) {
	customerID := uuid.New()
	bkg := completedBooking(customerID)

	core := paymentbus.NewCore(newFakePaymentStore())

	amount := 199.0
	pay, err := core.Create(context.Background(), customerID, bkg, paymentbus.NewPayment{
		BookingID: bkg.ID,
		Amount:    &amount,
		Method:    paymentmethod.Card,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if pay.Amount != amount {
		t.Errorf("amount = %v, want %v", pay.Amount, amount)
	}
}

func Test_Create_OnePaymentPerBooking(t *testing.T) {
	customerID := uuid.New()
	bkg := completedBooking(customerID)

	core := paymentbus.NewCore(newFakePaymentStore())

	if _, err := core.Create(context.Background(), customerID, bkg, paymentbus.NewPayment{BookingID: bkg.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := core.Create(context.Background(), customerID, bkg, paymentbus.NewPayment{BookingID: bkg.ID})
	if !errors.Is(err, paymentbus.ErrPaymentExists) {
		t.Errorf("second create: err = %v, want ErrPaymentExists", err)
	}
}

func Test_Create_NotOwner(t *testing.T) {
	bkg := completedBooking(uuid.New())

	core := paymentbus.NewCore(newFakePaymentStore())

	_, err := core.Create(context.Background(), uuid.New(), bkg, paymentbus.NewPayment{BookingID: bkg.ID})
	if !errors.Is(err, paymentbus.ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func Test_Create_BookingNotCompleted(t *testing.T) {
	customerID := uuid.New()

	core := paymentbus.NewCore(newFakePaymentStore())

	for _, status := range []bookingstatus.Status{
		bookingstatus.Pending,
		bookingstatus.Accepted,
		bookingstatus.InProgress,
		bookingstatus.Cancelled,
	} {
		bkg := completedBooking(customerID)
		bkg.Status = status

		_, err := core.Create(context.Background(), customerID, bkg, paymentbus.NewPayment{BookingID: bkg.ID})
		if !errors.Is(err, paymentbus.ErrBookingNotCompleted) {
			t.Errorf("status %v: err = %v, want ErrBookingNotCompleted", status, err)
		}
	}
}

func Test_Verify(t *testing.T) {
	customerID := uuid.New()
	bkg := completedBooking(customerID)

	core := paymentbus.NewCore(newFakePaymentStore())

	pay, err := core.Create(context.Background(), customerID, bkg, paymentbus.NewPayment{BookingID: bkg.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pay, err = core.Verify(context.Background(), pay)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !pay.Status.Equal(paymentstatus.Paid) {
		t.Errorf("status = %v, want PAID", pay.Status)
	}

	if _, err := core.Verify(context.Background(), pay); !errors.Is(err, paymentbus.ErrAlreadyProcessed) {
		t.Errorf("second verify: err = %v, want ErrAlreadyProcessed", err)
	}
}
