package paymentdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/paymentbus"
	"github.com/veltrip/platform/business/types/paymentmethod"
	"github.com/veltrip/platform/business/types/paymentstatus"
)

type paymentDB struct {
	ID         uuid.UUID `db:"payment_id"`
	BookingID  uuid.UUID `db:"booking_id"`
	CompanyID  uuid.UUID `db:"company_id"`
	CustomerID uuid.UUID `db:"customer_id"`
	Amount     float64   `db:"amount"`
	Method     string    `db:"method"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func toDBPayment(bus paymentbus.Payment) paymentDB {
	return paymentDB{
		ID:         bus.ID,
		BookingID:  bus.BookingID,
		CompanyID:  bus.CompanyID,
		CustomerID: bus.CustomerID,
		Amount:     bus.Amount,
		Method:     bus.Method.String(),
		Status:     bus.Status.String(),
		CreatedAt:  bus.CreatedAt.UTC(),
		UpdatedAt:  bus.UpdatedAt.UTC(),
	}
}

func toBusPayment(db paymentDB) (paymentbus.Payment, error) {
	method, err := paymentmethod.Parse(db.Method)
	if err != nil {
		return paymentbus.Payment{}, fmt.Errorf("parse method: %w", err)
	}

	status, err := paymentstatus.Parse(db.Status)
	if err != nil {
		return paymentbus.Payment{}, fmt.Errorf("parse status: %w", err)
	}

	bus := paymentbus.Payment{
		ID:         db.ID,
		BookingID:  db.BookingID,
		CompanyID:  db.CompanyID,
		CustomerID: db.CustomerID,
		Amount:     db.Amount,
		Method:     method,
		Status:     status,
		CreatedAt:  db.CreatedAt.In(time.Local),
		UpdatedAt:  db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusPayments(dbs []paymentDB) ([]paymentbus.Payment, error) {
	bus := make([]paymentbus.Payment, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusPayment(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
