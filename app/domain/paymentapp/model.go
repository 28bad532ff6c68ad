package paymentapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/paymentbus"
	"github.com/veltrip/platform/business/types/paymentmethod"
)

// Payment represents information about an individual payment.
type Payment struct {
	ID          string  `json:"id"`
	BookingID   string  `json:"bookingId"`
	CompanyID   string  `json:"companyId"`
	CustomerID  string  `json:"customerId"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	DateCreated string  `json:"dateCreated"`
	DateUpdated string  `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (p Payment) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppPayment(bus paymentbus.Payment) Payment {
	return Payment{
		ID:          bus.ID.String(),
		BookingID:   bus.BookingID.String(),
		CompanyID:   bus.CompanyID.String(),
		CustomerID:  bus.CustomerID.String(),
		Amount:      bus.Amount,
		Method:      bus.Method.String(),
		Status:      bus.Status.String(),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppPayments(pays []paymentbus.Payment) []Payment {
	app := make([]Payment, len(pays))
	for i, pay := range pays {
		app[i] = toAppPayment(pay)
	}
	return app
}

// =============================================================================

// NewPayment defines the data needed to pay for a booking. When no amount
// is given the booking's estimated fare is charged. The method defaults to
// the razorpay gateway.
type NewPayment struct {
	BookingID string   `json:"bookingId" validate:"required"`
	Amount    *float64 `json:"amount" validate:"omitempty,gt=0"`
	Method    string   `json:"method"`
}

// Decode implements the web.Decoder interface.
func (app *NewPayment) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewPayment) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewPayment(app NewPayment) (paymentbus.NewPayment, error) {
	bookingID, err := uuid.Parse(app.BookingID)
	if err != nil {
		return paymentbus.NewPayment{}, fmt.Errorf("parse booking id: %w", err)
	}

	method := paymentmethod.Razorpay
	if app.Method != "" {
		method, err = paymentmethod.Parse(app.Method)
		if err != nil {
			return paymentbus.NewPayment{}, fmt.Errorf("parse method: %w", err)
		}
	}

	bus := paymentbus.NewPayment{
		BookingID: bookingID,
		Amount:    app.Amount,
		Method:    method,
	}

	return bus, nil
}
