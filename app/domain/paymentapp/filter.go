package paymentapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/paymentbus"
	"github.com/veltrip/platform/business/types/paymentstatus"
)

type queryParams struct {
	Page       string
	Rows       string
	OrderBy    string
	ID         string
	BookingID  string
	CustomerID string
	Status     string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:       values.Get("page"),
		Rows:       values.Get("rows"),
		OrderBy:    values.Get("orderBy"),
		ID:         values.Get("payment_id"),
		BookingID:  values.Get("booking_id"),
		CustomerID: values.Get("customer_id"),
		Status:     values.Get("status"),
	}
}

func parseFilter(qp queryParams) (paymentbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter paymentbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("payment_id", err)
		}
	}

	if qp.BookingID != "" {
		id, err := uuid.Parse(qp.BookingID)
		switch err {
		case nil:
			filter.BookingID = &id
		default:
			fieldErrors.Add("booking_id", err)
		}
	}

	if qp.CustomerID != "" {
		id, err := uuid.Parse(qp.CustomerID)
		switch err {
		case nil:
			filter.CustomerID = &id
		default:
			fieldErrors.Add("customer_id", err)
		}
	}

	if qp.Status != "" {
		st, err := paymentstatus.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &st
		default:
			fieldErrors.Add("status", err)
		}
	}

	if fieldErrors != nil {
		return paymentbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
