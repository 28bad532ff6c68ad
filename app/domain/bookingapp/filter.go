package bookingapp

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/types/bookingstatus"
)

type queryParams struct {
	Page             string
	Rows             string
	OrderBy          string
	ID               string
	CustomerID       string
	DriverID         string
	Status           string
	StartCreatedDate string
	EndCreatedDate   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:             values.Get("page"),
		Rows:             values.Get("rows"),
		OrderBy:          values.Get("orderBy"),
		ID:               values.Get("booking_id"),
		CustomerID:       values.Get("customer_id"),
		DriverID:         values.Get("driver_id"),
		Status:           values.Get("status"),
		StartCreatedDate: values.Get("start_created_date"),
		EndCreatedDate:   values.Get("end_created_date"),
	}
}

func parseFilter(qp queryParams) (bookingbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter bookingbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
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

	if qp.DriverID != "" {
		id, err := uuid.Parse(qp.DriverID)
		switch err {
		case nil:
			filter.DriverID = &id
		default:
			fieldErrors.Add("driver_id", err)
		}
	}

	if qp.Status != "" {
		st, err := bookingstatus.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &st
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.StartCreatedDate != "" {
		t, err := time.Parse(time.RFC3339, qp.StartCreatedDate)
		switch err {
		case nil:
			filter.StartCreatedAt = &t
		default:
			fieldErrors.Add("start_created_date", err)
		}
	}

	if qp.EndCreatedDate != "" {
		t, err := time.Parse(time.RFC3339, qp.EndCreatedDate)
		switch err {
		case nil:
			filter.EndCreatedAt = &t
		default:
			fieldErrors.Add("end_created_date", err)
		}
	}

	if fieldErrors != nil {
		return bookingbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
