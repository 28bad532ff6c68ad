package driverapp

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/sdk/web"
)

type queryParams struct {
	Page     string
	Rows     string
	OrderBy  string
	ID       string
	UserID   string
	Online   string
	Approved string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:     values.Get("page"),
		Rows:     values.Get("rows"),
		OrderBy:  values.Get("orderBy"),
		ID:       values.Get("driver_id"),
		UserID:   values.Get("user_id"),
		Online:   values.Get("online"),
		Approved: values.Get("approved"),
	}
}

func parseFilter(qp queryParams) (driverbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter driverbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("driver_id", err)
		}
	}

	if qp.UserID != "" {
		id, err := uuid.Parse(qp.UserID)
		switch err {
		case nil:
			filter.UserID = &id
		default:
			fieldErrors.Add("user_id", err)
		}
	}

	if qp.Online != "" {
		switch qp.Online {
		case "true":
			t := true
			filter.Online = &t
		case "false":
			f := false
			filter.Online = &f
		}
	}

	if qp.Approved != "" {
		switch qp.Approved {
		case "true":
			t := true
			filter.Approved = &t
		case "false":
			f := false
			filter.Approved = &f
		}
	}

	if fieldErrors != nil {
		return driverbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}

// parsePickup reads the pickup coordinates for the available drivers
// endpoint from the query string.
func parsePickup(r *http.Request) (geo.Point, web.Encoder) {
	values := r.URL.Query()

	var fieldErrors errs.FieldErrors

	lat, err := strconv.ParseFloat(values.Get("lat"), 64)
	if err != nil {
		fieldErrors.Add("lat", err)
	}

	lon, err := strconv.ParseFloat(values.Get("lon"), 64)
	if err != nil {
		fieldErrors.Add("lon", err)
	}

	if fieldErrors != nil {
		return geo.Point{}, fieldErrors
	}

	return geo.Point{Lat: lat, Lon: lon}, nil
}
