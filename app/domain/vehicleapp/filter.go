package vehicleapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/plate"
)

type queryParams struct {
	Page    string
	Rows    string
	OrderBy string
	ID      string
	Plate   string
	Type    string
	Active  string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:    values.Get("page"),
		Rows:    values.Get("rows"),
		OrderBy: values.Get("orderBy"),
		ID:      values.Get("vehicle_id"),
		Plate:   values.Get("plate"),
		Type:    values.Get("type"),
		Active:  values.Get("active"),
	}
}

func parseFilter(qp queryParams) (vehiclebus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter vehiclebus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("vehicle_id", err)
		}
	}

	if qp.Plate != "" {
		plt, err := plate.Parse(qp.Plate)
		switch err {
		case nil:
			filter.Plate = &plt
		default:
			fieldErrors.Add("plate", err)
		}
	}

	if qp.Type != "" {
		typ, err := name.Parse(qp.Type)
		switch err {
		case nil:
			filter.Type = &typ
		default:
			fieldErrors.Add("type", err)
		}
	}

	if qp.Active != "" {
		switch qp.Active {
		case "true":
			t := true
			filter.Active = &t
		case "false":
			f := false
			filter.Active = &f
		}
	}

	if fieldErrors != nil {
		return vehiclebus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
