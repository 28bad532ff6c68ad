// Package vehicleapp provides the application layer for fleet management.
package vehicleapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/app/sdk/query"
	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/role"
)

type app struct {
	vehicleBus *vehiclebus.Core
}

func newApp(vehicleBus *vehiclebus.Core) *app {
	return &app{
		vehicleBus: vehicleBus,
	}
}

// scopedVehicle loads the vehicle from the path and enforces the tenant
// boundary.
func (a *app) scopedVehicle(ctx context.Context, r *http.Request) (vehiclebus.Vehicle, web.Encoder) {
	vehicleID, err := uuid.Parse(r.PathValue("vehicle_id"))
	if err != nil {
		return vehiclebus.Vehicle{}, errs.NewFieldErrors("vehicle_id", err)
	}

	veh, err := a.vehicleBus.QueryByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrNotFound) {
			return vehiclebus.Vehicle{}, errs.New(errs.NotFound, err)
		}
		return vehiclebus.Vehicle{}, errs.Errorf(errs.InternalOnlyLog, "query vehicle: vehicleID[%s]: %s", vehicleID, err)
	}

	claims := mid.GetClaims(ctx)
	if claims.Role != role.Admin.String() {
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return vehiclebus.Vehicle{}, errs.New(errs.Unauthenticated, err)
		}
		if veh.CompanyID != companyID {
			return vehiclebus.Vehicle{}, errs.New(errs.NotFound, vehiclebus.ErrNotFound)
		}
	}

	return veh, nil
}

// create adds a new vehicle to the caller's fleet.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewVehicle
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	claims := mid.GetClaims(ctx)

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if claims.Role == role.Admin.String() && app.CompanyID != "" {
		companyID, err = uuid.Parse(app.CompanyID)
		if err != nil {
			return errs.NewFieldErrors("companyId", err)
		}
	}

	nv, err := toBusNewVehicle(app, companyID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	veh, err := a.vehicleBus.Create(ctx, nv)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrUniquePlate) {
			return errs.New(errs.Aborted, vehiclebus.ErrUniquePlate)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: plate[%s]: %s", app.Plate, err)
	}

	return toAppVehicle(veh)
}

// update modifies a vehicle in the caller's fleet.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateVehicle
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	veh, errResp := a.scopedVehicle(ctx, r)
	if errResp != nil {
		return errResp
	}

	uv, err := toBusUpdateVehicle(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updVeh, err := a.vehicleBus.Update(ctx, veh, uv)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrUniquePlate) {
			return errs.New(errs.Aborted, vehiclebus.ErrUniquePlate)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppVehicle(updVeh)
}

// delete removes a vehicle from the fleet.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	veh, errResp := a.scopedVehicle(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := a.vehicleBus.Delete(ctx, veh); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: vehicleID[%s]: %s", veh.ID, err)
	}

	return nil
}

// query returns a list of vehicles with paging, scoped to the caller's
// company for non admin callers.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	claims := mid.GetClaims(ctx)
	if claims.Role != role.Admin.String() {
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return errs.New(errs.Unauthenticated, err)
		}
		filter.CompanyID = &companyID
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, vehiclebus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	vehs, err := a.vehicleBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.vehicleBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppVehicles(vehs), total, pg)
}

// queryByID returns a vehicle by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	veh, errResp := a.scopedVehicle(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppVehicle(veh)
}
