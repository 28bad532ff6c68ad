// Package driverapp provides the application layer for driver management.
package driverapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/app/sdk/query"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/role"
)

type app struct {
	userBus    *userbus.Core
	driverBus  *driverbus.Core
	vehicleBus *vehiclebus.Core
}

func newApp(userBus *userbus.Core, driverBus *driverbus.Core, vehicleBus *vehiclebus.Core) *app {
	return &app{
		userBus:    userBus,
		driverBus:  driverBus,
		vehicleBus: vehicleBus,
	}
}

// newWithTx constructs a new app value replacing the buses with transaction
// bound versions when the request carries one.
func (a *app) newWithTx(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	userBus, err := a.userBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	driverBus, err := a.driverBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	vehicleBus, err := a.vehicleBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	app := app{
		userBus:    userBus,
		driverBus:  driverBus,
		vehicleBus: vehicleBus,
	}

	return &app, nil
}

// scopedDriver loads the driver from the path and enforces the tenant
// boundary.
func (a *app) scopedDriver(ctx context.Context, r *http.Request) (driverbus.Driver, web.Encoder) {
	driverID, err := uuid.Parse(r.PathValue("driver_id"))
	if err != nil {
		return driverbus.Driver{}, errs.NewFieldErrors("driver_id", err)
	}

	drv, err := a.driverBus.QueryByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, driverbus.ErrNotFound) {
			return driverbus.Driver{}, errs.New(errs.NotFound, err)
		}
		return driverbus.Driver{}, errs.Errorf(errs.InternalOnlyLog, "query driver: driverID[%s]: %s", driverID, err)
	}

	claims := mid.GetClaims(ctx)
	if claims.Role != role.Admin.String() {
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return driverbus.Driver{}, errs.New(errs.Unauthenticated, err)
		}
		if drv.CompanyID != companyID {
			return driverbus.Driver{}, errs.New(errs.NotFound, driverbus.ErrNotFound)
		}
	}

	return drv, nil
}

// checkVehicle verifies the vehicle exists, is active, and belongs to the
// driver's company before it is attached.
func (a *app) checkVehicle(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) web.Encoder {
	veh, err := a.vehicleBus.QueryByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrNotFound) {
			return errs.NewFieldErrors("vehicleId", err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query vehicle: vehicleID[%s]: %s", vehicleID, err)
	}

	if veh.CompanyID != companyID {
		return errs.NewFieldErrors("vehicleId", errors.New("vehicle belongs to another company"))
	}

	if !veh.Active {
		return errs.NewFieldErrors("vehicleId", errors.New("vehicle is not active"))
	}

	return nil
}

// create registers a driver profile. When the request carries user details a
// new driver user is created first, inside the request transaction, and the
// profile is attached to it.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewDriver
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	a, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
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

	userID, errResp := a.resolveDriverUser(ctx, app, companyID)
	if errResp != nil {
		return errResp
	}

	nd, err := toBusNewDriver(app, userID, companyID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if nd.VehicleID != nil {
		if errResp := a.checkVehicle(ctx, companyID, *nd.VehicleID); errResp != nil {
			return errResp
		}
	}

	drv, err := a.driverBus.Create(ctx, nd)
	if err != nil {
		switch {
		case errors.Is(err, driverbus.ErrUserNotDriver):
			return errs.New(errs.InvalidArgument, err)
		case errors.Is(err, driverbus.ErrWrongCompany):
			return errs.New(errs.InvalidArgument, err)
		case errors.Is(err, userbus.ErrNotFound):
			return errs.NewFieldErrors("userId", err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: userID[%s]: %s", userID, err)
	}

	return toAppDriver(drv)
}

// resolveDriverUser returns the user id for a new driver profile, creating
// the user when the request carries account details instead of an id.
func (a *app) resolveDriverUser(ctx context.Context, app NewDriver, companyID uuid.UUID) (uuid.UUID, web.Encoder) {
	if app.User == nil {
		userID, err := uuid.Parse(app.UserID)
		if err != nil {
			return uuid.Nil, errs.NewFieldErrors("userId", err)
		}
		return userID, nil
	}

	nu, err := toBusNewDriverUser(*app.User, companyID)
	if err != nil {
		return uuid.Nil, errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return uuid.Nil, errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return uuid.Nil, errs.Errorf(errs.InternalOnlyLog, "create driver user: %s", err)
	}

	return usr.ID, nil
}

// update modifies a driver profile.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateDriver
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	drv, errResp := a.scopedDriver(ctx, r)
	if errResp != nil {
		return errResp
	}

	// Drivers may only touch their own profile and never approve themselves.
	claims := mid.GetClaims(ctx)
	if claims.Role == role.Driver.String() {
		userID, err := mid.GetUserID(ctx)
		if err != nil {
			return errs.New(errs.Unauthenticated, err)
		}
		if drv.UserID != userID {
			return errs.New(errs.NotFound, driverbus.ErrNotFound)
		}
		app.Approved = nil
	}

	ud, err := toBusUpdateDriver(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if ud.VehicleID != nil {
		if errResp := a.checkVehicle(ctx, drv.CompanyID, *ud.VehicleID); errResp != nil {
			return errResp
		}
	}

	updDrv, err := a.driverBus.Update(ctx, drv, ud)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: driverID[%s]: %s", drv.ID, err)
	}

	return toAppDriver(updDrv)
}

// assignVehicle attaches a vehicle to a driver as an explicit write, after
// checking the vehicle is active and stays inside the tenant.
func (a *app) assignVehicle(ctx context.Context, r *http.Request) web.Encoder {
	var app AssignVehicle
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	drv, errResp := a.scopedDriver(ctx, r)
	if errResp != nil {
		return errResp
	}

	vehicleID, err := uuid.Parse(app.VehicleID)
	if err != nil {
		return errs.NewFieldErrors("vehicleId", err)
	}

	if errResp := a.checkVehicle(ctx, drv.CompanyID, vehicleID); errResp != nil {
		return errResp
	}

	updDrv, err := a.driverBus.AssignVehicle(ctx, drv, vehicleID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "assign vehicle: driverID[%s]: %s", drv.ID, err)
	}

	return toAppDriver(updDrv)
}

// updateLocation lets a driver report their current position.
func (a *app) updateLocation(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateLocation
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	drv, err := a.driverBus.QueryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, driverbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query driver by user: userID[%s]: %s", userID, err)
	}

	loc := toBusLocation(app)

	updDrv, err := a.driverBus.UpdateLocation(ctx, drv, loc)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update location: driverID[%s]: %s", drv.ID, err)
	}

	return toAppDriver(updDrv)
}

// delete deactivates a driver profile.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	drv, errResp := a.scopedDriver(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := a.driverBus.Delete(ctx, drv); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: driverID[%s]: %s", drv.ID, err)
	}

	return nil
}

// query returns a list of drivers with paging, scoped to the caller's
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, driverbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	drvs, err := a.driverBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.driverBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppDrivers(drvs), total, pg)
}

// queryAvailable returns the drivers able to take a ride right now, closest
// to the provided pickup point first.
func (a *app) queryAvailable(ctx context.Context, r *http.Request) web.Encoder {
	pickup, errResp := parsePickup(r)
	if errResp != nil {
		return errResp
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	drvs, err := a.driverBus.FindAvailable(ctx, companyID, pickup)
	if err != nil {
		return errs.Errorf(errs.Internal, "find available: %s", err)
	}

	return toAppDriverList(drvs)
}

// queryByID returns a driver by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	drv, errResp := a.scopedDriver(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppDriver(drv)
}
