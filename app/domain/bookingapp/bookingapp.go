// Package bookingapp provides the application layer for the ride booking
// lifecycle.
package bookingapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/app/sdk/query"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/role"
)

type app struct {
	bookingBus *bookingbus.Core
	driverBus  *driverbus.Core
}

func newApp(bookingBus *bookingbus.Core, driverBus *driverbus.Core) *app {
	return &app{
		bookingBus: bookingBus,
		driverBus:  driverBus,
	}
}

// actor builds the business layer actor for the authenticated caller.
func actor(ctx context.Context) (bookingbus.Actor, web.Encoder) {
	claims := mid.GetClaims(ctx)

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return bookingbus.Actor{}, errs.New(errs.Unauthenticated, err)
	}

	r, err := role.Parse(claims.Role)
	if err != nil {
		return bookingbus.Actor{}, errs.New(errs.Unauthenticated, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return bookingbus.Actor{}, errs.New(errs.Unauthenticated, err)
	}

	return bookingbus.Actor{
		UserID:    userID,
		Role:      r,
		CompanyID: companyID,
	}, nil
}

// readableBooking loads the booking from the path and checks the caller may
// see it. Bookings outside the caller's reach surface as not found.
func (a *app) readableBooking(ctx context.Context, r *http.Request) (bookingbus.Booking, bookingbus.Actor, web.Encoder) {
	bookingID, err := uuid.Parse(r.PathValue("booking_id"))
	if err != nil {
		return bookingbus.Booking{}, bookingbus.Actor{}, errs.NewFieldErrors("booking_id", err)
	}

	act, errResp := actor(ctx)
	if errResp != nil {
		return bookingbus.Booking{}, bookingbus.Actor{}, errResp
	}

	bkg, err := a.bookingBus.QueryByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingbus.ErrNotFound) {
			return bookingbus.Booking{}, bookingbus.Actor{}, errs.New(errs.NotFound, err)
		}
		return bookingbus.Booking{}, bookingbus.Actor{}, errs.Errorf(errs.InternalOnlyLog, "query booking: bookingID[%s]: %s", bookingID, err)
	}

	if !act.CanRead(bkg) {
		return bookingbus.Booking{}, bookingbus.Actor{}, errs.New(errs.NotFound, bookingbus.ErrNotFound)
	}

	return bkg, act, nil
}

// bookingParties resolves who the booking belongs to. Customers always book
// for themselves and may not name a driver. Company staff and admins book on
// behalf of a customer, admins also name the company.
func bookingParties(act bookingbus.Actor, app NewBooking) (uuid.UUID, uuid.UUID, web.Encoder) {
	companyID := act.CompanyID
	customerID := act.UserID

	switch act.Role {
	case role.Customer:
		if app.DriverID != "" {
			return uuid.Nil, uuid.Nil, errs.NewFieldErrors("driverId", errors.New("not allowed for customer bookings"))
		}

	case role.Admin:
		if app.CompanyID == "" {
			return uuid.Nil, uuid.Nil, errs.NewFieldErrors("companyId", errors.New("required for admin bookings"))
		}
		id, err := uuid.Parse(app.CompanyID)
		if err != nil {
			return uuid.Nil, uuid.Nil, errs.NewFieldErrors("companyId", err)
		}
		companyID = id
		fallthrough

	default:
		if app.CustomerID == "" {
			return uuid.Nil, uuid.Nil, errs.NewFieldErrors("customerId", errors.New("required when booking on behalf of a customer"))
		}
		id, err := uuid.Parse(app.CustomerID)
		if err != nil {
			return uuid.Nil, uuid.Nil, errs.NewFieldErrors("customerId", err)
		}
		customerID = id
	}

	return companyID, customerID, nil
}

// create books a ride. Customers book for themselves, company staff and
// admins book on behalf of a customer. When no driver is named the closest
// available one is attached, with the booking still awaiting confirmation.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewBooking
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	act, errResp := actor(ctx)
	if errResp != nil {
		return errResp
	}

	companyID, customerID, errResp := bookingParties(act, app)
	if errResp != nil {
		return errResp
	}

	nb, err := toBusNewBooking(app, companyID, customerID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bkg, err := a.bookingBus.Create(ctx, nb)
	if err != nil {
		if errors.Is(err, bookingbus.ErrInvalidAssignment) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: customerID[%s]: %s", customerID, err)
	}

	return toAppBooking(bkg)
}

// update patches booking details. Changing both stops reprices the ride.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateBooking
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bkg, _, errResp := a.readableBooking(ctx, r)
	if errResp != nil {
		return errResp
	}

	ub, err := toBusUpdateBooking(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updBkg, err := a.bookingBus.Update(ctx, bkg, ub)
	if err != nil {
		if errors.Is(err, bookingbus.ErrInvalidTransition) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: bookingID[%s]: %s", bkg.ID, err)
	}

	return toAppBooking(updBkg)
}

// confirm accepts a pending booking.
func (a *app) confirm(ctx context.Context, r *http.Request) web.Encoder {
	bkg, _, errResp := a.readableBooking(ctx, r)
	if errResp != nil {
		return errResp
	}

	updBkg, err := a.bookingBus.Confirm(ctx, bkg)
	if err != nil {
		if errors.Is(err, bookingbus.ErrInvalidTransition) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "confirm: bookingID[%s]: %s", bkg.ID, err)
	}

	return toAppBooking(updBkg)
}

// assignDriver attaches a driver to the booking. The driver must belong to
// the booking's company and be available.
func (a *app) assignDriver(ctx context.Context, r *http.Request) web.Encoder {
	var app AssignDriver
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bkg, _, errResp := a.readableBooking(ctx, r)
	if errResp != nil {
		return errResp
	}

	driverID, err := uuid.Parse(app.DriverID)
	if err != nil {
		return errs.NewFieldErrors("driverId", err)
	}

	drv, err := a.driverBus.QueryByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, driverbus.ErrNotFound) {
			return errs.NewFieldErrors("driverId", err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query driver: driverID[%s]: %s", driverID, err)
	}

	updBkg, err := a.bookingBus.AssignDriver(ctx, bkg, drv)
	if err != nil {
		switch {
		case errors.Is(err, bookingbus.ErrInvalidTransition):
			return errs.New(errs.FailedPrecondition, err)
		case errors.Is(err, bookingbus.ErrInvalidAssignment):
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "assign: bookingID[%s] driverID[%s]: %s", bkg.ID, driverID, err)
	}

	return toAppBooking(updBkg)
}

// cancel voids a booking. Only the booking's customer may cancel; the
// caller id goes to the business layer unchanged so the owner check holds
// for every role.
func (a *app) cancel(ctx context.Context, r *http.Request) web.Encoder {
	var app CancelBooking
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bkg, act, errResp := a.readableBooking(ctx, r)
	if errResp != nil {
		return errResp
	}

	updBkg, err := a.bookingBus.Cancel(ctx, act.UserID, bkg, app.Reason)
	if err != nil {
		switch {
		case errors.Is(err, bookingbus.ErrNotOwner):
			return errs.New(errs.PermissionDenied, err)
		case errors.Is(err, bookingbus.ErrInvalidTransition):
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "cancel: bookingID[%s]: %s", bkg.ID, err)
	}

	return toAppBooking(updBkg)
}

// remove deletes a booking record. Only bookings that never ran can go.
func (a *app) remove(ctx context.Context, r *http.Request) web.Encoder {
	bkg, act, errResp := a.readableBooking(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := a.bookingBus.Remove(ctx, act, bkg); err != nil {
		switch {
		case errors.Is(err, bookingbus.ErrInvalidTransition):
			return errs.New(errs.FailedPrecondition, err)
		case errors.Is(err, bookingbus.ErrNotOwner):
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "remove: bookingID[%s]: %s", bkg.ID, err)
	}

	return nil
}

// query returns a list of bookings with paging, scoped to what the caller
// may see.
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

	act, errResp := actor(ctx)
	if errResp != nil {
		return errResp
	}

	switch act.Role {
	case role.Admin:
		// Unrestricted.

	case role.Company:
		filter.CompanyID = &act.CompanyID

	case role.Driver:
		drv, err := a.driverBus.QueryByUserID(ctx, act.UserID)
		if err != nil {
			if errors.Is(err, driverbus.ErrNotFound) {
				return errs.New(errs.NotFound, err)
			}
			return errs.Errorf(errs.InternalOnlyLog, "query driver by user: userID[%s]: %s", act.UserID, err)
		}
		filter.DriverID = &drv.ID

	default:
		filter.CustomerID = &act.UserID
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, bookingbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	bkgs, err := a.bookingBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.bookingBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppBookings(bkgs), total, pg)
}

// queryByID returns a booking by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	bkg, _, errResp := a.readableBooking(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppBooking(bkg)
}
