// Package paymentapp provides the application layer for ride payments.
package paymentapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/app/sdk/query"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/domain/paymentbus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/role"
)

type app struct {
	paymentBus *paymentbus.Core
	bookingBus *bookingbus.Core
}

func newApp(paymentBus *paymentbus.Core, bookingBus *bookingbus.Core) *app {
	return &app{
		paymentBus: paymentBus,
		bookingBus: bookingBus,
	}
}

// scopedPayment loads the payment from the path and enforces visibility.
func (a *app) scopedPayment(ctx context.Context, r *http.Request) (paymentbus.Payment, web.Encoder) {
	paymentID, err := uuid.Parse(r.PathValue("payment_id"))
	if err != nil {
		return paymentbus.Payment{}, errs.NewFieldErrors("payment_id", err)
	}

	pay, err := a.paymentBus.QueryByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentbus.ErrNotFound) {
			return paymentbus.Payment{}, errs.New(errs.NotFound, err)
		}
		return paymentbus.Payment{}, errs.Errorf(errs.InternalOnlyLog, "query payment: paymentID[%s]: %s", paymentID, err)
	}

	claims := mid.GetClaims(ctx)
	switch claims.Role {
	case role.Admin.String():
		// Unrestricted.

	case role.Customer.String():
		userID, err := mid.GetUserID(ctx)
		if err != nil {
			return paymentbus.Payment{}, errs.New(errs.Unauthenticated, err)
		}
		if pay.CustomerID != userID {
			return paymentbus.Payment{}, errs.New(errs.NotFound, paymentbus.ErrNotFound)
		}

	default:
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return paymentbus.Payment{}, errs.New(errs.Unauthenticated, err)
		}
		if pay.CompanyID != companyID {
			return paymentbus.Payment{}, errs.New(errs.NotFound, paymentbus.ErrNotFound)
		}
	}

	return pay, nil
}

// create records a payment for a completed booking. Only the customer who
// took the ride can pay for it.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewPayment
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	np, err := toBusNewPayment(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bkg, err := a.bookingBus.QueryByID(ctx, np.BookingID)
	if err != nil {
		if errors.Is(err, bookingbus.ErrNotFound) {
			return errs.NewFieldErrors("bookingId", err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query booking: bookingID[%s]: %s", np.BookingID, err)
	}

	pay, err := a.paymentBus.Create(ctx, userID, bkg, np)
	if err != nil {
		switch {
		case errors.Is(err, paymentbus.ErrNotOwner):
			return errs.New(errs.PermissionDenied, err)
		case errors.Is(err, paymentbus.ErrBookingNotCompleted):
			return errs.New(errs.FailedPrecondition, err)
		case errors.Is(err, paymentbus.ErrPaymentExists):
			return errs.New(errs.Aborted, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: bookingID[%s]: %s", np.BookingID, err)
	}

	return toAppPayment(pay)
}

// verify marks a pending payment as paid.
func (a *app) verify(ctx context.Context, r *http.Request) web.Encoder {
	pay, errResp := a.scopedPayment(ctx, r)
	if errResp != nil {
		return errResp
	}

	updPay, err := a.paymentBus.Verify(ctx, pay)
	if err != nil {
		if errors.Is(err, paymentbus.ErrAlreadyProcessed) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "verify: paymentID[%s]: %s", pay.ID, err)
	}

	return toAppPayment(updPay)
}

// query returns a list of payments with paging, scoped to what the caller
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

	claims := mid.GetClaims(ctx)
	switch claims.Role {
	case role.Admin.String():
		// Unrestricted.

	case role.Customer.String():
		userID, err := mid.GetUserID(ctx)
		if err != nil {
			return errs.New(errs.Unauthenticated, err)
		}
		filter.CustomerID = &userID

	default:
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return errs.New(errs.Unauthenticated, err)
		}
		filter.CompanyID = &companyID
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, paymentbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	pays, err := a.paymentBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.paymentBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppPayments(pays), total, pg)
}

// queryByID returns a payment by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	pay, errResp := a.scopedPayment(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppPayment(pay)
}
