// Package userapp provides the application layer for user management.
package userapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/app/sdk/query"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/role"
)

type app struct {
	userBus *userbus.Core
}

func newApp(userBus *userbus.Core) *app {
	return &app{
		userBus: userBus,
	}
}

// scopedUser loads the user from the path and enforces the tenant boundary.
// Platform admins may reach any user, everyone else stays inside their own
// company.
func (a *app) scopedUser(ctx context.Context, r *http.Request) (userbus.User, web.Encoder) {
	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return userbus.User{}, errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return userbus.User{}, errs.New(errs.NotFound, err)
		}
		return userbus.User{}, errs.Errorf(errs.InternalOnlyLog, "query user: userID[%s]: %s", userID, err)
	}

	claims := mid.GetClaims(ctx)
	if claims.Role != role.Admin.String() {
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return userbus.User{}, errs.New(errs.Unauthenticated, err)
		}
		if usr.CompanyID != companyID {
			return userbus.User{}, errs.New(errs.NotFound, userbus.ErrNotFound)
		}
	}

	return usr, nil
}

// create adds a new user under the caller's company. Admins may target any
// company via the companyId field.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
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

	nu, err := toBusNewUser(app, companyID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: usr[%+v]: %s", app.Email, err)
	}

	return toAppUser(usr)
}

// update modifies a user inside the caller's company.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, errResp := a.scopedUser(ctx, r)
	if errResp != nil {
		return errResp
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: userID[%s]: %s", usr.ID, err)
	}

	return toAppUser(updUsr)
}

// delete disables a user inside the caller's company.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	usr, errResp := a.scopedUser(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := a.userBus.Delete(ctx, usr); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: userID[%s]: %s", usr.ID, err)
	}

	return nil
}

// query returns a list of users with paging, scoped to the caller's company
// for non admin callers.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppUsers(usrs), total, pg)
}

// queryByID returns a user by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	usr, errResp := a.scopedUser(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppUser(usr)
}

// me returns the authenticated user.
func (a *app) me(ctx context.Context, _ *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query self: userID[%s]: %s", userID, err)
	}

	return toAppUser(usr)
}

// updateMe updates the authenticated user's own account.
func (a *app) updateMe(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query self: userID[%s]: %s", userID, err)
	}

	// Self service updates may not change role or enabled status.
	app.Role = nil
	app.Enabled = nil

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update self: userID[%s]: %s", usr.ID, err)
	}

	return toAppUser(updUsr)
}
