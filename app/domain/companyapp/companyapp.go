// Package companyapp provides the application layer for company management.
package companyapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/app/sdk/query"
	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/role"
)

type app struct {
	companyBus *companybus.Core
}

func newApp(companyBus *companybus.Core) *app {
	return &app{
		companyBus: companyBus,
	}
}

// scopedCompany loads the company from the path. Company callers may only
// reach their own record.
func (a *app) scopedCompany(ctx context.Context, r *http.Request) (companybus.Company, web.Encoder) {
	companyID, err := uuid.Parse(r.PathValue("company_id"))
	if err != nil {
		return companybus.Company{}, errs.NewFieldErrors("company_id", err)
	}

	claims := mid.GetClaims(ctx)
	if claims.Role != role.Admin.String() {
		callerCompanyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return companybus.Company{}, errs.New(errs.Unauthenticated, err)
		}
		if companyID != callerCompanyID {
			return companybus.Company{}, errs.New(errs.NotFound, companybus.ErrNotFound)
		}
	}

	cmp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return companybus.Company{}, errs.New(errs.NotFound, err)
		}
		return companybus.Company{}, errs.Errorf(errs.InternalOnlyLog, "query company: companyID[%s]: %s", companyID, err)
	}

	return cmp, nil
}

// create provisions a new company. Only platform admins reach this handler.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nc, err := toBusNewCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, err := a.companyBus.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, companybus.ErrUniqueDomain) {
			return errs.New(errs.Aborted, companybus.ErrUniqueDomain)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: company[%+v]: %s", app.Name, err)
	}

	return toAppCompany(cmp)
}

// update modifies company details.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, errResp := a.scopedCompany(ctx, r)
	if errResp != nil {
		return errResp
	}

	// Only platform admins may flip the enabled flag.
	claims := mid.GetClaims(ctx)
	if claims.Role != role.Admin.String() {
		app.Enabled = nil
	}

	uc, err := toBusUpdateCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updCmp, err := a.companyBus.Update(ctx, cmp, uc)
	if err != nil {
		if errors.Is(err, companybus.ErrUniqueDomain) {
			return errs.New(errs.Aborted, companybus.ErrUniqueDomain)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: companyID[%s]: %s", cmp.ID, err)
	}

	return toAppCompany(updCmp)
}

// delete disables a company. The record stays behind for audit.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	cmp, errResp := a.scopedCompany(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := a.companyBus.Delete(ctx, cmp); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: companyID[%s]: %s", cmp.ID, err)
	}

	return nil
}

// query returns a list of companies with paging.
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

	// Non admin callers only ever see their own company.
	claims := mid.GetClaims(ctx)
	if claims.Role != role.Admin.String() {
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return errs.New(errs.Unauthenticated, err)
		}
		filter.ID = &companyID
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, companybus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	cmps, err := a.companyBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.companyBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppCompanies(cmps), total, pg)
}

// queryByID returns a company by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	cmp, errResp := a.scopedCompany(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppCompany(cmp)
}
