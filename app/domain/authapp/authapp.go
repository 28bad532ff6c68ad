// Package authapp provides the application layer for authentication.
package authapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/role"
)

type app struct {
	auth       *auth.Auth
	kid        string
	userBus    *userbus.Core
	companyBus *companybus.Core
}

func newApp(ath *auth.Auth, kid string, userBus *userbus.Core, companyBus *companybus.Core) *app {
	return &app{
		auth:       ath,
		kid:        kid,
		userBus:    userBus,
		companyBus: companyBus,
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

	companyBus, err := a.companyBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	app := app{
		auth:       a.auth,
		kid:        a.kid,
		userBus:    userBus,
		companyBus: companyBus,
	}

	return &app, nil
}

func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenStr, err := a.auth.GenerateToken(a.kid, usr.ID, usr.CompanyID, usr.Role)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}

// register creates a customer account under the company resolved from the
// request host. Unknown hosts are rejected before any user is created.
func (a *app) register(ctx context.Context, r *http.Request) web.Encoder {
	var req Register
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, err := a.companyBus.QueryByDomain(ctx, r.Host)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.InvalidArgument, fmt.Errorf("no company registered for host %q", r.Host))
		}
		return errs.Errorf(errs.InternalOnlyLog, "query company by domain: %s", err)
	}

	nu, err := toBusNewCustomer(req, cmp.ID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "register: %s", err)
	}

	tokenStr, err := a.auth.GenerateToken(a.kid, usr.ID, usr.CompanyID, usr.Role)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppRegistered(usr, tokenStr)
}

// registerCompany provisions a new company together with its first company
// admin user. Both writes happen inside the request transaction so a failed
// admin creation leaves no orphan company behind.
func (a *app) registerCompany(ctx context.Context, r *http.Request) web.Encoder {
	var req RegisterCompany
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	a, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nc, err := toBusNewCompany(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, err := a.companyBus.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, companybus.ErrUniqueDomain) {
			return errs.New(errs.Aborted, companybus.ErrUniqueDomain)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create company: %s", err)
	}

	nu, err := toBusNewCompanyAdmin(req, cmp.ID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create company admin: %s", err)
	}

	tokenStr, err := a.auth.GenerateToken(a.kid, usr.ID, usr.CompanyID, role.Company)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppRegisteredCompany(cmp, usr, tokenStr)
}
