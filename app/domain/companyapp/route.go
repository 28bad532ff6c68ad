package companyapp

import (
	"net/http"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	CompanyBus *companybus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.CompanyBus)

	app.HandlerFunc(http.MethodGet, version, "/companies", api.query, authen, mid.Authorize(cfg.Auth, resource.Company, actions.Get))
	app.HandlerFunc(http.MethodGet, version, "/companies/{company_id}", api.queryByID, authen, mid.Authorize(cfg.Auth, resource.Company, actions.Get))
	app.HandlerFunc(http.MethodPost, version, "/companies", api.create, authen, mid.Authorize(cfg.Auth, resource.Company, actions.Create))
	app.HandlerFunc(http.MethodPut, version, "/companies/{company_id}", api.update, authen, mid.Authorize(cfg.Auth, resource.Company, actions.Update))
	app.HandlerFunc(http.MethodDelete, version, "/companies/{company_id}", api.delete, authen, mid.Authorize(cfg.Auth, resource.Company, actions.Delete))
}
