package authapp

import (
	"net/http"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	DB         sqldb.Beginner
	Auth       *auth.Auth
	ActiveKID  string
	UserBus    *userbus.Core
	CompanyBus *companybus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.Auth, cfg.ActiveKID, cfg.UserBus, cfg.CompanyBus)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
	app.HandlerFunc(http.MethodPost, version, "/auth/register", api.register)
	app.HandlerFunc(http.MethodPost, version, "/auth/register-company", api.registerCompany, transaction)
}
