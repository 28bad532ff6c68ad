package userapp

import (
	"net/http"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, mid.Authorize(cfg.Auth, resource.User, actions.Get))
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID, authen, mid.Authorize(cfg.Auth, resource.User, actions.Get))
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, authen, mid.Authorize(cfg.Auth, resource.User, actions.Create))
	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}", api.update, authen, mid.Authorize(cfg.Auth, resource.User, actions.Update))
	app.HandlerFunc(http.MethodDelete, version, "/users/{user_id}", api.delete, authen, mid.Authorize(cfg.Auth, resource.User, actions.Delete))

	app.HandlerFunc(http.MethodGet, version, "/me", api.me, authen)
	app.HandlerFunc(http.MethodPut, version, "/me", api.updateMe, authen)
}
