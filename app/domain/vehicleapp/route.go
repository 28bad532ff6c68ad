package vehicleapp

import (
	"net/http"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	VehicleBus *vehiclebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.VehicleBus)

	app.HandlerFunc(http.MethodGet, version, "/vehicles", api.query, authen, mid.Authorize(cfg.Auth, resource.Vehicle, actions.Get))
	app.HandlerFunc(http.MethodGet, version, "/vehicles/{vehicle_id}", api.queryByID, authen, mid.Authorize(cfg.Auth, resource.Vehicle, actions.Get))
	app.HandlerFunc(http.MethodPost, version, "/vehicles", api.create, authen, mid.Authorize(cfg.Auth, resource.Vehicle, actions.Create))
	app.HandlerFunc(http.MethodPut, version, "/vehicles/{vehicle_id}", api.update, authen, mid.Authorize(cfg.Auth, resource.Vehicle, actions.Update))
	app.HandlerFunc(http.MethodDelete, version, "/vehicles/{vehicle_id}", api.delete, authen, mid.Authorize(cfg.Auth, resource.Vehicle, actions.Delete))
}
