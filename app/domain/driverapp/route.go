package driverapp

import (
	"net/http"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
	"github.com/veltrip/platform/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	DB         sqldb.Beginner
	Auth       *auth.Auth
	UserBus    *userbus.Core
	DriverBus  *driverbus.Core
	VehicleBus *vehiclebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.UserBus, cfg.DriverBus, cfg.VehicleBus)

	app.HandlerFunc(http.MethodGet, version, "/drivers", api.query, authen, mid.Authorize(cfg.Auth, resource.Driver, actions.Get))
	app.HandlerFunc(http.MethodGet, version, "/drivers/available", api.queryAvailable, authen, mid.Authorize(cfg.Auth, resource.Driver, actions.Get))
	app.HandlerFunc(http.MethodGet, version, "/drivers/{driver_id}", api.queryByID, authen, mid.Authorize(cfg.Auth, resource.Driver, actions.Get))
	app.HandlerFunc(http.MethodPost, version, "/drivers", api.create, authen, mid.Authorize(cfg.Auth, resource.Driver, actions.Create), transaction)
	app.HandlerFunc(http.MethodPut, version, "/drivers/me/location", api.updateLocation, authen, mid.Authorize(cfg.Auth, resource.Driver, actions.Update))
	app.HandlerFunc(http.MethodPut, version, "/drivers/{driver_id}", api.update, authen, mid.Authorize(cfg.Auth, resource.Driver, actions.Update))
	app.HandlerFunc(http.MethodPut, version, "/drivers/{driver_id}/vehicle", api.assignVehicle, authen, mid.Authorize(cfg.Auth, resource.Driver, actions.Update))
	app.HandlerFunc(http.MethodDelete, version, "/drivers/{driver_id}", api.delete, authen, mid.Authorize(cfg.Auth, resource.Driver, actions.Delete))
}
