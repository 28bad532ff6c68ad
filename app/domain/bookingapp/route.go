package bookingapp

import (
	"net/http"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	BookingBus *bookingbus.Core
	DriverBus  *driverbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.BookingBus, cfg.DriverBus)

	app.HandlerFunc(http.MethodGet, version, "/bookings", api.query, authen, mid.Authorize(cfg.Auth, resource.Booking, actions.Get))
	app.HandlerFunc(http.MethodGet, version, "/bookings/{booking_id}", api.queryByID, authen, mid.Authorize(cfg.Auth, resource.Booking, actions.Get))
	app.HandlerFunc(http.MethodPost, version, "/bookings", api.create, authen, mid.Authorize(cfg.Auth, resource.Booking, actions.Create))
	app.HandlerFunc(http.MethodPut, version, "/bookings/{booking_id}", api.update, authen, mid.Authorize(cfg.Auth, resource.Booking, actions.Update))
	app.HandlerFunc(http.MethodPost, version, "/bookings/{booking_id}/confirm", api.confirm, authen, mid.Authorize(cfg.Auth, resource.Booking, actions.Confirm))
	app.HandlerFunc(http.MethodPost, version, "/bookings/{booking_id}/assign", api.assignDriver, authen, mid.Authorize(cfg.Auth, resource.Booking, actions.Assign))
	app.HandlerFunc(http.MethodPost, version, "/bookings/{booking_id}/cancel", api.cancel, authen, mid.Authorize(cfg.Auth, resource.Booking, actions.Cancel))
	app.HandlerFunc(http.MethodDelete, version, "/bookings/{booking_id}", api.remove, authen, mid.Authorize(cfg.Auth, resource.Booking, actions.Delete))
}
