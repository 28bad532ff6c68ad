package paymentapp

import (
	"net/http"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/app/sdk/mid"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/domain/paymentbus"
	"github.com/veltrip/platform/business/sdk/web"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	PaymentBus *paymentbus.Core
	BookingBus *bookingbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.PaymentBus, cfg.BookingBus)

	app.HandlerFunc(http.MethodGet, version, "/payments", api.query, authen, mid.Authorize(cfg.Auth, resource.Payment, actions.Get))
	app.HandlerFunc(http.MethodGet, version, "/payments/{payment_id}", api.queryByID, authen, mid.Authorize(cfg.Auth, resource.Payment, actions.Get))
	app.HandlerFunc(http.MethodPost, version, "/payments", api.create, authen, mid.Authorize(cfg.Auth, resource.Payment, actions.Create))
	app.HandlerFunc(http.MethodPost, version, "/payments/{payment_id}/verify", api.verify, authen, mid.Authorize(cfg.Auth, resource.Payment, actions.Update))
}
