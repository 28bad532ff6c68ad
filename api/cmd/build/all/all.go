package all

import (
	"github.com/veltrip/platform/app/domain/authapp"
	"github.com/veltrip/platform/app/domain/bookingapp"
	"github.com/veltrip/platform/app/domain/checkapp"
	"github.com/veltrip/platform/app/domain/companyapp"
	"github.com/veltrip/platform/app/domain/driverapp"
	"github.com/veltrip/platform/app/domain/paymentapp"
	"github.com/veltrip/platform/app/domain/userapp"
	"github.com/veltrip/platform/app/domain/vehicleapp"
	"github.com/veltrip/platform/app/sdk/mux"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Log:        cfg.Log,
		DB:         sqldb.NewBeginner(cfg.DB),
		Auth:       cfg.AuthConfig.Auth,
		ActiveKID:  cfg.AuthConfig.ActiveKID,
		UserBus:    cfg.BusConfig.UserBus,
		CompanyBus: cfg.BusConfig.CompanyBus,
	})

	userapp.Routes(app, userapp.Config{
		Auth:    cfg.AuthConfig.Auth,
		UserBus: cfg.BusConfig.UserBus,
	})

	companyapp.Routes(app, companyapp.Config{
		Auth:       cfg.AuthConfig.Auth,
		CompanyBus: cfg.BusConfig.CompanyBus,
	})

	vehicleapp.Routes(app, vehicleapp.Config{
		Auth:       cfg.AuthConfig.Auth,
		VehicleBus: cfg.BusConfig.VehicleBus,
	})

	driverapp.Routes(app, driverapp.Config{
		Log:        cfg.Log,
		DB:         sqldb.NewBeginner(cfg.DB),
		Auth:       cfg.AuthConfig.Auth,
		UserBus:    cfg.BusConfig.UserBus,
		DriverBus:  cfg.BusConfig.DriverBus,
		VehicleBus: cfg.BusConfig.VehicleBus,
	})

	bookingapp.Routes(app, bookingapp.Config{
		Auth:       cfg.AuthConfig.Auth,
		BookingBus: cfg.BusConfig.BookingBus,
		DriverBus:  cfg.BusConfig.DriverBus,
	})

	paymentapp.Routes(app, paymentapp.Config{
		Auth:       cfg.AuthConfig.Auth,
		PaymentBus: cfg.BusConfig.PaymentBus,
		BookingBus: cfg.BusConfig.BookingBus,
	})
}
