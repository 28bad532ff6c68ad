package driverapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/password"
	"github.com/veltrip/platform/business/types/phone"
	"github.com/veltrip/platform/business/types/role"
)

// Location represents a driver's reported position.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Driver represents information about an individual driver.
type Driver struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CompanyID   string    `json:"companyId"`
	License     string    `json:"license"`
	VehicleID   string    `json:"vehicleId,omitempty"`
	Online      bool      `json:"online"`
	Approved    bool      `json:"approved"`
	Location    *Location `json:"location,omitempty"`
	DateCreated string    `json:"dateCreated"`
	DateUpdated string    `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (d Driver) Encode() ([]byte, string, error) {
	data, err := json.Marshal(d)
	return data, "application/json", err
}

func toAppDriver(bus driverbus.Driver) Driver {
	var vehicleID string
	if bus.VehicleID != nil {
		vehicleID = bus.VehicleID.String()
	}

	var loc *Location
	if bus.Location != nil {
		loc = &Location{
			Lat: bus.Location.Lat,
			Lon: bus.Location.Lon,
		}
	}

	return Driver{
		ID:          bus.ID.String(),
		UserID:      bus.UserID.String(),
		CompanyID:   bus.CompanyID.String(),
		License:     bus.License.String(),
		VehicleID:   vehicleID,
		Online:      bus.Online,
		Approved:    bus.Approved,
		Location:    loc,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppDrivers(drvs []driverbus.Driver) []Driver {
	app := make([]Driver, len(drvs))
	for i, drv := range drvs {
		app[i] = toAppDriver(drv)
	}
	return app
}

// DriverList is the response for the available drivers endpoint. The order
// of the items is closest first.
type DriverList struct {
	Items []Driver `json:"items"`
}

// Encode implements the web.Encoder interface.
func (dl DriverList) Encode() ([]byte, string, error) {
	data, err := json.Marshal(dl)
	return data, "application/json", err
}

func toAppDriverList(drvs []driverbus.Driver) DriverList {
	return DriverList{
		Items: toAppDrivers(drvs),
	}
}

// =============================================================================

// NewDriverUser defines the account details for creating a driver user
// together with the profile.
type NewDriverUser struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"eqfield=Password"`
}

// NewDriver defines the data needed to add a new driver. Either UserID or
// User must be provided.
type NewDriver struct {
	CompanyID string         `json:"companyId"`
	UserID    string         `json:"userId" validate:"required_without=User"`
	User      *NewDriverUser `json:"user"`
	License   string         `json:"license" validate:"required"`
	VehicleID string         `json:"vehicleId"`
}

// Decode implements the web.Decoder interface.
func (app *NewDriver) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewDriver) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewDriver(app NewDriver, userID uuid.UUID, companyID uuid.UUID) (driverbus.NewDriver, error) {
	lic, err := name.Parse(app.License)
	if err != nil {
		return driverbus.NewDriver{}, fmt.Errorf("parse license: %w", err)
	}

	var vehicleID *uuid.UUID
	if app.VehicleID != "" {
		id, err := uuid.Parse(app.VehicleID)
		if err != nil {
			return driverbus.NewDriver{}, fmt.Errorf("parse vehicle id: %w", err)
		}
		vehicleID = &id
	}

	bus := driverbus.NewDriver{
		UserID:    userID,
		CompanyID: companyID,
		License:   lic,
		VehicleID: vehicleID,
	}

	return bus, nil
}

func toBusNewDriverUser(app NewDriverUser, companyID uuid.UUID) (userbus.NewUser, error) {
	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse phone: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	bus := userbus.NewUser{
		CompanyID: companyID,
		Name:      nme,
		Email:     *addr,
		Phone:     ph,
		Role:      role.Driver,
		Password:  pass,
	}

	return bus, nil
}

// =============================================================================

// UpdateDriver defines the data needed to update a driver.
type UpdateDriver struct {
	License   *string `json:"license"`
	VehicleID *string `json:"vehicleId"`
	Online    *bool   `json:"online"`
	Approved  *bool   `json:"approved"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateDriver) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateDriver) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateDriver(app UpdateDriver) (driverbus.UpdateDriver, error) {
	var lic *name.Name
	if app.License != nil {
		l, err := name.Parse(*app.License)
		if err != nil {
			return driverbus.UpdateDriver{}, fmt.Errorf("parse license: %w", err)
		}
		lic = &l
	}

	var vehicleID *uuid.UUID
	if app.VehicleID != nil {
		id, err := uuid.Parse(*app.VehicleID)
		if err != nil {
			return driverbus.UpdateDriver{}, fmt.Errorf("parse vehicle id: %w", err)
		}
		vehicleID = &id
	}

	bus := driverbus.UpdateDriver{
		License:   lic,
		VehicleID: vehicleID,
		Online:    app.Online,
		Approved:  app.Approved,
	}

	return bus, nil
}

// =============================================================================

// AssignVehicle defines the data needed to attach a vehicle to a driver.
type AssignVehicle struct {
	VehicleID string `json:"vehicleId" validate:"required,uuid"`
}

// Decode implements the web.Decoder interface.
func (app *AssignVehicle) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app AssignVehicle) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// =============================================================================

// UpdateLocation defines the data needed to report a driver position.
type UpdateLocation struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateLocation) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateLocation) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusLocation(app UpdateLocation) geo.Point {
	return geo.Point{
		Lat: app.Lat,
		Lon: app.Lon,
	}
}
