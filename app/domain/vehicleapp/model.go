package vehicleapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/plate"
)

// Vehicle represents information about an individual vehicle.
type Vehicle struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Plate       string `json:"plate"`
	Type        string `json:"type"`
	Model       string `json:"model,omitempty"`
	Color       string `json:"color,omitempty"`
	Active      bool   `json:"active"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (v Vehicle) Encode() ([]byte, string, error) {
	data, err := json.Marshal(v)
	return data, "application/json", err
}

func toAppVehicle(bus vehiclebus.Vehicle) Vehicle {
	return Vehicle{
		ID:          bus.ID.String(),
		CompanyID:   bus.CompanyID.String(),
		Plate:       bus.Plate.String(),
		Type:        bus.Type.String(),
		Model:       bus.Model.String(),
		Color:       bus.Color.String(),
		Active:      bus.Active,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppVehicles(vehs []vehiclebus.Vehicle) []Vehicle {
	app := make([]Vehicle, len(vehs))
	for i, veh := range vehs {
		app[i] = toAppVehicle(veh)
	}
	return app
}

// =============================================================================

// NewVehicle defines the data needed to add a new vehicle.
type NewVehicle struct {
	CompanyID string `json:"companyId"`
	Plate     string `json:"plate" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Model     string `json:"model"`
	Color     string `json:"color"`
}

// Decode implements the web.Decoder interface.
func (app *NewVehicle) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewVehicle) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewVehicle(app NewVehicle, companyID uuid.UUID) (vehiclebus.NewVehicle, error) {
	plt, err := plate.Parse(app.Plate)
	if err != nil {
		return vehiclebus.NewVehicle{}, fmt.Errorf("parse plate: %w", err)
	}

	typ, err := name.Parse(app.Type)
	if err != nil {
		return vehiclebus.NewVehicle{}, fmt.Errorf("parse type: %w", err)
	}

	mdl, err := name.ParseNull(app.Model)
	if err != nil {
		return vehiclebus.NewVehicle{}, fmt.Errorf("parse model: %w", err)
	}

	clr, err := name.ParseNull(app.Color)
	if err != nil {
		return vehiclebus.NewVehicle{}, fmt.Errorf("parse color: %w", err)
	}

	bus := vehiclebus.NewVehicle{
		CompanyID: companyID,
		Plate:     plt,
		Type:      typ,
		Model:     mdl,
		Color:     clr,
	}

	return bus, nil
}

// =============================================================================

// UpdateVehicle defines the data needed to update a vehicle.
type UpdateVehicle struct {
	Plate  *string `json:"plate"`
	Type   *string `json:"type"`
	Model  *string `json:"model"`
	Color  *string `json:"color"`
	Active *bool   `json:"active"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateVehicle) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateVehicle) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateVehicle(app UpdateVehicle) (vehiclebus.UpdateVehicle, error) {
	var plt *plate.Plate
	if app.Plate != nil {
		p, err := plate.Parse(*app.Plate)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse plate: %w", err)
		}
		plt = &p
	}

	var typ *name.Name
	if app.Type != nil {
		t, err := name.Parse(*app.Type)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse type: %w", err)
		}
		typ = &t
	}

	var mdl *name.Null
	if app.Model != nil {
		m, err := name.ParseNull(*app.Model)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse model: %w", err)
		}
		mdl = &m
	}

	var clr *name.Null
	if app.Color != nil {
		c, err := name.ParseNull(*app.Color)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse color: %w", err)
		}
		clr = &c
	}

	bus := vehiclebus.UpdateVehicle{
		Plate:  plt,
		Type:   typ,
		Model:  mdl,
		Color:  clr,
		Active: app.Active,
	}

	return bus, nil
}
