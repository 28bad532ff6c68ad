package vehicledb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/vehiclebus"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/plate"
)

type vehicleDB struct {
	ID        uuid.UUID      `db:"vehicle_id"`
	CompanyID uuid.UUID      `db:"company_id"`
	Plate     string         `db:"plate"`
	Type      string         `db:"vehicle_type"`
	Model     sql.NullString `db:"model"`
	Color     sql.NullString `db:"color"`
	Active    bool           `db:"active"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func toDBVehicle(bus vehiclebus.Vehicle) vehicleDB {
	return vehicleDB{
		ID:        bus.ID,
		CompanyID: bus.CompanyID,
		Plate:     bus.Plate.String(),
		Type:      bus.Type.String(),
		Model:     name.ToSQLNullString(bus.Model),
		Color:     name.ToSQLNullString(bus.Color),
		Active:    bus.Active,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusVehicle(db vehicleDB) (vehiclebus.Vehicle, error) {
	plt, err := plate.Parse(db.Plate)
	if err != nil {
		return vehiclebus.Vehicle{}, fmt.Errorf("parse plate: %w", err)
	}

	typ, err := name.Parse(db.Type)
	if err != nil {
		return vehiclebus.Vehicle{}, fmt.Errorf("parse type: %w", err)
	}

	mdl, err := name.ParseNull(db.Model.String)
	if err != nil {
		return vehiclebus.Vehicle{}, fmt.Errorf("parse model: %w", err)
	}

	clr, err := name.ParseNull(db.Color.String)
	if err != nil {
		return vehiclebus.Vehicle{}, fmt.Errorf("parse color: %w", err)
	}

	bus := vehiclebus.Vehicle{
		ID:        db.ID,
		CompanyID: db.CompanyID,
		Plate:     plt,
		Type:      typ,
		Model:     mdl,
		Color:     clr,
		Active:    db.Active,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusVehicles(dbs []vehicleDB) ([]vehiclebus.Vehicle, error) {
	bus := make([]vehiclebus.Vehicle, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusVehicle(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
