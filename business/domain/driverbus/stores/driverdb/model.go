package driverdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/types/name"
)

type driverDB struct {
	ID        uuid.UUID       `db:"driver_id"`
	UserID    uuid.UUID       `db:"user_id"`
	CompanyID uuid.UUID       `db:"company_id"`
	License   string          `db:"license"`
	VehicleID uuid.NullUUID   `db:"vehicle_id"`
	Online    bool            `db:"online"`
	Approved  bool            `db:"approved"`
	Lat       sql.NullFloat64 `db:"current_lat"`
	Lon       sql.NullFloat64 `db:"current_lon"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func toDBDriver(bus driverbus.Driver) driverDB {
	db := driverDB{
		ID:        bus.ID,
		UserID:    bus.UserID,
		CompanyID: bus.CompanyID,
		License:   bus.License.String(),
		Online:    bus.Online,
		Approved:  bus.Approved,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}

	if bus.VehicleID != nil {
		db.VehicleID = uuid.NullUUID{UUID: *bus.VehicleID, Valid: true}
	}

	if bus.Location != nil {
		db.Lat = sql.NullFloat64{Float64: bus.Location.Lat, Valid: true}
		db.Lon = sql.NullFloat64{Float64: bus.Location.Lon, Valid: true}
	}

	return db
}

func toBusDriver(db driverDB) (driverbus.Driver, error) {
	lic, err := name.Parse(db.License)
	if err != nil {
		return driverbus.Driver{}, fmt.Errorf("parse license: %w", err)
	}

	bus := driverbus.Driver{
		ID:        db.ID,
		UserID:    db.UserID,
		CompanyID: db.CompanyID,
		License:   lic,
		Online:    db.Online,
		Approved:  db.Approved,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	if db.VehicleID.Valid {
		vehicleID := db.VehicleID.UUID
		bus.VehicleID = &vehicleID
	}

	if db.Lat.Valid && db.Lon.Valid {
		bus.Location = &geo.Point{
			Lat: db.Lat.Float64,
			Lon: db.Lon.Float64,
		}
	}

	return bus, nil
}

func toBusDrivers(dbs []driverDB) ([]driverbus.Driver, error) {
	bus := make([]driverbus.Driver, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusDriver(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
