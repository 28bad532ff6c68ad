package bookingdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/types/bookingstatus"
)

type bookingDB struct {
	ID                 uuid.UUID       `db:"booking_id"`
	CompanyID          uuid.UUID       `db:"company_id"`
	CustomerID         uuid.UUID       `db:"customer_id"`
	DriverID           uuid.NullUUID   `db:"driver_id"`
	PickupLat          float64         `db:"pickup_lat"`
	PickupLon          float64         `db:"pickup_lon"`
	PickupAddress      string          `db:"pickup_address"`
	DropLat            float64         `db:"drop_lat"`
	DropLon            float64         `db:"drop_lon"`
	DropAddress        string          `db:"drop_address"`
	DistanceKm         float64         `db:"distance_km"`
	EstimatedFare      float64         `db:"estimated_fare"`
	ActualFare         sql.NullFloat64 `db:"actual_fare"`
	Status             string          `db:"status"`
	ScheduledAt        sql.NullTime    `db:"scheduled_at"`
	StartedAt          sql.NullTime    `db:"started_at"`
	CompletedAt        sql.NullTime    `db:"completed_at"`
	CancelledAt        sql.NullTime    `db:"cancelled_at"`
	CancellationReason sql.NullString  `db:"cancellation_reason"`
	Rating             sql.NullInt16   `db:"rating"`
	Feedback           sql.NullString  `db:"feedback"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

func toDBBooking(bus bookingbus.Booking) bookingDB {
	db := bookingDB{
		ID:            bus.ID,
		CompanyID:     bus.CompanyID,
		CustomerID:    bus.CustomerID,
		PickupLat:     bus.Pickup.Point.Lat,
		PickupLon:     bus.Pickup.Point.Lon,
		PickupAddress: bus.Pickup.Address,
		DropLat:       bus.Drop.Point.Lat,
		DropLon:       bus.Drop.Point.Lon,
		DropAddress:   bus.Drop.Address,
		DistanceKm:    bus.DistanceKm,
		EstimatedFare: bus.EstimatedFare,
		Status:        bus.Status.String(),
		CancellationReason: sql.NullString{
			String: bus.CancellationReason,
			Valid:  bus.CancellationReason != "",
		},
		Feedback: sql.NullString{
			String: bus.Feedback,
			Valid:  bus.Feedback != "",
		},
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}

	if bus.DriverID != nil {
		db.DriverID = uuid.NullUUID{UUID: *bus.DriverID, Valid: true}
	}

	if bus.ActualFare != nil {
		db.ActualFare = sql.NullFloat64{Float64: *bus.ActualFare, Valid: true}
	}

	if bus.Rating != nil {
		db.Rating = sql.NullInt16{Int16: int16(*bus.Rating), Valid: true}
	}

	db.ScheduledAt = toNullTime(bus.ScheduledAt)
	db.StartedAt = toNullTime(bus.StartedAt)
	db.CompletedAt = toNullTime(bus.CompletedAt)
	db.CancelledAt = toNullTime(bus.CancelledAt)

	return db
}

func toBusBooking(db bookingDB) (bookingbus.Booking, error) {
	status, err := bookingstatus.Parse(db.Status)
	if err != nil {
		return bookingbus.Booking{}, fmt.Errorf("parse status: %w", err)
	}

	bus := bookingbus.Booking{
		ID:         db.ID,
		CompanyID:  db.CompanyID,
		CustomerID: db.CustomerID,
		Pickup: bookingbus.Stop{
			Point:   geo.Point{Lat: db.PickupLat, Lon: db.PickupLon},
			Address: db.PickupAddress,
		},
		Drop: bookingbus.Stop{
			Point:   geo.Point{Lat: db.DropLat, Lon: db.DropLon},
			Address: db.DropAddress,
		},
		DistanceKm:         db.DistanceKm,
		EstimatedFare:      db.EstimatedFare,
		Status:             status,
		CancellationReason: db.CancellationReason.String,
		Feedback:           db.Feedback.String,
		CreatedAt:          db.CreatedAt.In(time.Local),
		UpdatedAt:          db.UpdatedAt.In(time.Local),
	}

	if db.DriverID.Valid {
		driverID := db.DriverID.UUID
		bus.DriverID = &driverID
	}

	if db.ActualFare.Valid {
		actual := db.ActualFare.Float64
		bus.ActualFare = &actual
	}

	if db.Rating.Valid {
		rating := int(db.Rating.Int16)
		bus.Rating = &rating
	}

	bus.ScheduledAt = fromNullTime(db.ScheduledAt)
	bus.StartedAt = fromNullTime(db.StartedAt)
	bus.CompletedAt = fromNullTime(db.CompletedAt)
	bus.CancelledAt = fromNullTime(db.CancelledAt)

	return bus, nil
}

func toBusBookings(dbs []bookingDB) ([]bookingbus.Booking, error) {
	bus := make([]bookingbus.Booking, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusBooking(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}

	t := nt.Time.In(time.Local)
	return &t
}
