package bookingapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veltrip/platform/app/sdk/errs"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/types/bookingstatus"
)

// Stop represents a pickup or drop point of a ride.
type Stop struct {
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lon     float64 `json:"lon" validate:"min=-180,max=180"`
	Address string  `json:"address"`
}

func toBusStop(app Stop) bookingbus.Stop {
	return bookingbus.Stop{
		Point: geo.Point{
			Lat: app.Lat,
			Lon: app.Lon,
		},
		Address: app.Address,
	}
}

func toAppStop(bus bookingbus.Stop) Stop {
	return Stop{
		Lat:     bus.Point.Lat,
		Lon:     bus.Point.Lon,
		Address: bus.Address,
	}
}

// Booking represents information about an individual booking.
type Booking struct {
	ID                 string   `json:"id"`
	CompanyID          string   `json:"companyId"`
	CustomerID         string   `json:"customerId"`
	DriverID           string   `json:"driverId,omitempty"`
	Pickup             Stop     `json:"pickup"`
	Drop               Stop     `json:"drop"`
	DistanceKm         float64  `json:"distanceKm"`
	EstimatedFare      float64  `json:"estimatedFare"`
	ActualFare         *float64 `json:"actualFare,omitempty"`
	Status             string   `json:"status"`
	ScheduledAt        string   `json:"scheduledAt,omitempty"`
	StartedAt          string   `json:"startedAt,omitempty"`
	CompletedAt        string   `json:"completedAt,omitempty"`
	CancelledAt        string   `json:"cancelledAt,omitempty"`
	CancellationReason string   `json:"cancellationReason,omitempty"`
	Rating             *int     `json:"rating,omitempty"`
	Feedback           string   `json:"feedback,omitempty"`
	DateCreated        string   `json:"dateCreated"`
	DateUpdated        string   `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (b Booking) Encode() ([]byte, string, error) {
	data, err := json.Marshal(b)
	return data, "application/json", err
}

func formatOptTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toAppBooking(bus bookingbus.Booking) Booking {
	var driverID string
	if bus.DriverID != nil {
		driverID = bus.DriverID.String()
	}

	return Booking{
		ID:                 bus.ID.String(),
		CompanyID:          bus.CompanyID.String(),
		CustomerID:         bus.CustomerID.String(),
		DriverID:           driverID,
		Pickup:             toAppStop(bus.Pickup),
		Drop:               toAppStop(bus.Drop),
		DistanceKm:         bus.DistanceKm,
		EstimatedFare:      bus.EstimatedFare,
		ActualFare:         bus.ActualFare,
		Status:             bus.Status.String(),
		ScheduledAt:        formatOptTime(bus.ScheduledAt),
		StartedAt:          formatOptTime(bus.StartedAt),
		CompletedAt:        formatOptTime(bus.CompletedAt),
		CancelledAt:        formatOptTime(bus.CancelledAt),
		CancellationReason: bus.CancellationReason,
		Rating:             bus.Rating,
		Feedback:           bus.Feedback,
		DateCreated:        bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:        bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppBookings(bkgs []bookingbus.Booking) []Booking {
	app := make([]Booking, len(bkgs))
	for i, bkg := range bkgs {
		app[i] = toAppBooking(bkg)
	}
	return app
}

// =============================================================================

// NewBooking defines the data needed to book a ride.
type NewBooking struct {
	CompanyID   string `json:"companyId"`
	CustomerID  string `json:"customerId"`
	DriverID    string `json:"driverId"`
	Pickup      Stop   `json:"pickup" validate:"required"`
	Drop        Stop   `json:"drop" validate:"required"`
	ScheduledAt string `json:"scheduledAt"`
}

// Decode implements the web.Decoder interface.
func (app *NewBooking) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewBooking) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewBooking(app NewBooking, companyID uuid.UUID, customerID uuid.UUID) (bookingbus.NewBooking, error) {
	var driverID *uuid.UUID
	if app.DriverID != "" {
		id, err := uuid.Parse(app.DriverID)
		if err != nil {
			return bookingbus.NewBooking{}, fmt.Errorf("parse driver id: %w", err)
		}
		driverID = &id
	}

	var scheduledAt *time.Time
	if app.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, app.ScheduledAt)
		if err != nil {
			return bookingbus.NewBooking{}, fmt.Errorf("parse scheduled at: %w", err)
		}
		scheduledAt = &t
	}

	bus := bookingbus.NewBooking{
		CompanyID:   companyID,
		CustomerID:  customerID,
		DriverID:    driverID,
		Pickup:      toBusStop(app.Pickup),
		Drop:        toBusStop(app.Drop),
		ScheduledAt: scheduledAt,
	}

	return bus, nil
}

// =============================================================================

// UpdateBooking defines the data needed to update a booking.
type UpdateBooking struct {
	Pickup             *Stop    `json:"pickup"`
	Drop               *Stop    `json:"drop"`
	Status             *string  `json:"status"`
	ActualFare         *float64 `json:"actualFare" validate:"omitempty,gte=0"`
	ScheduledAt        *string  `json:"scheduledAt"`
	CancellationReason *string  `json:"cancellationReason"`
	Rating             *int     `json:"rating" validate:"omitempty,min=1,max=5"`
	Feedback           *string  `json:"feedback"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateBooking) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateBooking) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateBooking(app UpdateBooking) (bookingbus.UpdateBooking, error) {
	var pickup *bookingbus.Stop
	if app.Pickup != nil {
		s := toBusStop(*app.Pickup)
		pickup = &s
	}

	var drop *bookingbus.Stop
	if app.Drop != nil {
		s := toBusStop(*app.Drop)
		drop = &s
	}

	var status *bookingstatus.Status
	if app.Status != nil {
		st, err := bookingstatus.Parse(*app.Status)
		if err != nil {
			return bookingbus.UpdateBooking{}, fmt.Errorf("parse status: %w", err)
		}
		status = &st
	}

	var scheduledAt *time.Time
	if app.ScheduledAt != nil {
		t, err := time.Parse(time.RFC3339, *app.ScheduledAt)
		if err != nil {
			return bookingbus.UpdateBooking{}, fmt.Errorf("parse scheduled at: %w", err)
		}
		scheduledAt = &t
	}

	bus := bookingbus.UpdateBooking{
		Pickup:             pickup,
		Drop:               drop,
		Status:             status,
		ActualFare:         app.ActualFare,
		ScheduledAt:        scheduledAt,
		CancellationReason: app.CancellationReason,
		Rating:             app.Rating,
		Feedback:           app.Feedback,
	}

	return bus, nil
}

// =============================================================================

// AssignDriver defines the data needed to attach a driver to a booking.
type AssignDriver struct {
	DriverID string `json:"driverId" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *AssignDriver) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app AssignDriver) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// =============================================================================

// CancelBooking defines the data accompanying a cancellation.
type CancelBooking struct {
	Reason string `json:"reason"`
}

// Decode implements the web.Decoder interface.
func (app *CancelBooking) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}
