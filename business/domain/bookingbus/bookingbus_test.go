package bookingbus_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/types/bookingstatus"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/role"
)

type fakeDriverStore struct {
	drivers []driverbus.Driver
}

func (s *fakeDriverStore) NewWithTx(tx sqldb.CommitRollbacker) (driverbus.Storer, error) {
	return s, nil
}

func (s *fakeDriverStore) Create(ctx context.Context, drv driverbus.Driver) error {
	s.drivers = append(s.drivers, drv)
	return nil
}

func (s *fakeDriverStore) Update(ctx context.Context, drv driverbus.Driver) error {
	for i := range s.drivers {
		if s.drivers[i].ID == drv.ID {
			s.drivers[i] = drv
			return nil
		}
	}
	return driverbus.ErrNotFound
}

func (s *fakeDriverStore) Query(ctx context.Context, filter driverbus.QueryFilter, orderBy order.By, page page.Page) ([]driverbus.Driver, error) {
	return s.drivers, nil
}

func (s *fakeDriverStore) Count(ctx context.Context, filter driverbus.QueryFilter) (int, error) {
	return len(s.drivers), nil
}

func (s *fakeDriverStore) QueryByID(ctx context.Context, driverID uuid.UUID) (driverbus.Driver, error) {
	for _, drv := range s.drivers {
		if drv.ID == driverID {
			return drv, nil
		}
	}
	return driverbus.Driver{}, driverbus.ErrNotFound
}

func (s *fakeDriverStore) QueryByUserID(ctx context.Context, userID uuid.UUID) (driverbus.Driver, error) {
	for _, drv := range s.drivers {
		if drv.UserID == userID {
			return drv, nil
		}
	}
	return driverbus.Driver{}, driverbus.ErrNotFound
}

func (s *fakeDriverStore) QueryAvailable(ctx context.Context, companyID uuid.UUID) ([]driverbus.Driver, error) {
	var drvs []driverbus.Driver
	for _, drv := range s.drivers {
		if drv.CompanyID == companyID && drv.Online && drv.Approved {
			drvs = append(drvs, drv)
		}
	}
	return drvs, nil
}

type fakeBookingStore struct {
	bookings map[uuid.UUID]bookingbus.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[uuid.UUID]bookingbus.Booking)}
}

func (s *fakeBookingStore) NewWithTx(tx sqldb.CommitRollbacker) (bookingbus.Storer, error) {
	return s, nil
}

func (s *fakeBookingStore) Create(ctx context.Context, bkg bookingbus.Booking) error {
	s.bookings[bkg.ID] = bkg
	return nil
}

func (s *fakeBookingStore) Update(ctx context.Context, bkg bookingbus.Booking) error {
	if _, exists := s.bookings[bkg.ID]; !exists {
		return bookingbus.ErrNotFound
	}
	s.bookings[bkg.ID] = bkg
	return nil
}

func (s *fakeBookingStore) Delete(ctx context.Context, bkg bookingbus.Booking) error {
	delete(s.bookings, bkg.ID)
	return nil
}

func (s *fakeBookingStore) Query(ctx context.Context, filter bookingbus.QueryFilter, orderBy order.By, page page.Page) ([]bookingbus.Booking, error) {
	var bkgs []bookingbus.Booking
	for _, bkg := range s.bookings {
		bkgs = append(bkgs, bkg)
	}
	return bkgs, nil
}

func (s *fakeBookingStore) Count(ctx context.Context, filter bookingbus.QueryFilter) (int, error) {
	return len(s.bookings), nil
}

func (s *fakeBookingStore) QueryByID(ctx context.Context, bookingID uuid.UUID) (bookingbus.Booking, error) {
	bkg, exists := s.bookings[bookingID]
	if !exists {
		return bookingbus.Booking{}, bookingbus.ErrNotFound
	}
	return bkg, nil
}

// =============================================================================

var (
	pickup = bookingbus.Stop{
		Point:   geo.Point{Lat: 12.9716, Lon: 77.5946},
		Address: "123 Main Street, Bangalore",
	}
	drop = bookingbus.Stop{
		Point:   geo.Point{Lat: 12.9498, Lon: 77.6682},
		Address: "456 Park Avenue, Bangalore",
	}
)

func newTestCore(drivers ...driverbus.Driver) (*bookingbus.Core, *fakeBookingStore, *fakeDriverStore) {
	driverStore := &fakeDriverStore{drivers: drivers}
	bookingStore := newFakeBookingStore()
	core := bookingbus.NewCore(driverbus.NewCore(nil, driverStore), bookingStore)
	return core, bookingStore, driverStore
}

func availableDriver(companyID uuid.UUID, loc geo.Point) driverbus.Driver {
	return driverbus.Driver{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		CompanyID: companyID,
		License:   name.MustParse("DL123456789"),
		Online:    true,
		Approved:  true,
		Location:  &loc,
	}
}

func createBooking(t *testing.T, core *bookingbus.Core, companyID, customerID uuid.UUID) bookingbus.Booking {
	t.Helper()

	bkg, err := core.Create(context.Background(), bookingbus.NewBooking{
		CompanyID:  companyID,
		CustomerID: customerID,
		Pickup:     pickup,
		Drop:       drop,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	return bkg
}

func Test_Create_AutoAssignsNearestDriver(t *testing.T) {
	companyID := uuid.New()
	far := availableDriver(companyID, geo.Point{Lat: 13.10, Lon: 77.60})
	near := availableDriver(companyID, geo.Point{Lat: 12.98, Lon: 77.60})

	core, _, _ := newTestCore(far, near)

	bkg := createBooking(t, core, companyID, uuid.New())

	if bkg.DriverID == nil {
		t.Fatal("expected a driver to be assigned")
	}
	if *bkg.DriverID != near.ID {
		t.Errorf("assigned driver = %v, want nearest %v", *bkg.DriverID, near.ID)
	}
	if !bkg.Status.Equal(bookingstatus.Pending) {
		t.Errorf("status = %v, want PENDING", bkg.Status)
	}

	if math.Abs(bkg.DistanceKm-8.34) > 0.05 {
		t.Errorf("distance = %.2f, want about 8.34", bkg.DistanceKm)
	}
	wantFare := 50 + 10*bkg.DistanceKm
	if math.Abs(bkg.EstimatedFare-wantFare) > 1e-9 {
		t.Errorf("estimated fare = %.2f, want %.2f", bkg.EstimatedFare, wantFare)
	}
}

func Test_Create_NoAvailableDrivers(t *testing.T) {
	core, _, _ := newTestCore()

	bkg := createBooking(t, core, uuid.New(), uuid.New())

	if bkg.DriverID != nil {
		t.Errorf("driver = %v, want unassigned", *bkg.DriverID)
	}
	if !bkg.Status.Equal(bookingstatus.Pending) {
		t.Errorf("status = %v, want PENDING", bkg.Status)
	}
}

func Test_Create_ExplicitDriverValidation(t *testing.T) {
	companyID := uuid.New()
	foreign := availableDriver(uuid.New(), geo.Point{Lat: 12.98, Lon: 77.60})
	offline := availableDriver(companyID, geo.Point{Lat: 12.98, Lon: 77.60})
	offline.Online = false

	core, _, _ := newTestCore(foreign, offline)

	for _, driverID := range []uuid.UUID{foreign.ID, offline.ID} {
		id := driverID
		_, err := core.Create(context.Background(), bookingbus.NewBooking{
			CompanyID:  companyID,
			CustomerID: uuid.New(),
			DriverID:   &id,
			Pickup:     pickup,
			Drop:       drop,
		})
		if !errors.Is(err, bookingbus.ErrInvalidAssignment) {
			t.Errorf("driver %v: err = %v, want ErrInvalidAssignment", id, err)
		}
	}
}

func Test_Confirm(t *testing.T) {
	core, _, _ := newTestCore()
	bkg := createBooking(t, core, uuid.New(), uuid.New())

	bkg, err := core.Confirm(context.Background(), bkg)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !bkg.Status.Equal(bookingstatus.Accepted) {
		t.Fatalf("status = %v, want ACCEPTED", bkg.Status)
	}

	if _, err := core.Confirm(context.Background(), bkg); !errors.Is(err, bookingbus.ErrInvalidTransition) {
		t.Errorf("second confirm: err = %v, want ErrInvalidTransition", err)
	}
}

func Test_AssignDriver(t *testing.T) {
	companyID := uuid.New()
	drv := availableDriver(companyID, geo.Point{Lat: 12.98, Lon: 77.60})
	foreign := availableDriver(uuid.New(), geo.Point{Lat: 12.98, Lon: 77.60})
	offline := availableDriver(companyID, geo.Point{Lat: 12.98, Lon: 77.60})
	offline.Online = false

	core, _, _ := newTestCore(foreign, offline)
	bkg := createBooking(t, core, companyID, uuid.New())

	if _, err := core.AssignDriver(context.Background(), bkg, foreign); !errors.Is(err, bookingbus.ErrInvalidAssignment) {
		t.Errorf("foreign driver: err = %v, want ErrInvalidAssignment", err)
	}

	if _, err := core.AssignDriver(context.Background(), bkg, offline); !errors.Is(err, bookingbus.ErrInvalidAssignment) {
		t.Errorf("offline driver: err = %v, want ErrInvalidAssignment", err)
	}

	bkg, err := core.AssignDriver(context.Background(), bkg, drv)
	if err != nil {
		t.Fatalf("AssignDriver: %v", err)
	}
	if bkg.DriverID == nil || *bkg.DriverID != drv.ID {
		t.Error("driver was not assigned")
	}
	if !bkg.Status.Equal(bookingstatus.Accepted) {
		t.Errorf("status = %v, want ACCEPTED after assignment to PENDING", bkg.Status)
	}

	inProgress := bookingstatus.InProgress
	bkg, err = core.Update(context.Background(), bkg, bookingbus.UpdateBooking{Status: &inProgress})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	bkg, err = core.AssignDriver(context.Background(), bkg, drv)
	if err != nil {
		t.Fatalf("AssignDriver on IN_PROGRESS: %v", err)
	}
	if !bkg.Status.Equal(bookingstatus.InProgress) {
		t.Errorf("status = %v, want IN_PROGRESS preserved", bkg.Status)
	}
}

func Test_Update_TimestampStamping(t *testing.T) {
	core, _, _ := newTestCore()
	bkg := createBooking(t, core, uuid.New(), uuid.New())

	inProgress := bookingstatus.InProgress
	bkg, err := core.Update(context.Background(), bkg, bookingbus.UpdateBooking{Status: &inProgress})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if bkg.StartedAt == nil {
		t.Fatal("startedAt was not stamped")
	}
	started := *bkg.StartedAt

	bkg, err = core.Update(context.Background(), bkg, bookingbus.UpdateBooking{Status: &inProgress})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !bkg.StartedAt.Equal(started) {
		t.Error("startedAt was re-stamped")
	}

	completed := bookingstatus.Completed
	bkg, err = core.Update(context.Background(), bkg, bookingbus.UpdateBooking{Status: &completed})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if bkg.CompletedAt == nil {
		t.Fatal("completedAt was not stamped")
	}
	if bkg.ActualFare == nil || *bkg.ActualFare != bkg.EstimatedFare {
		t.Error("actual fare did not fall back to the estimate")
	}
	if bkg.CancelledAt != nil {
		t.Error("cancelledAt set on a completed booking")
	}

	cancelled := bookingstatus.Cancelled
	if _, err := core.Update(context.Background(), bkg, bookingbus.UpdateBooking{Status: &cancelled}); !errors.Is(err, bookingbus.ErrInvalidTransition) {
		t.Errorf("cancel a completed booking: err = %v, want ErrInvalidTransition", err)
	}
}

func Test_Update_ExplicitActualFare(t *testing.T) {
	core, _, _ := newTestCore()
	bkg := createBooking(t, core, uuid.New(), uuid.New())

	completed := bookingstatus.Completed
	fareAmt := 199.0
	bkg, err := core.Update(context.Background(), bkg, bookingbus.UpdateBooking{
		Status:     &completed,
		ActualFare: &fareAmt,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if bkg.ActualFare == nil || *bkg.ActualFare != fareAmt {
		t.Errorf("actual fare = %v, want %v", bkg.ActualFare, fareAmt)
	}
}

func Test_Update_RecomputesFareOnNewStops(t *testing.T) {
	core, _, _ := newTestCore()
	bkg := createBooking(t, core, uuid.New(), uuid.New())

	newPickup := bookingbus.Stop{Point: geo.Point{Lat: 12.9716, Lon: 77.5946}, Address: "A"}
	newDrop := bookingbus.Stop{Point: geo.Point{Lat: 12.9716, Lon: 77.5946}, Address: "B"}

	bkg, err := core.Update(context.Background(), bkg, bookingbus.UpdateBooking{
		Pickup: &newPickup,
		Drop:   &newDrop,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if bkg.DistanceKm != 0 {
		t.Errorf("distance = %v, want 0 for identical stops", bkg.DistanceKm)
	}
	if bkg.EstimatedFare != 50 {
		t.Errorf("estimated fare = %v, want base fare 50", bkg.EstimatedFare)
	}
}

func Test_Cancel(t *testing.T) {
	core, _, _ := newTestCore()
	customerID := uuid.New()
	bkg := createBooking(t, core, uuid.New(), customerID)

	if _, err := core.Cancel(context.Background(), uuid.New(), bkg, "changed plans"); !errors.Is(err, bookingbus.ErrNotOwner) {
		t.Errorf("non-owner cancel: err = %v, want ErrNotOwner", err)
	}

	bkg, err := core.Cancel(context.Background(), customerID, bkg, "changed plans")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !bkg.Status.Equal(bookingstatus.Cancelled) {
		t.Errorf("status = %v, want CANCELLED", bkg.Status)
	}
	if bkg.CancellationReason != "changed plans" {
		t.Errorf("reason = %q, want it stored verbatim", bkg.CancellationReason)
	}
	if bkg.CancelledAt == nil {
		t.Error("cancelledAt was not stamped")
	}
	if bkg.CompletedAt != nil {
		t.Error("completedAt set on a cancelled booking")
	}
}

func Test_Cancel_CompletedBooking(t *testing.T) {
	core, _, _ := newTestCore()
	customerID := uuid.New()
	bkg := createBooking(t, core, uuid.New(), customerID)

	completed := bookingstatus.Completed
	bkg, err := core.Update(context.Background(), bkg, bookingbus.UpdateBooking{Status: &completed})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := core.Cancel(context.Background(), customerID, bkg, "too late"); !errors.Is(err, bookingbus.ErrInvalidTransition) {
		t.Errorf("cancel completed: err = %v, want ErrInvalidTransition", err)
	}
}

func Test_Remove(t *testing.T) {
	companyID := uuid.New()
	customerID := uuid.New()

	core, store, _ := newTestCore()
	bkg := createBooking(t, core, companyID, customerID)

	admin := bookingbus.Actor{UserID: uuid.New(), Role: role.Admin}
	sameCompany := bookingbus.Actor{UserID: uuid.New(), Role: role.Company, CompanyID: companyID}
	otherCompany := bookingbus.Actor{UserID: uuid.New(), Role: role.Company, CompanyID: uuid.New()}

	inProgress := bookingstatus.InProgress
	running, err := core.Update(context.Background(), bkg, bookingbus.UpdateBooking{Status: &inProgress})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := core.Remove(context.Background(), admin, running); !errors.Is(err, bookingbus.ErrInvalidTransition) {
		t.Errorf("remove IN_PROGRESS: err = %v, want ErrInvalidTransition", err)
	}

	cancelled, err := core.Cancel(context.Background(), customerID, running, "done with it")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if err := core.Remove(context.Background(), otherCompany, cancelled); !errors.Is(err, bookingbus.ErrNotOwner) {
		t.Errorf("remove by other tenant: err = %v, want ErrNotOwner", err)
	}

	if err := core.Remove(context.Background(), sameCompany, cancelled); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := store.QueryByID(context.Background(), cancelled.ID); !errors.Is(err, bookingbus.ErrNotFound) {
		t.Errorf("get after remove: err = %v, want ErrNotFound", err)
	}
}
