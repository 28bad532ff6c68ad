package driverbus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/driverbus"
	"github.com/veltrip/platform/business/sdk/geo"
	"github.com/veltrip/platform/business/sdk/order"
	"github.com/veltrip/platform/business/sdk/page"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/types/name"
)

// fakeStore keeps drivers in a slice so fetch order is deterministic.
type fakeStore struct {
	drivers []driverbus.Driver
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (driverbus.Storer, error) {
	return s, nil
}

func (s *fakeStore) Create(ctx context.Context, drv driverbus.Driver) error {
	s.drivers = append(s.drivers, drv)
	return nil
}

func (s *fakeStore) Update(ctx context.Context, drv driverbus.Driver) error {
	for i := range s.drivers {
		if s.drivers[i].ID == drv.ID {
			s.drivers[i] = drv
			return nil
		}
	}
	return driverbus.ErrNotFound
}

func (s *fakeStore) Query(ctx context.Context, filter driverbus.QueryFilter, orderBy order.By, page page.Page) ([]driverbus.Driver, error) {
	return s.drivers, nil
}

func (s *fakeStore) Count(ctx context.Context, filter driverbus.QueryFilter) (int, error) {
	return len(s.drivers), nil
}

func (s *fakeStore) QueryByID(ctx context.Context, driverID uuid.UUID) (driverbus.Driver, error) {
	for _, drv := range s.drivers {
		if drv.ID == driverID {
			return drv, nil
		}
	}
	return driverbus.Driver{}, driverbus.ErrNotFound
}

func (s *fakeStore) QueryByUserID(ctx context.Context, userID uuid.UUID) (driverbus.Driver, error) {
	for _, drv := range s.drivers {
		if drv.UserID == userID {
			return drv, nil
		}
	}
	return driverbus.Driver{}, driverbus.ErrNotFound
}

func (s *fakeStore) QueryAvailable(ctx context.Context, companyID uuid.UUID) ([]driverbus.Driver, error) {
	var drvs []driverbus.Driver
	for _, drv := range s.drivers {
		if drv.CompanyID == companyID && drv.Online && drv.Approved {
			drvs = append(drvs, drv)
		}
	}
	return drvs, nil
}

// =============================================================================

func newDriver(companyID uuid.UUID, online, approved bool, loc *geo.Point) driverbus.Driver {
	return driverbus.Driver{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		CompanyID: companyID,
		License:   name.MustParse("DL123456789"),
		Online:    online,
		Approved:  approved,
		Location:  loc,
	}
}

func Test_FindAvailable(t *testing.T) {
	companyID := uuid.New()
	pickup := geo.Point{Lat: 12.9716, Lon: 77.5946}

	far := newDriver(companyID, true, true, &geo.Point{Lat: 13.10, Lon: 77.60})
	near := newDriver(companyID, true, true, &geo.Point{Lat: 12.98, Lon: 77.60})
	offline := newDriver(companyID, false, true, &geo.Point{Lat: 12.97, Lon: 77.59})
	unapproved := newDriver(companyID, true, false, &geo.Point{Lat: 12.97, Lon: 77.59})
	noLocation := newDriver(companyID, true, true, nil)
	otherTenant := newDriver(uuid.New(), true, true, &geo.Point{Lat: 12.97, Lon: 77.59})

	store := &fakeStore{drivers: []driverbus.Driver{far, near, offline, unapproved, noLocation, otherTenant}}
	core := driverbus.NewCore(nil, store)

	drvs, err := core.FindAvailable(context.Background(), companyID, pickup)
	if err != nil {
		t.Fatalf("FindAvailable: %v", err)
	}

	if len(drvs) != 2 {
		t.Fatalf("got %d drivers, want 2", len(drvs))
	}

	if drvs[0].ID != near.ID {
		t.Errorf("nearest driver = %v, want %v", drvs[0].ID, near.ID)
	}

	if drvs[1].ID != far.ID {
		t.Errorf("second driver = %v, want %v", drvs[1].ID, far.ID)
	}

	for i := 1; i < len(drvs); i++ {
		prev := geo.DistanceKm(pickup, *drvs[i-1].Location)
		cur := geo.DistanceKm(pickup, *drvs[i].Location)
		if cur < prev {
			t.Errorf("result not sorted by distance at index %d: %.3f < %.3f", i, cur, prev)
		}
	}
}

func Test_FindAvailable_StableTies(t *testing.T) {
	companyID := uuid.New()
	loc := geo.Point{Lat: 12.98, Lon: 77.60}

	first := newDriver(companyID, true, true, &loc)
	second := newDriver(companyID, true, true, &loc)
	third := newDriver(companyID, true, true, &loc)

	store := &fakeStore{drivers: []driverbus.Driver{first, second, third}}
	core := driverbus.NewCore(nil, store)

	drvs, err := core.FindAvailable(context.Background(), companyID, geo.Point{Lat: 12.9716, Lon: 77.5946})
	if err != nil {
		t.Fatalf("FindAvailable: %v", err)
	}

	want := []uuid.UUID{first.ID, second.ID, third.ID}
	for i, drv := range drvs {
		if drv.ID != want[i] {
			t.Errorf("tie order broken at index %d: got %v, want %v", i, drv.ID, want[i])
		}
	}
}

func Test_FindAvailable_Empty(t *testing.T) {
	store := &fakeStore{}
	core := driverbus.NewCore(nil, store)

	drvs, err := core.FindAvailable(context.Background(), uuid.New(), geo.Point{})
	if err != nil {
		t.Fatalf("FindAvailable: %v", err)
	}

	if len(drvs) != 0 {
		t.Fatalf("got %d drivers, want 0", len(drvs))
	}
}
