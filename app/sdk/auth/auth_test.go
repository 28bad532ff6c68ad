package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/veltrip/platform/app/sdk/auth"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
	"github.com/veltrip/platform/business/types/role"
)

func newTestAuth(t *testing.T) *auth.Auth {
	t.Helper()

	a, err := auth.New(auth.Config{
		Issuer: "https://test/auth/",
	})
	if err != nil {
		t.Fatalf("constructing auth: %v", err)
	}

	return a
}

func Test_Issuer(t *testing.T) {
	a := newTestAuth(t)

	if got := a.Issuer(); got != "https://test/auth/" {
		t.Errorf("Issuer() = %q, want the configured issuer", got)
	}
}

func Test_Authorize(t *testing.T) {
	a := newTestAuth(t)

	tests := []struct {
		name    string
		role    role.Role
		res     resource.Resource
		act     actions.Action
		allowed bool
	}{
		{"admin may do anything", role.Admin, resource.Company, actions.Delete, true},
		{"company manages its users", role.Company, resource.User, actions.Create, true},
		{"company manages its vehicles", role.Company, resource.Vehicle, actions.Delete, true},
		{"company confirms bookings", role.Company, resource.Booking, actions.Confirm, true},
		{"company assigns drivers", role.Company, resource.Booking, actions.Assign, true},
		{"company cannot create payments", role.Company, resource.Payment, actions.Create, false},
		{"driver reads own profile", role.Driver, resource.Driver, actions.Get, true},
		{"driver updates location", role.Driver, resource.Driver, actions.Update, true},
		{"driver cannot confirm bookings", role.Driver, resource.Booking, actions.Confirm, false},
		{"driver cannot cancel bookings", role.Driver, resource.Booking, actions.Cancel, false},
		{"company cannot cancel bookings", role.Company, resource.Booking, actions.Cancel, false},
		{"driver cannot manage users", role.Driver, resource.User, actions.Create, false},
		{"customer creates bookings", role.Customer, resource.Booking, actions.Create, true},
		{"customer cancels bookings", role.Customer, resource.Booking, actions.Cancel, true},
		{"customer pays", role.Customer, resource.Payment, actions.Create, true},
		{"customer cannot assign drivers", role.Customer, resource.Booking, actions.Assign, false},
		{"customer cannot touch vehicles", role.Customer, resource.Vehicle, actions.Get, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := auth.Claims{Role: tt.role.String()}

			err := a.Authorize(context.Background(), claims, tt.res, tt.act)

			switch {
			case tt.allowed && err != nil:
				t.Errorf("Authorize: %v, want allowed", err)
			case !tt.allowed && !errors.Is(err, auth.ErrForbidden):
				t.Errorf("Authorize: err = %v, want ErrForbidden", err)
			}
		})
	}
}
