package bookingapp

import (
	"testing"

	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/bookingbus"
	"github.com/veltrip/platform/business/types/role"
)

func Test_BookingParties(t *testing.T) {
	companyID := uuid.New()
	callerID := uuid.New()
	otherCompanyID := uuid.New()
	otherCustomerID := uuid.New()

	actor := func(r role.Role) bookingbus.Actor {
		return bookingbus.Actor{
			UserID:    callerID,
			Role:      r,
			CompanyID: companyID,
		}
	}

	tests := []struct {
		name         string
		act          bookingbus.Actor
		app          NewBooking
		wantCompany  uuid.UUID
		wantCustomer uuid.UUID
		wantErr      bool
	}{
		{
			name:         "customer books for self",
			act:          actor(role.Customer),
			app:          NewBooking{},
			wantCompany:  companyID,
			wantCustomer: callerID,
		},
		{
			name:    "customer cannot name a driver",
			act:     actor(role.Customer),
			app:     NewBooking{DriverID: uuid.New().String()},
			wantErr: true,
		},
		{
			name:         "customer overrides are ignored",
			act:          actor(role.Customer),
			app:          NewBooking{CompanyID: otherCompanyID.String(), CustomerID: otherCustomerID.String()},
			wantCompany:  companyID,
			wantCustomer: callerID,
		},
		{
			name:         "company books for a customer",
			act:          actor(role.Company),
			app:          NewBooking{CustomerID: otherCustomerID.String()},
			wantCompany:  companyID,
			wantCustomer: otherCustomerID,
		},
		{
			name:    "company must name the customer",
			act:     actor(role.Company),
			app:     NewBooking{},
			wantErr: true,
		},
		{
			name:         "admin names company and customer",
			act:          actor(role.Admin),
			app:          NewBooking{CompanyID: otherCompanyID.String(), CustomerID: otherCustomerID.String()},
			wantCompany:  otherCompanyID,
			wantCustomer: otherCustomerID,
		},
		{
			name:    "admin must name the company",
			act:     actor(role.Admin),
			app:     NewBooking{CustomerID: otherCustomerID.String()},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCompany, gotCustomer, errResp := bookingParties(tt.act, tt.app)

			if tt.wantErr {
				if errResp == nil {
					t.Fatal("bookingParties: expected an error response")
				}
				return
			}

			if errResp != nil {
				t.Fatalf("bookingParties: unexpected error response: %v", errResp)
			}
			if gotCompany != tt.wantCompany {
				t.Errorf("companyID = %s, want %s", gotCompany, tt.wantCompany)
			}
			if gotCustomer != tt.wantCustomer {
				t.Errorf("customerID = %s, want %s", gotCustomer, tt.wantCustomer)
			}
		})
	}
}
