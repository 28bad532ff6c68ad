package role_test

import (
	"testing"

	"github.com/veltrip/platform/business/types/role"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		want    role.Role
		wantErr bool
	}{
		{value: "ADMIN", want: role.Admin},
		{value: "COMPANY", want: role.Company},
		{value: "DRIVER", want: role.Driver},
		{value: "CUSTOMER", want: role.Customer},
		{value: "customer", wantErr: true},
		{value: "", wantErr: true},
		{value: "SUPERADMIN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := role.Parse(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
