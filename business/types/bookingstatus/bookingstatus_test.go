package bookingstatus_test

import (
	"testing"

	"github.com/veltrip/platform/business/types/bookingstatus"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    bookingstatus.Status
		wantErr bool
	}{
		{"pending", "PENDING", bookingstatus.Pending, false},
		{"accepted", "ACCEPTED", bookingstatus.Accepted, false},
		{"inprogress", "IN_PROGRESS", bookingstatus.InProgress, false},
		{"completed", "COMPLETED", bookingstatus.Completed, false},
		{"cancelled", "CANCELLED", bookingstatus.Cancelled, false},
		{"lowercase", "pending", bookingstatus.Status{}, true},
		{"unknown", "EXPIRED", bookingstatus.Status{}, true},
		{"empty", "", bookingstatus.Status{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bookingstatus.Parse(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func Test_Terminal(t *testing.T) {
	terminal := []bookingstatus.Status{bookingstatus.Completed, bookingstatus.Cancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%v.Terminal() = false, want true", s)
		}
	}

	open := []bookingstatus.Status{bookingstatus.Pending, bookingstatus.Accepted, bookingstatus.InProgress}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("%v.Terminal() = true, want false", s)
		}
	}
}
