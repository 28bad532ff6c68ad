// Package plate represents a vehicle license plate in the system.
package plate

import (
	"fmt"
	"regexp"
	"strings"
)

// plateRegEx accepts uppercase letters, digits, spaces, and hyphens, from 2
// to 16 characters. Plates are normalized to uppercase before matching.
var plateRegEx = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 -]{1,15}$`)

// Plate represents a vehicle license plate in the system.
type Plate struct {
	value string
}

// String returns the value of the plate.
func (p Plate) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Plate) Equal(p2 Plate) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Plate) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// =============================================================================

// Parse parses the string value and returns a plate if the value complies
// with the rules for a plate. The value is uppercased and trimmed first so
// the same physical plate always normalizes to one representation.
func Parse(value string) (Plate, error) {
	value = strings.ToUpper(strings.TrimSpace(value))

	if !plateRegEx.MatchString(value) {
		return Plate{}, fmt.Errorf("invalid plate %q", value)
	}

	return Plate{value}, nil
}

// MustParse parses the string value and returns a plate if the value
// complies with the rules for a plate. If an error occurs the function
// panics.
func MustParse(value string) Plate {
	plate, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return plate
}
