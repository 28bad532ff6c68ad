// Package password represents a clear text password in the system.
package password

import "fmt"

const (
	minLength = 6
	maxLength = 72 // bcrypt input limit
)

// Password represents a clear text password pending hashing. The value is
// never logged; MarshalText masks it.
type Password struct {
	value string
}

// String returns a masked representation.
func (p Password) String() string {
	return "[REDACTED]"
}

// Clear returns the clear text value for hashing.
func (p Password) Clear() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Password) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// =============================================================================

// Parse parses the string value and returns a password if the value complies
// with the rules for a password.
func Parse(value string) (Password, error) {
	if len(value) < minLength {
		return Password{}, fmt.Errorf("password must be at least %d characters", minLength)
	}

	if len(value) > maxLength {
		return Password{}, fmt.Errorf("password must be at most %d characters", maxLength)
	}

	return Password{value}, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function
// panics.
func MustParse(value string) Password {
	password, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return password
}
