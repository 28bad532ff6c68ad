// Package paymentmethod represents the payment method type in the system.
package paymentmethod

import "fmt"

// The set of methods a payment can be made with.
var (
	Razorpay = newMethod("RAZORPAY")
	Cash     = newMethod("CASH")
	Card     = newMethod("CARD")
)

// =============================================================================

// Set of known methods.
var methods = make(map[string]Method)

// Method represents a payment method in the system.
type Method struct {
	value string
}

func newMethod(method string) Method {
	m := Method{method}
	methods[method] = m
	return m
}

// String returns the name of the method.
func (m Method) String() string {
	return m.value
}

// Equal provides support for the go-cmp package and testing.
func (m Method) Equal(m2 Method) bool {
	return m.value == m2.value
}

// MarshalText provides support for logging and any marshal needs.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.value), nil
}

// =============================================================================

// Parse parses the string value and returns a method if one exists.
func Parse(value string) (Method, error) {
	method, exists := methods[value]
	if !exists {
		return Method{}, fmt.Errorf("invalid payment method %q", value)
	}

	return method, nil
}

// MustParse parses the string value and returns a method if one exists. If
// an error occurs the function panics.
func MustParse(value string) Method {
	method, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return method
}
