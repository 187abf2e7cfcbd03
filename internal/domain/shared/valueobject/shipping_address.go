package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ShippingAddress is a value object representing a delivery address.
// All fields are required; an order cannot be placed with a partial address.
type ShippingAddress struct {
	fullName   string
	street     string
	city       string
	state      string
	postalCode string
	phone      string
}

const addressFieldMaxLen = 200

// NewShippingAddress creates a validated ShippingAddress.
// Every field must be present and non-empty after trimming.
func NewShippingAddress(fullName, street, city, state, postalCode, phone string) (ShippingAddress, error) {
	addr := ShippingAddress{
		fullName:   strings.TrimSpace(fullName),
		street:     strings.TrimSpace(street),
		city:       strings.TrimSpace(city),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		phone:      strings.TrimSpace(phone),
	}

	fields := []struct {
		name  string
		value string
	}{
		{"full name", addr.fullName},
		{"street address", addr.street},
		{"city", addr.city},
		{"state", addr.state},
		{"postal code", addr.postalCode},
		{"phone number", addr.phone},
	}
	for _, f := range fields {
		if f.value == "" {
			return ShippingAddress{}, fmt.Errorf("%s is required", f.name)
		}
		if len(f.value) > addressFieldMaxLen {
			return ShippingAddress{}, fmt.Errorf("%s cannot exceed %d characters", f.name, addressFieldMaxLen)
		}
	}

	return addr, nil
}

// FullName returns the recipient's full name
func (a ShippingAddress) FullName() string { return a.fullName }

// Street returns the street address
func (a ShippingAddress) Street() string { return a.street }

// City returns the city
func (a ShippingAddress) City() string { return a.city }

// State returns the state or province
func (a ShippingAddress) State() string { return a.state }

// PostalCode returns the postal code
func (a ShippingAddress) PostalCode() string { return a.postalCode }

// Phone returns the contact phone number
func (a ShippingAddress) Phone() string { return a.phone }

// IsZero returns true for the zero-value address
func (a ShippingAddress) IsZero() bool {
	return a == ShippingAddress{}
}

// Equals returns true if all fields match
func (a ShippingAddress) Equals(other ShippingAddress) bool {
	return a == other
}

// String returns a single-line representation suitable for logs and emails
func (a ShippingAddress) String() string {
	return fmt.Sprintf("%s, %s, %s, %s %s (%s)", a.fullName, a.street, a.city, a.state, a.postalCode, a.phone)
}

// shippingAddressJSON is the wire and storage representation
type shippingAddressJSON struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// MarshalJSON implements json.Marshaler
func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(shippingAddressJSON{
		FullName:   a.fullName,
		Street:     a.street,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Phone:      a.phone,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *ShippingAddress) UnmarshalJSON(data []byte) error {
	var raw shippingAddressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	addr, err := NewShippingAddress(raw.FullName, raw.Street, raw.City, raw.State, raw.PostalCode, raw.Phone)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer so the address can be stored as JSONB
func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ShippingAddress", value)
	}
	return a.UnmarshalJSON(data)
}
