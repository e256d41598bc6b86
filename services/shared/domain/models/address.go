package models

import (
	"fmt"
	"strings"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

// Address is an immutable postal address value object.
// All four fields are required and must not be blank after trimming.
type Address struct {
	street     string
	city       string
	postalCode string
	country    string
}

// NewAddress constructs a valid Address or returns an error naming the first
// blank field. Field values are stored as given.
func NewAddress(street, city, postalCode, country string) (Address, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"street", street},
		{"city", city},
		{"postal code", postalCode},
		{"country", country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return Address{}, fmt.Errorf("%w: %s cannot be blank", shareddomain.ErrInvalidAddress, f.name)
		}
	}
	return Address{
		street:     street,
		city:       city,
		postalCode: postalCode,
		country:    country,
	}, nil
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }

// IsZero reports whether a was never built through NewAddress.
func (a Address) IsZero() bool { return a == Address{} }

// String renders "street city postalCode country".
func (a Address) String() string {
	return fmt.Sprintf("%s %s %s %s", a.street, a.city, a.postalCode, a.country)
}
