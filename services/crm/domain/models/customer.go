package models

import (
	"fmt"
	"strings"

	crmdomain "github.com/acme/salescrm/services/crm/domain"
	shareddomain "github.com/acme/salescrm/services/shared/domain"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

// Customer is the CRM contact entity. Its identity never changes; contact
// details change only through validating methods.
type Customer struct {
	id      sharedmodels.CustomerID
	name    string
	email   string
	address sharedmodels.Address
}

// NewCustomer constructs a valid Customer with a freshly generated CustomerID.
func NewCustomer(name, email string, address sharedmodels.Address) (*Customer, error) {
	if address.IsZero() {
		return nil, fmt.Errorf("%w: address is required", shareddomain.ErrInvalidAddress)
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Customer{
		id:      sharedmodels.NewCustomerID(),
		name:    name,
		email:   email,
		address: address,
	}, nil
}

// UpdateContactInfo replaces email and address together. On error neither
// field is changed.
func (c *Customer) UpdateContactInfo(email string, address sharedmodels.Address) error {
	if address.IsZero() {
		return fmt.Errorf("%w: address is required", shareddomain.ErrInvalidAddress)
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	c.email = email
	c.address = address
	return nil
}

// Rename changes the customer's display name.
func (c *Customer) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.name = name
	return nil
}

func (c *Customer) ID() sharedmodels.CustomerID   { return c.id }
func (c *Customer) Name() string                  { return c.name }
func (c *Customer) Email() string                 { return c.email }
func (c *Customer) Address() sharedmodels.Address { return c.address }

// ContactInfo returns "Name: <name>, Email: <email>, Address: <address>".
func (c *Customer) ContactInfo() string {
	return fmt.Sprintf("Name: %s, Email: %s, Address: %s", c.name, c.email, c.address)
}

// Clone returns an independent copy of c.
func (c *Customer) Clone() *Customer {
	cp := *c
	return &cp
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be blank", crmdomain.ErrInvalidCustomerName)
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be blank", crmdomain.ErrInvalidEmail)
	}
	return nil
}
