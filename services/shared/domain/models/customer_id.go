package models

import (
	"fmt"

	"github.com/google/uuid"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

// CustomerID is a value object identifying a Customer across bounded contexts.
// The zero value is not a valid identifier; use NewCustomerID or CustomerIDFrom.
type CustomerID struct {
	value uuid.UUID
}

// NewCustomerID returns a freshly generated random identifier.
func NewCustomerID() CustomerID {
	return CustomerID{value: uuid.New()}
}

// CustomerIDFrom wraps an existing UUID. Returns an error for uuid.Nil.
func CustomerIDFrom(id uuid.UUID) (CustomerID, error) {
	if id == uuid.Nil {
		return CustomerID{}, fmt.Errorf("%w: customer id cannot be nil", shareddomain.ErrInvalidIdentifier)
	}
	return CustomerID{value: id}, nil
}

// ParseCustomerID parses the canonical textual form of a CustomerID.
func ParseCustomerID(s string) (CustomerID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CustomerID{}, fmt.Errorf("%w: customer id: %w", shareddomain.ErrInvalidIdentifier, err)
	}
	return CustomerIDFrom(id)
}

// UUID returns the underlying UUID.
func (id CustomerID) UUID() uuid.UUID { return id.value }

// IsZero reports whether id was never initialized.
func (id CustomerID) IsZero() bool { return id.value == uuid.Nil }

func (id CustomerID) String() string { return id.value.String() }
