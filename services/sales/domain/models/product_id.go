package models

import (
	"fmt"

	"github.com/google/uuid"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

// ProductID identifies a product within the sales bounded context.
// The zero value is not a valid identifier.
type ProductID struct {
	value uuid.UUID
}

// NewProductID returns a freshly generated random identifier.
func NewProductID() ProductID {
	return ProductID{value: uuid.New()}
}

// ProductIDFrom wraps an existing UUID. Returns an error for uuid.Nil.
func ProductIDFrom(id uuid.UUID) (ProductID, error) {
	if id == uuid.Nil {
		return ProductID{}, fmt.Errorf("%w: product id cannot be nil", shareddomain.ErrInvalidIdentifier)
	}
	return ProductID{value: id}, nil
}

// ParseProductID parses the canonical textual form of a ProductID.
func ParseProductID(s string) (ProductID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProductID{}, fmt.Errorf("%w: product id: %w", shareddomain.ErrInvalidIdentifier, err)
	}
	return ProductIDFrom(id)
}

func (id ProductID) UUID() uuid.UUID { return id.value }
func (id ProductID) IsZero() bool    { return id.value == uuid.Nil }
func (id ProductID) String() string  { return id.value.String() }
