package domain

import (
	"errors"
	"fmt"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

// Sentinel errors for the crm domain. Use errors.Is() to check these.
var (
	// ErrCustomerNotFound indicates the requested customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrCustomerAlreadyExists indicates a Save for an id that is already stored.
	ErrCustomerAlreadyExists = errors.New("customer already exists")

	// ErrInvalidCustomerName indicates a missing or blank customer name.
	ErrInvalidCustomerName = fmt.Errorf("%w: invalid customer name", shareddomain.ErrInvalidArgument)

	// ErrInvalidEmail indicates a missing or blank email.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email", shareddomain.ErrInvalidArgument)
)
