package domain

import (
	"errors"
	"fmt"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

// Sentinel errors for the sales domain. Use errors.Is() to check these.
var (
	// ErrSalesOrderNotFound indicates the requested sales order does not exist.
	ErrSalesOrderNotFound = errors.New("sales order not found")

	// ErrSalesOrderAlreadyExists indicates a Save for an id that is already stored.
	ErrSalesOrderAlreadyExists = errors.New("sales order already exists")

	// ErrUnknownCustomer indicates an order placed for a customer that is not registered.
	ErrUnknownCustomer = errors.New("unknown customer")

	// ErrInvalidQuantity indicates a line-item quantity that is not positive.
	ErrInvalidQuantity = fmt.Errorf("%w: invalid quantity", shareddomain.ErrInvalidArgument)

	// ErrInvalidUnitPrice indicates a non-positive unit price or one without currency.
	ErrInvalidUnitPrice = fmt.Errorf("%w: invalid unit price", shareddomain.ErrInvalidArgument)

	// ErrInvalidOrderDate indicates a missing order date.
	ErrInvalidOrderDate = fmt.Errorf("%w: invalid order date", shareddomain.ErrInvalidArgument)

	// ErrInconsistentOrder indicates an order whose stored total disagrees with its items.
	ErrInconsistentOrder = errors.New("sales order total does not match its items")
)
