package models

import (
	"fmt"

	salesdomain "github.com/acme/salescrm/services/sales/domain"
	shareddomain "github.com/acme/salescrm/services/shared/domain"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

// SalesOrderItem is one priced line of a SalesOrder.
type SalesOrderItem struct {
	productID ProductID
	quantity  int
	unitPrice sharedmodels.Money
}

// NewSalesOrderItem constructs a valid line item.
func NewSalesOrderItem(productID ProductID, quantity int, unitPrice sharedmodels.Money) (*SalesOrderItem, error) {
	if productID.IsZero() {
		return nil, fmt.Errorf("%w: product id is required", shareddomain.ErrInvalidIdentifier)
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		return nil, err
	}
	return &SalesOrderItem{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (i *SalesOrderItem) ProductID() ProductID          { return i.productID }
func (i *SalesOrderItem) Quantity() int                 { return i.quantity }
func (i *SalesOrderItem) UnitPrice() sharedmodels.Money { return i.unitPrice }

// SetQuantity changes the quantity; the item is untouched on error.
func (i *SalesOrderItem) SetQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}

// SetUnitPrice changes the unit price; the item is untouched on error.
func (i *SalesOrderItem) SetUnitPrice(unitPrice sharedmodels.Money) error {
	if err := validateUnitPrice(unitPrice); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}

// CalculateTotalPrice returns unitPrice * quantity.
func (i *SalesOrderItem) CalculateTotalPrice() (sharedmodels.Money, error) {
	return i.unitPrice.Multiply(i.quantity)
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero, got %d", salesdomain.ErrInvalidQuantity, quantity)
	}
	return nil
}

func validateUnitPrice(unitPrice sharedmodels.Money) error {
	if !unitPrice.IsPositive() {
		return fmt.Errorf("%w: unit price must be greater than zero", salesdomain.ErrInvalidUnitPrice)
	}
	if unitPrice.CurrencyCode() == "" {
		return fmt.Errorf("%w: unit price currency must be valid", salesdomain.ErrInvalidUnitPrice)
	}
	return nil
}
