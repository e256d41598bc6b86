package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	salesdomain "github.com/acme/salescrm/services/sales/domain"
	shareddomain "github.com/acme/salescrm/services/shared/domain"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

// SalesOrder is the aggregate root of the sales bounded context. It owns its
// line items and keeps totalAmount equal to the sum of their subtotals.
//
// An order is single-currency: the first item fixes the currency and later
// items in another currency are rejected. Any ISO 4217 currency may come
// first, so an order priced only in EUR is valid and totals in EUR. An order
// without items totals ZeroMoney, which is 0 USD.
type SalesOrder struct {
	id          uuid.UUID
	customerID  sharedmodels.CustomerID
	orderDate   time.Time
	totalAmount sharedmodels.Money
	items       []SalesOrderItem
}

// NewSalesOrder constructs an empty order for customerID dated now (UTC).
func NewSalesOrder(customerID sharedmodels.CustomerID) (*SalesOrder, error) {
	if customerID.IsZero() {
		return nil, fmt.Errorf("%w: customer id is required", shareddomain.ErrInvalidIdentifier)
	}
	return &SalesOrder{
		id:          uuid.New(),
		customerID:  customerID,
		orderDate:   time.Now().UTC(),
		totalAmount: sharedmodels.ZeroMoney(),
		items:       []SalesOrderItem{},
	}, nil
}

// AddItem appends a new line item and recomputes the total. On error the
// order is left unchanged.
func (o *SalesOrder) AddItem(productID ProductID, quantity int, unitPrice sharedmodels.Money) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero, got %d", salesdomain.ErrInvalidQuantity, quantity)
	}
	if !unitPrice.IsPositive() {
		return fmt.Errorf("%w: unit price must be greater than zero", salesdomain.ErrInvalidUnitPrice)
	}
	if len(o.items) > 0 && !o.items[0].unitPrice.SameCurrency(unitPrice) {
		return fmt.Errorf("%w: order is priced in %s, item in %s",
			shareddomain.ErrCurrencyMismatch, o.items[0].unitPrice.CurrencyCode(), unitPrice.CurrencyCode())
	}

	item, err := NewSalesOrderItem(productID, quantity, unitPrice)
	if err != nil {
		return err
	}

	items := append(slices.Clone(o.items), *item)
	total, err := sumSubtotals(items)
	if err != nil {
		return err
	}

	o.items = items
	o.totalAmount = total
	return nil
}

// CalculateTotalAmount folds the subtotals of all current items.
func (o *SalesOrder) CalculateTotalAmount() (sharedmodels.Money, error) {
	return sumSubtotals(o.items)
}

// WithOrderDate overrides the order date and returns the order.
func (o *SalesOrder) WithOrderDate(orderDate time.Time) (*SalesOrder, error) {
	if orderDate.IsZero() {
		return nil, fmt.Errorf("%w: order date is required", salesdomain.ErrInvalidOrderDate)
	}
	o.orderDate = orderDate
	return o, nil
}

func (o *SalesOrder) ID() uuid.UUID                       { return o.id }
func (o *SalesOrder) CustomerID() sharedmodels.CustomerID { return o.customerID }
func (o *SalesOrder) OrderDate() time.Time                { return o.orderDate }
func (o *SalesOrder) TotalAmount() sharedmodels.Money     { return o.totalAmount }
func (o *SalesOrder) ItemCount() int                      { return len(o.items) }

// Items returns a copy of the line items; changing them does not affect the order.
func (o *SalesOrder) Items() []SalesOrderItem {
	return slices.Clone(o.items)
}

// TotalAmountAsString renders the total as "amount currencyCode".
func (o *SalesOrder) TotalAmountAsString() string {
	return o.totalAmount.String()
}

// Clone returns an independent copy of o.
func (o *SalesOrder) Clone() *SalesOrder {
	cp := *o
	cp.items = slices.Clone(o.items)
	return &cp
}

// sumSubtotals adds up unitPrice*quantity over items, seeded with zero in the
// currency of the first item. An empty list totals to ZeroMoney().
func sumSubtotals(items []SalesOrderItem) (sharedmodels.Money, error) {
	if len(items) == 0 {
		return sharedmodels.ZeroMoney(), nil
	}
	total, err := sharedmodels.ZeroIn(items[0].unitPrice.CurrencyCode())
	if err != nil {
		return sharedmodels.Money{}, err
	}
	for i := range items {
		subtotal, err := items[i].CalculateTotalPrice()
		if err != nil {
			return sharedmodels.Money{}, fmt.Errorf("item %d: %w", i, err)
		}
		if total, err = total.Add(subtotal); err != nil {
			return sharedmodels.Money{}, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return total, nil
}
