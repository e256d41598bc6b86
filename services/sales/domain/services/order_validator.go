// Package services contains stateless domain services for the sales bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"

	"github.com/google/uuid"

	salesdomain "github.com/acme/salescrm/services/sales/domain"
	"github.com/acme/salescrm/services/sales/domain/models"
)

// ValidateOrderConsistency performs cross-field checks on a SalesOrder before it
// is stored:
//   - id and customer id are set
//   - every item shares one currency
//   - the stored total equals the recomputed sum of item subtotals
func ValidateOrderConsistency(order *models.SalesOrder) error {
	if order == nil {
		return fmt.Errorf("sales order cannot be nil")
	}
	if order.ID() == uuid.Nil {
		return fmt.Errorf("id must be set")
	}
	if order.CustomerID().IsZero() {
		return fmt.Errorf("customer_id must be set")
	}

	items := order.Items()
	for i := 1; i < len(items); i++ {
		if !items[i].UnitPrice().SameCurrency(items[0].UnitPrice()) {
			return fmt.Errorf("%w: item %d is priced in %s, order in %s", salesdomain.ErrInconsistentOrder,
				i, items[i].UnitPrice().CurrencyCode(), items[0].UnitPrice().CurrencyCode())
		}
	}

	sum, err := order.CalculateTotalAmount()
	if err != nil {
		return fmt.Errorf("%w: %w", salesdomain.ErrInconsistentOrder, err)
	}
	if !sum.Equal(order.TotalAmount()) {
		return fmt.Errorf("%w: stored %s, computed %s", salesdomain.ErrInconsistentOrder, order.TotalAmount(), sum)
	}
	return nil
}
