package domain

import (
	"errors"
	"fmt"
	"testing"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

func TestSentinelErrors_Kinds(t *testing.T) {
	for _, err := range []error{ErrInvalidQuantity, ErrInvalidUnitPrice, ErrInvalidOrderDate} {
		if !errors.Is(err, shareddomain.ErrInvalidArgument) {
			t.Errorf("%q must wrap ErrInvalidArgument", err)
		}
	}
	for _, err := range []error{ErrSalesOrderNotFound, ErrSalesOrderAlreadyExists, ErrUnknownCustomer, ErrInconsistentOrder} {
		if errors.Is(err, shareddomain.ErrInvalidArgument) {
			t.Errorf("%q must not be an input error", err)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("add item: %w", ErrInvalidQuantity)
	if !errors.Is(wrapped, ErrInvalidQuantity) {
		t.Fatal("errors.Is must match wrapped ErrInvalidQuantity")
	}
}
