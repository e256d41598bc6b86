package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

func TestProductID(t *testing.T) {
	t.Run("new ids are non-zero and unique", func(t *testing.T) {
		a, b := NewProductID(), NewProductID()
		if a.IsZero() || b.IsZero() {
			t.Fatal("expected non-zero ids")
		}
		if a == b {
			t.Fatal("expected unique ids, got identical")
		}
	})

	t.Run("nil uuid is rejected", func(t *testing.T) {
		if _, err := ProductIDFrom(uuid.Nil); !errors.Is(err, shareddomain.ErrInvalidIdentifier) {
			t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
		}
	})

	t.Run("parse round-trips", func(t *testing.T) {
		id := NewProductID()
		parsed, err := ParseProductID(id.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed != id {
			t.Fatalf("expected %v, got %v", id, parsed)
		}
	})

	t.Run("parse rejects garbage", func(t *testing.T) {
		if _, err := ParseProductID("sku-123"); !errors.Is(err, shareddomain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
