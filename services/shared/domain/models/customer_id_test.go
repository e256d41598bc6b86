package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

func TestNewCustomerID(t *testing.T) {
	t.Run("returns non-zero id", func(t *testing.T) {
		id := NewCustomerID()
		if id.IsZero() {
			t.Fatal("expected non-zero CustomerID")
		}
	})

	t.Run("generates unique ids on each call", func(t *testing.T) {
		if NewCustomerID() == NewCustomerID() {
			t.Fatal("expected unique ids, got identical")
		}
	})
}

func TestCustomerIDFrom(t *testing.T) {
	t.Run("wraps given uuid", func(t *testing.T) {
		u := uuid.New()
		id, err := CustomerIDFrom(u)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.UUID() != u {
			t.Fatalf("expected %v, got %v", u, id.UUID())
		}
	})

	t.Run("nil uuid returns error", func(t *testing.T) {
		_, err := CustomerIDFrom(uuid.Nil)
		if !errors.Is(err, shareddomain.ErrInvalidIdentifier) {
			t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
		}
	})

	t.Run("equality is by value", func(t *testing.T) {
		u := uuid.New()
		a, _ := CustomerIDFrom(u)
		b, _ := CustomerIDFrom(u)
		if a != b {
			t.Fatal("expected ids built from the same uuid to be equal")
		}
		seen := map[CustomerID]bool{a: true}
		if !seen[b] {
			t.Fatal("expected equal ids to hash to the same map key")
		}
	})
}

func TestParseCustomerID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "550e8400-e29b-41d4-a716-446655440000", false},
		{"nil uuid", "00000000-0000-0000-0000-000000000000", true},
		{"garbage", "not-a-uuid", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseCustomerID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCustomerID(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && id.String() != tt.input {
				t.Fatalf("expected %q, got %q", tt.input, id.String())
			}
		})
	}
}
