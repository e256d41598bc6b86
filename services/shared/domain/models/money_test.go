package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

func mustMoney(t *testing.T, amount, code string) Money {
	t.Helper()
	m, err := ParseMoney(amount, code)
	if err != nil {
		t.Fatalf("ParseMoney(%q, %q): %v", amount, code, err)
	}
	return m
}

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		code    string
		wantErr bool
	}{
		{"zero usd", "0", "USD", false},
		{"two decimals usd", "29.99", "USD", false},
		{"one decimal usd", "10.5", "USD", false},
		{"integer usd", "100", "USD", false},
		{"integer jpy", "500", "JPY", false},
		{"three decimals bhd", "1.234", "BHD", false},
		{"two decimals idr", "100.00", "IDR", false},
		{"two decimals cop", "2500.50", "COP", false},
		{"three decimals iqd", "1.234", "IQD", false},
		{"three decimals idr", "1.001", "IDR", true},
		{"four decimals iqd", "1.2345", "IQD", true},
		{"three decimals usd", "29.990", "USD", true},
		{"fraction jpy", "500.5", "JPY", true},
		{"negative", "-0.01", "USD", true},
		{"missing currency", "1.00", "", true},
		{"unknown currency", "1.00", "QQQ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMoney(tt.amount, tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMoney(%q, %q) error = %v, wantErr = %v", tt.amount, tt.code, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, shareddomain.ErrInvalidMoney) {
				t.Fatalf("expected ErrInvalidMoney, got %v", err)
			}
		})
	}

	t.Run("unparsable amount", func(t *testing.T) {
		_, err := ParseMoney("12,50", "USD")
		if !errors.Is(err, shareddomain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("accepts decimal values directly", func(t *testing.T) {
		m, err := NewMoney(decimal.New(2999, -2), "USD")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.String() != "29.99 USD" {
			t.Fatalf("expected %q, got %q", "29.99 USD", m.String())
		}
	})
}

func TestZeroMoney(t *testing.T) {
	z := ZeroMoney()
	if !z.IsZero() {
		t.Fatal("expected zero amount")
	}
	if z.CurrencyCode() != "USD" {
		t.Fatalf("expected USD, got %q", z.CurrencyCode())
	}
	if z.String() != "0 USD" {
		t.Fatalf("expected %q, got %q", "0 USD", z.String())
	}
}

func TestMoney_Add(t *testing.T) {
	t.Run("sums amounts of the same currency", func(t *testing.T) {
		sum, err := mustMoney(t, "59.98", "USD").Add(mustMoney(t, "10.00", "USD"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sum.Amount().Equal(decimal.RequireFromString("69.98")) {
			t.Fatalf("expected 69.98, got %s", sum.Amount())
		}
		if sum.String() != "69.98 USD" {
			t.Fatalf("expected %q, got %q", "69.98 USD", sum.String())
		}
	})

	t.Run("zero is the identity", func(t *testing.T) {
		p := mustMoney(t, "29.99", "USD")
		sum, err := ZeroMoney().Add(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sum.Equal(p) {
			t.Fatalf("expected %s, got %s", p, sum)
		}
	})

	t.Run("different currencies fail", func(t *testing.T) {
		_, err := mustMoney(t, "1.00", "USD").Add(mustMoney(t, "1.00", "EUR"))
		if !errors.Is(err, shareddomain.ErrCurrencyMismatch) {
			t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
		}
	})

	t.Run("uninitialized operand fails", func(t *testing.T) {
		_, err := ZeroMoney().Add(Money{})
		if !errors.Is(err, shareddomain.ErrInvalidMoney) {
			t.Fatalf("expected ErrInvalidMoney, got %v", err)
		}
	})
}

func TestMoney_Multiply(t *testing.T) {
	price := mustMoney(t, "29.99", "USD")

	tests := []struct {
		name    string
		n       int
		want    string
		wantErr bool
	}{
		{"by two", 2, "59.98 USD", false},
		{"by one", 1, "29.99 USD", false},
		{"by zero keeps scale", 0, "0.00 USD", false},
		{"by large factor", 1000, "29990.00 USD", false},
		{"by negative is rejected", -1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := price.Multiply(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Multiply(%d) error = %v, wantErr = %v", tt.n, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Fatalf("Multiply(%d) = %q, want %q", tt.n, got.String(), tt.want)
			}
		})
	}

	t.Run("negative factor on zero amount stays valid", func(t *testing.T) {
		got, err := ZeroMoney().Multiply(-3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsZero() {
			t.Fatalf("expected zero, got %s", got)
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		_, _ = price.Multiply(3)
		if price.String() != "29.99 USD" {
			t.Fatalf("receiver changed to %s", price)
		}
	})
}

func TestMoney_Equal(t *testing.T) {
	if !mustMoney(t, "10.0", "USD").Equal(mustMoney(t, "10.00", "USD")) {
		t.Fatal("expected numerically equal amounts to be equal")
	}
	if mustMoney(t, "10.00", "USD").Equal(mustMoney(t, "10.00", "EUR")) {
		t.Fatal("expected different currencies to differ")
	}
}

func TestMoney_FractionDigits(t *testing.T) {
	if d := mustMoney(t, "1", "USD").FractionDigits(); d != 2 {
		t.Fatalf("USD: expected 2, got %d", d)
	}
	if d := mustMoney(t, "1", "JPY").FractionDigits(); d != 0 {
		t.Fatalf("JPY: expected 0, got %d", d)
	}
}

func TestMoney_FractionDigitsFollowISO4217(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"IDR", 2}, {"COP", 2}, {"PKR", 2}, {"RSD", 2}, {"LBP", 2}, {"ALL", 2}, {"YER", 2},
		{"MMK", 2}, {"SOS", 2}, {"UZS", 2}, {"SYP", 2}, {"LAK", 2}, {"IQD", 3},
		{"BHD", 3}, {"KWD", 3}, {"EUR", 2}, {"KRW", 0}, {"CLP", 0},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if d := mustMoney(t, "1", tt.code).FractionDigits(); d != tt.want {
				t.Fatalf("%s: expected %d, got %d", tt.code, tt.want, d)
			}
		})
	}
}
