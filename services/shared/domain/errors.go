// Package domain is the shared kernel used by every bounded context.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all bounded contexts. Use errors.Is() to check these.
//
// Every validation failure in the model wraps ErrInvalidArgument, so callers
// can treat the whole family as one input-error kind.
var (
	// ErrInvalidArgument indicates a constructor or mutator rejected its input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidIdentifier indicates a missing or malformed identifier.
	ErrInvalidIdentifier = fmt.Errorf("%w: invalid identifier", ErrInvalidArgument)

	// ErrInvalidAddress indicates an address field is missing or blank.
	ErrInvalidAddress = fmt.Errorf("%w: invalid address", ErrInvalidArgument)

	// ErrInvalidMoney indicates a negative amount, unknown currency or excess scale.
	ErrInvalidMoney = fmt.Errorf("%w: invalid money", ErrInvalidArgument)

	// ErrCurrencyMismatch indicates arithmetic between two different currencies.
	ErrCurrencyMismatch = fmt.Errorf("%w: currency mismatch", ErrInvalidArgument)
)
