// Package errexit maps domain sentinel errors to process exit codes.
// Add a case to Code for each new domain sentinel error.
package errexit

import (
	"errors"

	crmdomain "github.com/acme/salescrm/services/crm/domain"
	salesdomain "github.com/acme/salescrm/services/sales/domain"
	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

// Exit codes returned by Code.
const (
	OK          = 0
	Failure     = 1
	InvalidData = 65 // EX_DATAERR
	NotFound    = 66 // EX_NOINPUT
	Conflict    = 73 // EX_CANTCREAT
)

// Code maps err to an exit code. Uses errors.Is() so wrapped sentinel errors are
// matched correctly. Defaults to Failure for unrecognized errors.
func Code(err error) int {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, shareddomain.ErrInvalidArgument):
		return InvalidData
	case errors.Is(err, crmdomain.ErrCustomerNotFound),
		errors.Is(err, salesdomain.ErrSalesOrderNotFound),
		errors.Is(err, salesdomain.ErrUnknownCustomer):
		return NotFound
	case errors.Is(err, crmdomain.ErrCustomerAlreadyExists),
		errors.Is(err, salesdomain.ErrSalesOrderAlreadyExists):
		return Conflict
	default:
		return Failure
	}
}
