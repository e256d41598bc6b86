package repositories

import (
	"context"

	"github.com/acme/salescrm/services/crm/domain/models"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

// CustomerRepository stores Customer entities.
// The domain layer owns this interface; infrastructure implements it.
type CustomerRepository interface {
	Save(ctx context.Context, customer *models.Customer) error

	// GetByID returns a copy of the stored Customer or ErrCustomerNotFound.
	GetByID(ctx context.Context, id sharedmodels.CustomerID) (*models.Customer, error)

	// Update loads the Customer, runs fn on it while holding exclusive access to
	// that Customer, and stores the result only when fn returns nil.
	Update(ctx context.Context, id sharedmodels.CustomerID, fn func(*models.Customer) error) (*models.Customer, error)
}
