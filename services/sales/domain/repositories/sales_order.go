package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/acme/salescrm/services/sales/domain/models"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

// SalesOrderRepository stores SalesOrder aggregates.
// The domain layer owns this interface; infrastructure implements it.
type SalesOrderRepository interface {
	Save(ctx context.Context, order *models.SalesOrder) error

	// GetByID returns a copy of the stored order or ErrSalesOrderNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)

	// FindByCustomerID returns copies of all orders placed by the customer.
	FindByCustomerID(ctx context.Context, customerID sharedmodels.CustomerID) ([]*models.SalesOrder, error)

	// Update loads the order, runs fn on it while holding exclusive access to
	// that order, and stores the result only when fn returns nil.
	Update(ctx context.Context, id uuid.UUID, fn func(*models.SalesOrder) error) (*models.SalesOrder, error)
}
