// Package memory holds in-process implementations of the crm repositories.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	crmdomain "github.com/acme/salescrm/services/crm/domain"
	"github.com/acme/salescrm/services/crm/domain/models"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

// CustomerRepository implements repositories.CustomerRepository in memory.
// Stored customers are never handed out; every read returns a copy.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*models.Customer
	locks     sync.Map // uuid.UUID -> *sync.Mutex, serialises Update per customer
}

// NewCustomerRepository returns an empty CustomerRepository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[uuid.UUID]*models.Customer)}
}

// Save stores a new Customer. Returns ErrCustomerAlreadyExists if the id is taken.
func (r *CustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if customer == nil || customer.ID().IsZero() {
		return fmt.Errorf("save customer: customer id must be set")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := customer.ID().UUID()
	if _, exists := r.customers[key]; exists {
		return crmdomain.ErrCustomerAlreadyExists
	}
	r.customers[key] = customer.Clone()
	return nil
}

// GetByID returns a copy of the Customer. Returns ErrCustomerNotFound if absent.
func (r *CustomerRepository) GetByID(ctx context.Context, id sharedmodels.CustomerID) (*models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.customers[id.UUID()]
	if !ok {
		return nil, crmdomain.ErrCustomerNotFound
	}
	return stored.Clone(), nil
}

// Update runs fn on a copy of the Customer and stores the copy if fn succeeds.
// Concurrent Updates of the same customer run one after another.
func (r *CustomerRepository) Update(ctx context.Context, id sharedmodels.CustomerID, fn func(*models.Customer) error) (*models.Customer, error) {
	if !r.exists(id.UUID()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, crmdomain.ErrCustomerNotFound
	}
	unlock := r.lock(id.UUID())
	defer unlock()

	customer, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(customer); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.customers[id.UUID()] = customer.Clone()
	r.mu.Unlock()
	return customer, nil
}

// exists reports whether id is stored. Stored entities are never removed, so
// a lock is only created for ids that stay in the map.
func (r *CustomerRepository) exists(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.customers[id]
	return ok
}

func (r *CustomerRepository) lock(id uuid.UUID) func() {
	m, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
