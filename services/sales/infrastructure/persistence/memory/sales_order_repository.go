// Package memory holds in-process implementations of the sales repositories.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	salesdomain "github.com/acme/salescrm/services/sales/domain"
	"github.com/acme/salescrm/services/sales/domain/models"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

// SalesOrderRepository implements repositories.SalesOrderRepository in memory.
// Stored orders are never handed out; every read returns a copy.
type SalesOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*models.SalesOrder
	locks  sync.Map // uuid.UUID -> *sync.Mutex, serialises Update per order
}

// NewSalesOrderRepository returns an empty SalesOrderRepository.
func NewSalesOrderRepository() *SalesOrderRepository {
	return &SalesOrderRepository{orders: make(map[uuid.UUID]*models.SalesOrder)}
}

// Save stores a new SalesOrder. Returns ErrSalesOrderAlreadyExists if the id is taken.
func (r *SalesOrderRepository) Save(ctx context.Context, order *models.SalesOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if order == nil || order.ID() == uuid.Nil {
		return fmt.Errorf("save sales order: order id must be set")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.ID()]; exists {
		return salesdomain.ErrSalesOrderAlreadyExists
	}
	r.orders[order.ID()] = order.Clone()
	return nil
}

// GetByID returns a copy of the SalesOrder. Returns ErrSalesOrderNotFound if absent.
func (r *SalesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, salesdomain.ErrSalesOrderNotFound
	}
	return stored.Clone(), nil
}

// FindByCustomerID returns copies of the customer's orders, oldest first.
func (r *SalesOrderRepository) FindByCustomerID(ctx context.Context, customerID sharedmodels.CustomerID) ([]*models.SalesOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []*models.SalesOrder
	for _, o := range r.orders {
		if o.CustomerID() == customerID {
			out = append(out, o.Clone())
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.SalesOrder) int {
		if c := a.OrderDate().Compare(b.OrderDate()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID().String(), b.ID().String())
	})
	return out, nil
}

// Update runs fn on a copy of the SalesOrder and stores the copy if fn succeeds.
// Concurrent Updates of the same order run one after another.
func (r *SalesOrderRepository) Update(ctx context.Context, id uuid.UUID, fn func(*models.SalesOrder) error) (*models.SalesOrder, error) {
	if !r.exists(id) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, salesdomain.ErrSalesOrderNotFound
	}
	unlock := r.lock(id)
	defer unlock()

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.orders[id] = order.Clone()
	r.mu.Unlock()
	return order, nil
}

// exists reports whether id is stored. Stored entities are never removed, so
// a lock is only created for ids that stay in the map.
func (r *SalesOrderRepository) exists(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orders[id]
	return ok
}

func (r *SalesOrderRepository) lock(id uuid.UUID) func() {
	m, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
