package services

import (
	"github.com/acme/salescrm/pkg/app"
	"github.com/acme/salescrm/services/sales/infrastructure/persistence/memory"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	SalesOrder *SalesOrderService
}

// New wires all sales application services with infrastructure from the Application container.
// customers is consulted by PlaceOrder; pass the crm CustomerService.
func New(a *app.Application, customers CustomerChecker) *Services {
	repo := memory.NewSalesOrderRepository()
	return &Services{
		SalesOrder: NewSalesOrderService(repo, customers, a.EventBus, a.Logger),
	}
}
