package services

import (
	"github.com/acme/salescrm/pkg/app"
	"github.com/acme/salescrm/services/crm/infrastructure/persistence/memory"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Customer *CustomerService
}

// New wires all crm application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := memory.NewCustomerRepository()
	return &Services{
		Customer: NewCustomerService(repo, a.EventBus, a.Logger),
	}
}
