package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/acme/salescrm/pkg/events"
	"github.com/acme/salescrm/pkg/logger"
	pkgvalidator "github.com/acme/salescrm/pkg/validator"
	crmdomain "github.com/acme/salescrm/services/crm/domain"
	domainevents "github.com/acme/salescrm/services/crm/domain/events"
	"github.com/acme/salescrm/services/crm/domain/models"
	"github.com/acme/salescrm/services/crm/domain/repositories"
	shareddomain "github.com/acme/salescrm/services/shared/domain"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

const instrumentationName = "github.com/acme/salescrm/services/crm"

// EventPublisher publishes messages to a topic. *events.EventBus satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// AddressInput is the unvalidated form of a postal address.
type AddressInput struct {
	Street     string `json:"street"      validate:"required"`
	City       string `json:"city"        validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"     validate:"required"`
}

type registerInput struct {
	Name    string       `json:"name"    validate:"required,max=200"`
	Email   string       `json:"email"   validate:"required,email"`
	Address AddressInput `json:"address"`
}

type contactInfoInput struct {
	Email   string       `json:"email"   validate:"required,email"`
	Address AddressInput `json:"address"`
}

// CustomerService orchestrates registration and contact-info changes of Customers.
// Events are published after the repository write succeeds; a failed publish is
// logged and does not undo the write.
type CustomerService struct {
	repo    repositories.CustomerRepository
	pub     EventPublisher
	log     logger.Logger
	tracer  trace.Tracer
	ops     metric.Int64Counter
	failure metric.Int64Counter
}

// NewCustomerService returns a CustomerService. pub may be nil to disable events.
func NewCustomerService(repo repositories.CustomerRepository, pub EventPublisher, log logger.Logger) *CustomerService {
	meter := otel.Meter(instrumentationName)
	ops, err := meter.Int64Counter("crm_customer_operations",
		metric.WithDescription("Completed customer use cases by operation"))
	if err != nil {
		otel.Handle(err)
	}
	failure, err := meter.Int64Counter("crm_customer_operation_failures",
		metric.WithDescription("Rejected customer use cases by operation"))
	if err != nil {
		otel.Handle(err)
	}
	return &CustomerService{
		repo:    repo,
		pub:     pub,
		log:     log,
		tracer:  otel.Tracer(instrumentationName),
		ops:     ops,
		failure: failure,
	}
}

// Register validates the input, creates a Customer and stores it.
// Publishes CustomerRegisteredEvent.
func (s *CustomerService) Register(ctx context.Context, name, email string, address AddressInput) (c *models.Customer, err error) {
	ctx, done := s.start(ctx, "Register")
	defer func() { done(err) }()

	in := registerInput{Name: name, Email: email, Address: address}
	if err := pkgvalidator.Validate(&in); err != nil {
		return nil, fmt.Errorf("%w: %w", shareddomain.ErrInvalidArgument, pkgvalidator.Error(err))
	}

	addr, err := toAddress(address)
	if err != nil {
		return nil, err
	}
	customer, err := models.NewCustomer(name, email, addr)
	if err != nil {
		return nil, fmt.Errorf("register customer: %w", err)
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}

	s.publish(ctx, domainevents.TopicCustomerRegistered, domainevents.CustomerRegisteredEvent{
		EventID:    uuid.New(),
		Version:    1,
		CustomerID: customer.ID().UUID(),
		Name:       customer.Name(),
		Email:      customer.Email(),
		Address:    toEventAddress(customer.Address()),
		OccurredAt: time.Now().UTC(),
	})
	s.log.InfoContext(ctx, "customer registered", "customer_id", customer.ID().String())
	return customer, nil
}

// UpdateContactInfo replaces the Customer's email and address together.
// Publishes ContactInfoUpdatedEvent. Returns ErrCustomerNotFound for unknown ids.
func (s *CustomerService) UpdateContactInfo(ctx context.Context, id sharedmodels.CustomerID, email string, address AddressInput) (c *models.Customer, err error) {
	ctx, done := s.start(ctx, "UpdateContactInfo", attribute.String("customer_id", id.String()))
	defer func() { done(err) }()

	in := contactInfoInput{Email: email, Address: address}
	if err := pkgvalidator.Validate(&in); err != nil {
		return nil, fmt.Errorf("%w: %w", shareddomain.ErrInvalidArgument, pkgvalidator.Error(err))
	}

	addr, err := toAddress(address)
	if err != nil {
		return nil, err
	}
	customer, err := s.repo.Update(ctx, id, func(c *models.Customer) error {
		return c.UpdateContactInfo(email, addr)
	})
	if err != nil {
		return nil, fmt.Errorf("update contact info: %w", err)
	}

	s.publish(ctx, domainevents.TopicContactInfoUpdated, domainevents.ContactInfoUpdatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		CustomerID: customer.ID().UUID(),
		Email:      customer.Email(),
		Address:    toEventAddress(customer.Address()),
		OccurredAt: time.Now().UTC(),
	})
	s.log.InfoContext(ctx, "customer contact info updated", "customer_id", customer.ID().String())
	return customer, nil
}

// Get returns the Customer with id. Returns ErrCustomerNotFound if absent.
func (s *CustomerService) Get(ctx context.Context, id sharedmodels.CustomerID) (*models.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

// Exists reports whether a Customer with id is registered.
func (s *CustomerService) Exists(ctx context.Context, id sharedmodels.CustomerID) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, crmdomain.ErrCustomerNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check customer: %w", err)
	}
}

// start opens a span for op; done records the outcome on the span and counters.
func (s *CustomerService) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "CustomerService."+op, trace.WithAttributes(attrs...))
	opAttr := metric.WithAttributes(attribute.String("operation", op))
	return ctx, func(err error) {
		defer span.End()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.failure.Add(ctx, 1, opAttr)
			s.log.WarnContext(ctx, "customer operation rejected", "operation", op, "error", err)
			return
		}
		s.ops.Add(ctx, 1, opAttr)
	}
}

func (s *CustomerService) publish(ctx context.Context, topic string, payload any) {
	if s.pub == nil {
		return
	}
	msg, err := events.NewMessage(payload)
	if err == nil {
		err = s.pub.Publish(ctx, topic, msg)
	}
	if err != nil {
		s.log.ErrorContext(ctx, "failed to publish event", "topic", topic, "error", err)
	}
}

func toAddress(in AddressInput) (sharedmodels.Address, error) {
	addr, err := sharedmodels.NewAddress(in.Street, in.City, in.PostalCode, in.Country)
	if err != nil {
		return sharedmodels.Address{}, fmt.Errorf("address: %w", err)
	}
	return addr, nil
}

func toEventAddress(a sharedmodels.Address) domainevents.Address {
	return domainevents.Address{
		Street:     a.Street(),
		City:       a.City(),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
	}
}
