package services

import (
	"context"
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
	salesdomain "github.com/acme/salescrm/services/sales/domain"
	domainevents "github.com/acme/salescrm/services/sales/domain/events"
	"github.com/acme/salescrm/services/sales/domain/models"
	"github.com/acme/salescrm/services/sales/domain/repositories"
	domainsvcs "github.com/acme/salescrm/services/sales/domain/services"
	shareddomain "github.com/acme/salescrm/services/shared/domain"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

const instrumentationName = "github.com/acme/salescrm/services/sales"

// EventPublisher publishes messages to a topic. *events.EventBus satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// CustomerChecker answers whether a customer is registered.
type CustomerChecker interface {
	Exists(ctx context.Context, id sharedmodels.CustomerID) (bool, error)
}

// AddItemInput is the unvalidated, string-typed form of a new order line.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"gt=0"`
	UnitPrice string `json:"unit_price" validate:"required,decimal"`
	Currency  string `json:"currency"   validate:"required,iso4217"`
}

// SalesOrderService orchestrates placing SalesOrders and adding line items.
// Events are published after the repository write succeeds; a failed publish is
// logged and does not undo the write.
type SalesOrderService struct {
	repo      repositories.SalesOrderRepository
	customers CustomerChecker
	pub       EventPublisher
	log       logger.Logger
	tracer    trace.Tracer
	ops       metric.Int64Counter
	failure   metric.Int64Counter
}

// NewSalesOrderService returns a SalesOrderService. customers and pub may be nil
// to skip the customer check and events respectively.
func NewSalesOrderService(repo repositories.SalesOrderRepository, customers CustomerChecker, pub EventPublisher, log logger.Logger) *SalesOrderService {
	meter := otel.Meter(instrumentationName)
	ops, err := meter.Int64Counter("sales_order_operations",
		metric.WithDescription("Completed sales order use cases by operation"))
	if err != nil {
		otel.Handle(err)
	}
	failure, err := meter.Int64Counter("sales_order_operation_failures",
		metric.WithDescription("Rejected sales order use cases by operation"))
	if err != nil {
		otel.Handle(err)
	}
	return &SalesOrderService{
		repo:      repo,
		customers: customers,
		pub:       pub,
		log:       log,
		tracer:    otel.Tracer(instrumentationName),
		ops:       ops,
		failure:   failure,
	}
}

// PlaceOrder creates an empty SalesOrder for customerID dated now and stores it.
// Publishes SalesOrderPlacedEvent.
func (s *SalesOrderService) PlaceOrder(ctx context.Context, customerID sharedmodels.CustomerID) (o *models.SalesOrder, err error) {
	ctx, done := s.start(ctx, "PlaceOrder", attribute.String("customer_id", customerID.String()))
	defer func() { done(err) }()

	if s.customers != nil && !customerID.IsZero() {
		ok, err := s.customers.Exists(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("place order: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("place order: %w: %s", salesdomain.ErrUnknownCustomer, customerID)
		}
	}

	order, err := models.NewSalesOrder(customerID)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save sales order: %w", err)
	}

	s.publish(ctx, domainevents.TopicSalesOrderPlaced, domainevents.SalesOrderPlacedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID(),
		CustomerID: order.CustomerID().UUID(),
		OrderDate:  order.OrderDate(),
		OccurredAt: time.Now().UTC(),
	})
	s.log.InfoContext(ctx, "sales order placed", "order_id", order.ID().String())
	return order, nil
}

// AddItem appends a line to the order and recomputes its total.
// Publishes SalesOrderItemAddedEvent. On error the stored order is unchanged.
func (s *SalesOrderService) AddItem(ctx context.Context, orderID uuid.UUID, productID models.ProductID, quantity int, unitPrice sharedmodels.Money) (o *models.SalesOrder, err error) {
	ctx, done := s.start(ctx, "AddItem",
		attribute.String("order_id", orderID.String()),
		attribute.String("product_id", productID.String()),
		attribute.Int("quantity", quantity),
	)
	defer func() { done(err) }()

	order, err := s.repo.Update(ctx, orderID, func(o *models.SalesOrder) error {
		if err := o.AddItem(productID, quantity, unitPrice); err != nil {
			return err
		}
		return domainsvcs.ValidateOrderConsistency(o)
	})
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	s.publish(ctx, domainevents.TopicSalesOrderItemAdded, domainevents.SalesOrderItemAddedEvent{
		EventID:     uuid.New(),
		Version:     1,
		OrderID:     order.ID(),
		ProductID:   productID.UUID(),
		Quantity:    quantity,
		UnitPrice:   toEventMoney(unitPrice),
		TotalAmount: toEventMoney(order.TotalAmount()),
		ItemCount:   order.ItemCount(),
		OccurredAt:  time.Now().UTC(),
	})
	s.log.InfoContext(ctx, "item added to sales order",
		"order_id", order.ID().String(),
		"total", order.TotalAmountAsString(),
	)
	return order, nil
}

// AddItemFromInput validates the string-typed input and delegates to AddItem.
func (s *SalesOrderService) AddItemFromInput(ctx context.Context, orderID uuid.UUID, in AddItemInput) (o *models.SalesOrder, err error) {
	ctx, done := s.start(ctx, "AddItemFromInput", attribute.String("order_id", orderID.String()))
	defer func() { done(err) }()

	if err := pkgvalidator.Validate(&in); err != nil {
		return nil, fmt.Errorf("add item: %w: %w", shareddomain.ErrInvalidArgument, pkgvalidator.Error(err))
	}
	productID, err := models.ParseProductID(in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	price, err := sharedmodels.ParseMoney(in.UnitPrice, in.Currency)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	return s.AddItem(ctx, orderID, productID, in.Quantity, price)
}

// SetOrderDate overrides the order date of a stored order.
func (s *SalesOrderService) SetOrderDate(ctx context.Context, orderID uuid.UUID, orderDate time.Time) (o *models.SalesOrder, err error) {
	ctx, done := s.start(ctx, "SetOrderDate", attribute.String("order_id", orderID.String()))
	defer func() { done(err) }()

	order, err := s.repo.Update(ctx, orderID, func(o *models.SalesOrder) error {
		_, err := o.WithOrderDate(orderDate)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("set order date: %w", err)
	}
	return order, nil
}

// Get returns the SalesOrder with orderID. Returns ErrSalesOrderNotFound if absent.
func (s *SalesOrderService) Get(ctx context.Context, orderID uuid.UUID) (*models.SalesOrder, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return order, nil
}

// ListByCustomer returns the customer's orders, oldest first.
func (s *SalesOrderService) ListByCustomer(ctx context.Context, customerID sharedmodels.CustomerID) ([]*models.SalesOrder, error) {
	orders, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	return orders, nil
}

// start opens a span for op; done records the outcome on the span and counters.
func (s *SalesOrderService) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "SalesOrderService."+op, trace.WithAttributes(attrs...))
	opAttr := metric.WithAttributes(attribute.String("operation", op))
	return ctx, func(err error) {
		defer span.End()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.failure.Add(ctx, 1, opAttr)
			s.log.WarnContext(ctx, "sales order operation rejected", "operation", op, "error", err)
			return
		}
		s.ops.Add(ctx, 1, opAttr)
	}
}

func (s *SalesOrderService) publish(ctx context.Context, topic string, payload any) {
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

func toEventMoney(m sharedmodels.Money) domainevents.Money {
	return domainevents.Money{Amount: m.AmountString(), Currency: m.CurrencyCode()}
}
