package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/acme/salescrm/pkg/app"
	"github.com/acme/salescrm/pkg/config"
	"github.com/acme/salescrm/pkg/events"
	"github.com/acme/salescrm/pkg/logger"
	"github.com/acme/salescrm/pkg/telemetry"
	crmservices "github.com/acme/salescrm/services/crm/application/services"
	crmevents "github.com/acme/salescrm/services/crm/domain/events"
	salesservices "github.com/acme/salescrm/services/sales/application/services"
	salesevents "github.com/acme/salescrm/services/sales/domain/events"
	sharedmodels "github.com/acme/salescrm/services/shared/domain/models"
)

type scenarioOptions struct {
	Name     string
	Email    string
	Price    string
	Quantity int
	Currency string
}

var (
	firstAddress = crmservices.AddressInput{
		Street: "Av. General Salaverry UPC", City: "Lima", PostalCode: "1234556", Country: "PERU",
	}
	secondAddress = crmservices.AddressInput{
		Street: "Av. General Primavera UPC", City: "Lima", PostalCode: "1234556", Country: "PERU",
	}
)

// runDemo bootstraps the shared infrastructure, runs the scenario and flushes telemetry.
// Logs go to stderr; the scenario narrative goes to the command's stdout.
func runDemo(cmd *cobra.Command, cfg *config.Config, opts scenarioOptions) error {
	if opts.Currency == "" {
		opts.Currency = cfg.DefaultCurrency
	}

	log := logger.NewWithWriter(cfg, os.Stderr)
	ctx := logger.WithRunID(cmd.Context(), uuid.NewString())

	otelShutdown, gatherer, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup otel: %w", err)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus := events.NewEventBus(log)
	defer eventBus.Close() //nolint:errcheck

	a := &app.Application{Config: cfg, Logger: log, EventBus: eventBus}
	if err := registerSubscribers(ctx, a); err != nil {
		return fmt.Errorf("register subscribers: %w", err)
	}

	err = runScenario(ctx, a, opts, cmd.OutOrStdout())
	if err != nil {
		log.ErrorContext(ctx, "demo scenario failed", "error", err)
		telemetry.CaptureError(ctx, err)
	}

	if werr := telemetry.WriteMetricsTextfile(cfg.MetricsTextfile, gatherer); werr != nil {
		log.WarnContext(ctx, "failed to write metrics textfile", "error", werr)
	}
	return err
}

// runScenario registers a customer, moves them to a second address and places
// an order with one line, printing each step to out.
func runScenario(ctx context.Context, a *app.Application, opts scenarioOptions, out io.Writer) error {
	crm := crmservices.New(a)
	sales := salesservices.New(a, crm.Customer)

	for _, line := range []struct {
		label string
		in    crmservices.AddressInput
	}{
		{"First Address", firstAddress},
		{"Second Address", secondAddress},
	} {
		addr, err := sharedmodels.NewAddress(line.in.Street, line.in.City, line.in.PostalCode, line.in.Country)
		if err != nil {
			return fmt.Errorf("%s: %w", line.label, err)
		}
		fmt.Fprintf(out, "%s: %s\n", line.label, addr)
	}

	fmt.Fprintln(out, "Creating a customer.....")
	customer, err := crm.Customer.Register(ctx, opts.Name, opts.Email, firstAddress)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Customer Contact Info: %s\n", customer.ContactInfo())

	fmt.Fprintln(out, "Updating Customer Contact Info.....")
	customer, err = crm.Customer.UpdateContactInfo(ctx, customer.ID(), customer.Email(), secondAddress)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Customer Contact Info: %s\n", customer.ContactInfo())

	fmt.Fprintln(out, "Creating a sales order.....")
	order, err := sales.SalesOrder.PlaceOrder(ctx, customer.ID())
	if err != nil {
		return err
	}
	order, err = sales.SalesOrder.AddItemFromInput(ctx, order.ID(), salesservices.AddItemInput{
		ProductID: uuid.NewString(),
		Quantity:  opts.Quantity,
		UnitPrice: opts.Price,
		Currency:  opts.Currency,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Sales Order Id: %s\n", order.ID())
	fmt.Fprintf(out, "Order Date: %s\n", order.OrderDate().Format(time.RFC3339))
	fmt.Fprintf(out, "Customer Id: %s\n", order.CustomerID())
	fmt.Fprintf(out, "Total Amount: %s\n", order.TotalAmountAsString())
	return nil
}

// registerSubscribers logs every domain event the scenario publishes.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := []string{
		crmevents.TopicCustomerRegistered,
		crmevents.TopicContactInfoUpdated,
		salesevents.TopicSalesOrderPlaced,
		salesevents.TopicSalesOrderItemAdded,
	}
	for _, topic := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, logEvent(a.Logger, topic))
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

func logEvent(log logger.Logger, topic string) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var payload map[string]any
		if err := events.Decode(msg, &payload); err != nil {
			return err
		}
		log.InfoContext(ctx, "domain event", "topic", topic, "message_id", msg.UUID, "payload", payload)
		return nil
	}
}
