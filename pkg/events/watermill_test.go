package events

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/acme/salescrm/pkg/config"
	"github.com/acme/salescrm/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.NewWithWriter(&config.Config{LogLevel: "error"}, io.Discard)
}

// TestRetryWithBackoff_SuccessOnFirstAttempt verifies no retry occurs on success.
func TestRetryWithBackoff_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestRetryWithBackoff_SuccessAfterRetries verifies retry continues until success.
func TestRetryWithBackoff_SuccessAfterRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient error")
		}
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil after eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

// TestRetryWithBackoff_ExhaustsRetries verifies an error is returned after all retries fail.
func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("permanent error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != maxRetries {
		t.Errorf("expected %d calls, got %d", maxRetries, calls)
	}
}

// TestRetryWithBackoff_ContextCancelled verifies retry stops when context is canceled.
func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(ctx, msg, handler, maxRetries, time.Second, nopLogger())
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
	// Should have called handler once then exited on ctx.Done
	if calls != 1 {
		t.Errorf("expected 1 call before context cancel, got %d", calls)
	}
}

// TestOTelPropagation_InjectExtract verifies that trace context injected via
// the same propagation path used by Publish/Subscribe round-trips correctly.
func TestOTelPropagation_InjectExtract(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish-span")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	// Simulate Publish: inject trace context into message metadata.
	msg := message.NewMessage("id", nil)
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}

	// Simulate Subscribe: extract trace context from message metadata.
	extractCarrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		extractCarrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(context.Background(), extractCarrier)

	gotSpan := trace.SpanFromContext(msgCtx)
	if !gotSpan.SpanContext().IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if gotSpan.SpanContext().TraceID() != wantTraceID {
		t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, gotSpan.SpanContext().TraceID())
	}
}

func newTestBus(t *testing.T) *EventBus {
	t.Helper()
	bus := newEventBus(nopLogger(), time.Millisecond)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

type orderPlaced struct {
	OrderID string `json:"order_id"`
}

// TestEventBus_PublishSubscribe verifies a published message reaches the handler
// before Publish returns and that the payload decodes.
func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := newTestBus(t)

	var got orderPlaced
	_, err := bus.Subscribe(context.Background(), "sales.order.placed", func(_ context.Context, msg *message.Message) error {
		return Decode(msg, &got)
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	msg, err := NewMessage(orderPlaced{OrderID: "o-1"})
	if err != nil {
		t.Fatalf("NewMessage failed: %v", err)
	}
	if err := bus.Publish(context.Background(), "sales.order.placed", msg); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if got.OrderID != "o-1" {
		t.Errorf("handler saw order_id %q, want o-1", got.OrderID)
	}
}

// TestEventBus_ExhaustedRetriesReportError verifies the error channel receives
// the handler error once every attempt has failed.
func TestEventBus_ExhaustedRetriesReportError(t *testing.T) {
	bus := newTestBus(t)

	calls := 0
	errCh, err := bus.Subscribe(context.Background(), "crm.customer.registered", func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("projection unavailable")
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	msg, _ := NewMessage(map[string]string{"customer_id": "c-1"})
	if err := bus.Publish(context.Background(), "crm.customer.registered", msg); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case got := <-errCh:
		if got == nil {
			t.Fatal("expected non-nil error")
		}
	case <-time.After(time.Second):
		t.Fatal("expected an error on the error channel")
	}
	if calls != maxRetries {
		t.Errorf("expected %d handler calls, got %d", maxRetries, calls)
	}
}

// TestEventBus_PropagatesTraceAndRunID verifies the handler context carries the
// publisher's trace and run id.
func TestEventBus_PropagatesTraceAndRunID(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	bus := newTestBus(t)

	var gotTrace trace.TraceID
	var gotRunID string
	_, err := bus.Subscribe(context.Background(), "sales.order.item_added", func(ctx context.Context, _ *message.Message) error {
		gotTrace = trace.SpanContextFromContext(ctx).TraceID()
		gotRunID = logger.RunID(ctx)
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	ctx := logger.WithRunID(context.Background(), "run-7")
	ctx, span := otel.Tracer("test").Start(ctx, "add-item")
	defer span.End()

	msg, _ := NewMessage(orderPlaced{OrderID: "o-2"})
	if err := bus.Publish(ctx, "sales.order.item_added", msg); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if gotTrace != span.SpanContext().TraceID() {
		t.Errorf("trace ID mismatch: want %s, got %s", span.SpanContext().TraceID(), gotTrace)
	}
	if gotRunID != "run-7" {
		t.Errorf("run id = %q, want run-7", gotRunID)
	}
}

func TestNewMessage_UnsupportedPayload(t *testing.T) {
	if _, err := NewMessage(make(chan int)); err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
}

func TestDecode_InvalidPayload(t *testing.T) {
	msg := message.NewMessage("id", []byte("not json"))
	var v orderPlaced
	if err := Decode(msg, &v); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
