package app

import (
	"github.com/acme/salescrm/pkg/config"
	"github.com/acme/salescrm/pkg/events"
	"github.com/acme/salescrm/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's services.New during startup.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and run_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "order placed", "order_id", id)
//	app.Logger.ErrorContext(ctx, "failed to add item", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Logger   logger.Logger
	EventBus *events.EventBus
}
