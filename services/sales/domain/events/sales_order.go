package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicSalesOrderPlaced is published when a new SalesOrder is created.
	TopicSalesOrderPlaced = "sales.order.placed"

	// TopicSalesOrderItemAdded is published after AddItem succeeds.
	TopicSalesOrderItemAdded = "sales.order.item_added"
)

// Money is the wire form of a monetary amount. Amount keeps its decimal scale.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// SalesOrderPlacedEvent is published after a new SalesOrder is stored.
type SalesOrderPlacedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	OrderDate  time.Time `json:"order_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SalesOrderItemAddedEvent carries the new line and the recomputed order total.
type SalesOrderItemAddedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	OrderID     uuid.UUID `json:"order_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   Money     `json:"unit_price"`
	TotalAmount Money     `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
