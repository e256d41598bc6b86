package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicCustomerRegistered is published when a Customer is created.
	TopicCustomerRegistered = "crm.customer.registered"

	// TopicContactInfoUpdated is published after a Customer's email/address change.
	TopicContactInfoUpdated = "crm.customer.contact_info_updated"
)

// Address is the flattened address carried by CRM events.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CustomerRegisteredEvent is published after a new Customer is registered.
type CustomerRegisteredEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Address    Address   `json:"address"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ContactInfoUpdatedEvent is published after UpdateContactInfo succeeds.
type ContactInfoUpdatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	CustomerID uuid.UUID `json:"customer_id"`
	Email      string    `json:"email"`
	Address    Address   `json:"address"`
	OccurredAt time.Time `json:"occurred_at"`
}
