package service

import (
	"context"
	"time"
)

// CatalogEvent announces a change to an owner's catalog, categories or store profile
type CatalogEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`                 // e.g. product.created
	OwnerID    string    `json:"owner_id"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishCatalogEvent publishes a catalog change for downstream consumers
	PublishCatalogEvent(ctx context.Context, event *CatalogEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
