// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// eventNotifier publishes catalog change events. A failed publish never fails the write
// that caused it.
type eventNotifier struct {
	publisher service.EventPublisher
	clock     clockwork.Clock
}

func (n eventNotifier) notify(ctx context.Context, logger *slog.Logger, eventType, ownerID, entityID string) {
	if n.publisher == nil {
		return
	}

	event := &service.CatalogEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		OwnerID:    ownerID,
		EntityID:   entityID,
		OccurredAt: n.clock.Now(),
	}
	if err := n.publisher.PublishCatalogEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish catalog event",
			slog.String("type", eventType),
			slog.String("entity_id", entityID),
			slog.Any("error", err),
		)
	}
}

// requireActor fails when no identity is acting.
func requireActor(actor *entity.Identity) error {
	if actor == nil || actor.ID == "" {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no active identity")
	}

	return nil
}

// upstream wraps a backend failure into the retryable taxonomy member.
func upstream(err error, message string) error {
	return errors.Wrap(domainerrors.ErrUpstreamFailure.WithDetails(err.Error()), message)
}
