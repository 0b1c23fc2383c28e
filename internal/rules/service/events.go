package service

import (
	"context"
	"time"

	"pawresort/pkg/config"
	"pawresort/pkg/kafka"
)

const (
	TopicCatalogChanged    = "pricing.catalog.changed"
	TopicCatalogChangedDLQ = "pricing.catalog.changed.dlq"

	EventSchemaVersion = "1"
	EventSource        = "rules-service"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"

	EntityPricingRule = "pricing_rule"
	EntityHoliday     = "holiday"
	EntitySuiteConfig = "suite_capacity_config"
)

// EventPublisher is satisfied by kafka.Producer. Services treat a nil
// publisher as events-disabled.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// CatalogChangedEvent notifies downstream consumers (quote caches, rate
// sheets) that the pricing catalog changed and resolved prices may differ.
type CatalogChangedEvent struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publishCatalogChanged emits a change event best-effort: the write already
// committed, so a publish failure is logged but never surfaced to the caller.
func publishCatalogChanged(ctx context.Context, cfg *config.Config, publisher EventPublisher, entityType, entityID, action string) {
	if publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(entityID).
		WithValue(CatalogChangedEvent{
			EntityType: entityType,
			EntityID:   entityID,
			Action:     action,
			OccurredAt: time.Now().UTC(),
		}).
		WithEventType(entityType + "." + action).
		WithSchemaVersion(EventSchemaVersion).
		WithSource(EventSource).
		Build()
	msg.Topic = TopicCatalogChanged

	if err := publisher.Publish(ctx, msg); err != nil {
		cfg.Log.Error("Failed to publish catalog change event",
			"entity_type", entityType,
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
	}
}
