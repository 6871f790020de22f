package registry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/config"
	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	"github.com/svaldeco/atelierq-backend/pkg/outbox"
	"github.com/svaldeco/atelierq-backend/pkg/outbox/payloads"
)

func testConfig() config.PubSubConfig {
	return config.PubSubConfig{DomainTopic: "domain-events"}
}

func envelopeRow(t *testing.T, eventType enums.OutboxEventType, data any) models.OutboxEvent {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	envelope := outbox.PayloadEnvelope{
		Version:    1,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now(),
		Data:       raw,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return models.OutboxEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateItem,
		AggregateID:   uuid.New(),
		Payload:       payload,
	}
}

func TestNewEventRegistryRequiresTopic(t *testing.T) {
	if _, err := NewEventRegistry(config.PubSubConfig{}); err == nil {
		t.Fatal("expected error for empty domain topic")
	}
}

func TestResolveDecodesTypedPayload(t *testing.T) {
	reg, err := NewEventRegistry(testConfig())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	itemID := uuid.New()
	row := envelopeRow(t, enums.EventItemRevisionIncremented, payloads.ItemRevisionIncrementedEvent{
		ItemID:      itemID,
		Revision:    3,
		OldRevision: 2,
	})

	resolved, err := reg.Resolve(row)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Descriptor.Topic != "domain-events" {
		t.Fatalf("expected domain topic, got %s", resolved.Descriptor.Topic)
	}
	payload, ok := resolved.Payload.(*payloads.ItemRevisionIncrementedEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", resolved.Payload)
	}
	if payload.ItemID != itemID || payload.Revision != 3 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestResolveRejectsUnknownEventType(t *testing.T) {
	reg, err := NewEventRegistry(testConfig())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	row := envelopeRow(t, enums.OutboxEventType("order_created"), map[string]any{})

	_, err = reg.Resolve(row)
	var nonRetry NonRetryableError
	if !errors.As(err, &nonRetry) {
		t.Fatalf("expected non-retryable error, got %v", err)
	}
}

func TestResolveRejectsAggregateMismatch(t *testing.T) {
	reg, err := NewEventRegistry(testConfig())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	row := envelopeRow(t, enums.EventItemCreated, payloads.ItemCreatedEvent{ItemID: uuid.New()})
	row.AggregateType = enums.AggregateBoard

	var nonRetry NonRetryableError
	if _, err := reg.Resolve(row); !errors.As(err, &nonRetry) {
		t.Fatalf("expected non-retryable error, got %v", err)
	}
}

func TestResolveRejectsEmptyPayload(t *testing.T) {
	reg, err := NewEventRegistry(testConfig())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	envelope, err := json.Marshal(outbox.PayloadEnvelope{Version: 1, EventID: uuid.NewString(), OccurredAt: time.Now()})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	row := models.OutboxEvent{
		EventType:     enums.EventItemCreated,
		AggregateType: enums.AggregateItem,
		AggregateID:   uuid.New(),
		Payload:       envelope,
	}

	var nonRetry NonRetryableError
	if _, err := reg.Resolve(row); !errors.As(err, &nonRetry) {
		t.Fatalf("expected non-retryable error, got %v", err)
	}
}
