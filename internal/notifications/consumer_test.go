package notifications

import (
	"context"
	"testing"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
)

// The consumer owns a dedicated subscription, so anything outside its two
// event types is acked untouched instead of being handled here.
func TestProcessAcksForeignEventTypes(t *testing.T) {
	repo := &fakeNotificationsRepo{}
	consumer := &Consumer{
		repo: repo,
		logg: logger.New(logger.Options{ServiceName: "test"}),
	}

	foreign := []string{
		string(enums.EventItemDeliveryRecalcRequested),
		string(enums.EventItemCreated),
		"unknown_event",
	}
	for _, eventType := range foreign {
		msg := &pubsub.Message{
			ID:         "msg-" + eventType,
			Attributes: map[string]string{"event_type": eventType},
		}
		result := consumer.process(context.Background(), msg)
		if !result.ack || result.nack {
			t.Fatalf("expected %s to be acked, got %+v", eventType, result)
		}
	}

	if len(repo.created) != 0 {
		t.Fatalf("expected no notifications for foreign event types, got %d", len(repo.created))
	}
}
