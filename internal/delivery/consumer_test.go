package delivery

import (
	"context"
	"testing"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
)

func TestProcessAcksForeignEventTypes(t *testing.T) {
	consumer := &Consumer{
		estimator: NewEstimator(),
		logg:      logger.New(logger.Options{ServiceName: "test"}),
	}

	foreign := []string{
		string(enums.EventItemBidsMarkedStale),
		string(enums.EventItemTimelineStructureAssigned),
		"unknown_event",
	}
	for _, eventType := range foreign {
		msg := &pubsub.Message{
			ID:         "msg-" + eventType,
			Attributes: map[string]string{"event_type": eventType},
		}
		if !consumer.process(context.Background(), msg) {
			t.Fatalf("expected %s to be acked", eventType)
		}
	}
}
