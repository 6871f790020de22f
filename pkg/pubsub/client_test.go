package pubsub

import (
	"errors"
	"testing"

	"github.com/svaldeco/atelierq-backend/pkg/config"
)

func TestSubscriptionNamesOnePerConsumer(t *testing.T) {
	names, err := subscriptionNames(config.PubSubConfig{
		NotificationSubscription: " aq-notification-events ",
		DeliverySubscription:     "aq-delivery-events",
	})
	if err != nil {
		t.Fatalf("subscriptionNames returned unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected one subscription per consumer, got %v", names)
	}
	if names[0] != "aq-notification-events" || names[1] != "aq-delivery-events" {
		t.Fatalf("unexpected subscription names %v", names)
	}
}

func TestSubscriptionNamesRejectsSharedSubscription(t *testing.T) {
	_, err := subscriptionNames(config.PubSubConfig{
		NotificationSubscription: "aq-domain-events",
		DeliverySubscription:     "aq-domain-events",
	})
	if !errors.Is(err, errSharedSubscription) {
		t.Fatalf("expected shared subscription error, got %v", err)
	}
}

func TestSubscriptionNamesRequiresAtLeastOne(t *testing.T) {
	_, err := subscriptionNames(config.PubSubConfig{})
	if !errors.Is(err, errNoSubscriptions) {
		t.Fatalf("expected missing subscription error, got %v", err)
	}
}
