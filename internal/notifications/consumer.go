package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/outbox"
	"github.com/svaldeco/atelierq-backend/pkg/outbox/idempotency"
	"github.com/svaldeco/atelierq-backend/pkg/outbox/payloads"
)

const itemNotificationConsumer = "item-notifications"

type repository interface {
	Create(ctx context.Context, notification *models.Notification) error
}

type bidReader interface {
	FindBidsByIDs(ctx context.Context, bidIDs []uuid.UUID) ([]models.Bid, error)
}

type itemReader interface {
	FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
}

// Consumer watches item domain events and turns bid invalidations and
// timeline assignments into in-app notifications.
type Consumer struct {
	repo         repository
	bids         bidReader
	items        itemReader
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds an item notification consumer.
func NewConsumer(repo repository, bids bidReader, items itemReader, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if bids == nil {
		return nil, fmt.Errorf("bid reader required")
	}
	if items == nil {
		return nil, fmt.Errorf("item reader required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("notification subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		bids:         bids,
		items:        items,
		subscription: subscription,
		idempotency:  manager,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	fields := map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	}
	logCtx := c.logg.WithFields(ctx, fields)

	var handler func(ctx context.Context, data json.RawMessage, logCtx context.Context) error
	switch eventType {
	case string(enums.EventItemBidsMarkedStale):
		handler = c.handleBidsMarkedStale
	case string(enums.EventItemTimelineStructureAssigned):
		handler = c.handleTimelineAssigned
	default:
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, itemNotificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	if err := handler(ctx, envelope.Data, logCtx); err != nil {
		c.logg.Error(logCtx, "notification handling failed", err)
		_ = c.idempotency.Delete(ctx, itemNotificationConsumer, eventID)
		return processResult{nack: true}
	}
	return processResult{ack: true}
}

func (c *Consumer) handleBidsMarkedStale(ctx context.Context, data json.RawMessage, logCtx context.Context) error {
	var payload payloads.ItemBidsMarkedStaleEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if len(payload.BidIDs) == 0 {
		return nil
	}

	bids, err := c.bids.FindBidsByIDs(ctx, payload.BidIDs)
	if err != nil {
		return fmt.Errorf("load bids: %w", err)
	}
	item, err := c.items.FindByID(ctx, payload.ItemID)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}

	for _, bid := range bids {
		itemID := payload.ItemID
		notification := &models.Notification{
			RecipientKind: enums.RecipientKindSupplier,
			RecipientID:   bid.SupplierID,
			Type:          enums.NotificationTypeBidStale,
			Title:         "Bid requires re-submission",
			Message:       fmt.Sprintf("Your bid on %q is out of date: the item moved to revision %d.", item.Title, payload.Revision),
			ItemID:        &itemID,
			BoardID:       &item.BoardID,
		}
		if err := c.repo.Create(ctx, notification); err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
	}
	c.logg.Info(logCtx, "suppliers notified of stale bids")
	return nil
}

func (c *Consumer) handleTimelineAssigned(ctx context.Context, data json.RawMessage, logCtx context.Context) error {
	var payload payloads.ItemTimelineTypeDerivedEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if payload.TimelineType == enums.TimelineTypeNone {
		return nil
	}

	item, err := c.items.FindByID(ctx, payload.ItemID)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}

	itemID := payload.ItemID
	notification := &models.Notification{
		RecipientKind: enums.RecipientKindUser,
		RecipientID:   item.OwnerUserID,
		Type:          enums.NotificationTypeTimelineUpdate,
		Title:         "Production timeline assigned",
		Message:       fmt.Sprintf("%q now follows the %s timeline (%d steps).", item.Title, payload.TimelineType, payload.StepCount),
		ItemID:        &itemID,
		BoardID:       &item.BoardID,
	}
	if err := c.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	c.logg.Info(logCtx, "owner notified of timeline assignment")
	return nil
}
