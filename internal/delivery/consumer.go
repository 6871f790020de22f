package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/outbox"
	"github.com/svaldeco/atelierq-backend/pkg/outbox/idempotency"
	"github.com/svaldeco/atelierq-backend/pkg/outbox/payloads"
)

const deliveryConsumer = "delivery-recalc"

type itemReader interface {
	FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
}

type boardReader interface {
	FindByID(ctx context.Context, boardID uuid.UUID) (*models.Board, error)
}

// Consumer reprices delivery whenever the pipeline reports that dimensions,
// quantity, or the delivery address changed.
type Consumer struct {
	repo         Repository
	estimator    *Estimator
	items        itemReader
	boards       boardReader
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds a delivery recalc consumer.
func NewConsumer(repo Repository, estimator *Estimator, items itemReader, boards boardReader, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	if estimator == nil {
		return nil, fmt.Errorf("estimator required")
	}
	if items == nil {
		return nil, fmt.Errorf("item reader required")
	}
	if boards == nil {
		return nil, fmt.Errorf("board reader required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("delivery subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		estimator:    estimator,
		items:        items,
		boards:       boards,
		subscription: subscription,
		idempotency:  manager,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if c.process(ctx, msg) {
			msg.Ack()
			return
		}
		msg.Nack()
	})
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) bool {
	eventType := msg.Attributes["event_type"]
	if eventType != string(enums.EventItemDeliveryRecalcRequested) {
		return true
	}
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return true
	}
	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return true
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, deliveryConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return false
	}
	if already {
		return true
	}

	var payload payloads.ItemDeliveryRecalcRequestedEvent
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		_ = c.idempotency.Delete(ctx, deliveryConsumer, eventID)
		return false
	}

	if err := c.recalculate(ctx, payload); err != nil {
		c.logg.Error(logCtx, "delivery recalc failed", err)
		_ = c.idempotency.Delete(ctx, deliveryConsumer, eventID)
		return false
	}
	c.logg.Info(c.logg.WithItemID(logCtx, payload.ItemID.String()), "delivery estimate updated")
	return true
}

func (c *Consumer) recalculate(ctx context.Context, payload payloads.ItemDeliveryRecalcRequestedEvent) error {
	item, err := c.items.FindByID(ctx, payload.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load item: %w", err)
	}

	var board *models.Board
	loaded, err := c.boards.FindByID(ctx, item.BoardID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load board: %w", err)
	}
	if err == nil {
		board = loaded
	}

	cents, ok := c.estimator.Estimate(item, board)
	if !ok {
		return c.repo.ClearEstimate(ctx, item.ID)
	}
	return c.repo.UpdateEstimate(ctx, item.ID, cents)
}
