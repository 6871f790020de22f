package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
	"github.com/svaldeco/atelierq-backend/pkg/pagination"
)

// Service defines notification list/read operations plus the spec-change
// dispatch consumed by the item update pipeline.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, kind enums.RecipientKind, recipientID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, kind enums.RecipientKind, recipientID uuid.UUID) (int64, error)
	NotifySpecChange(ctx context.Context, supplierID, itemID uuid.UUID, boardID *uuid.UUID, itemTitle string, revision int) error
}

type service struct {
	repo Repository
}

// ListParams configures pagination for notifications.
type ListParams struct {
	RecipientKind enums.RecipientKind
	RecipientID   uuid.UUID
	Limit         int
	Cursor        string
	UnreadOnly    bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.RecipientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient id required")
	}
	if !params.RecipientKind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient kind required")
	}

	query := listNotificationsParams{
		RecipientKind: params.RecipientKind,
		RecipientID:   params.RecipientID,
		Limit:         pagination.LimitWithBuffer(params.Limit),
		UnreadOnly:    params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{
		Items:  rows,
		Cursor: cursor,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, kind enums.RecipientKind, recipientID, notificationID uuid.UUID) error {
	if recipientID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, kind, recipientID, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, kind enums.RecipientKind, recipientID uuid.UUID) (int64, error) {
	if recipientID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "recipient id required")
	}

	count, err := s.repo.MarkAllRead(ctx, kind, recipientID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

// NotifySpecChange stores a spec_changed notification for one supplier.
// Callers treat delivery as best-effort; a failure here never rolls back
// the item update that triggered it.
func (s *service) NotifySpecChange(ctx context.Context, supplierID, itemID uuid.UUID, boardID *uuid.UUID, itemTitle string, revision int) error {
	if supplierID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	notification := &models.Notification{
		RecipientKind: enums.RecipientKindSupplier,
		RecipientID:   supplierID,
		Type:          enums.NotificationTypeSpecChanged,
		Title:         "Item specifications changed",
		Message:       fmt.Sprintf("Specifications for %q changed (revision %d). Please review and re-submit your bid if needed.", itemTitle, revision),
		ItemID:        &itemID,
		BoardID:       boardID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert notification")
	}
	return nil
}
