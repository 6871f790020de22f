package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
	"github.com/svaldeco/atelierq-backend/pkg/pagination"
)

type fakeNotificationsRepo struct {
	created    []models.Notification
	rows       []models.Notification
	next       *pagination.Cursor
	lastList   listNotificationsParams
	markResult notificationMarkResult
	markAll    int64
	err        error
}

func (f *fakeNotificationsRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeNotificationsRepo) Create(ctx context.Context, notification *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *notification)
	return nil
}

func (f *fakeNotificationsRepo) List(ctx context.Context, params listNotificationsParams) ([]models.Notification, *pagination.Cursor, error) {
	f.lastList = params
	return f.rows, f.next, f.err
}

func (f *fakeNotificationsRepo) MarkRead(ctx context.Context, kind enums.RecipientKind, recipientID, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error) {
	return f.markResult, f.err
}

func (f *fakeNotificationsRepo) MarkAllRead(ctx context.Context, kind enums.RecipientKind, recipientID uuid.UUID, now time.Time) (int64, error) {
	return f.markAll, f.err
}

func (f *fakeNotificationsRepo) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	return 0, f.err
}

func TestListRejectsMissingRecipient(t *testing.T) {
	svc, err := NewService(&fakeNotificationsRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.List(context.Background(), ListParams{RecipientKind: enums.RecipientKindUser})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListEncodesNextCursor(t *testing.T) {
	next := &pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	repo := &fakeNotificationsRepo{
		rows: []models.Notification{{ID: uuid.New()}},
		next: next,
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.List(context.Background(), ListParams{
		RecipientKind: enums.RecipientKindUser,
		RecipientID:   uuid.New(),
		Limit:         10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected one row, got %d", len(result.Items))
	}
	if result.Cursor == "" {
		t.Fatalf("expected encoded cursor")
	}
	parsed, err := pagination.ParseCursor(result.Cursor)
	if err != nil {
		t.Fatalf("ParseCursor: %v", err)
	}
	if parsed.ID != next.ID {
		t.Fatalf("cursor id mismatch: %s vs %s", parsed.ID, next.ID)
	}
}

func TestListRejectsMalformedCursor(t *testing.T) {
	svc, err := NewService(&fakeNotificationsRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.List(context.Background(), ListParams{
		RecipientKind: enums.RecipientKindUser,
		RecipientID:   uuid.New(),
		Cursor:        "not-a-cursor",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMarkReadReturnsNotFound(t *testing.T) {
	repo := &fakeNotificationsRepo{markResult: notificationMarkResult{Found: false}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	err = svc.MarkRead(context.Background(), enums.RecipientKindUser, uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkReadSucceedsForOwnedNotification(t *testing.T) {
	repo := &fakeNotificationsRepo{markResult: notificationMarkResult{Found: true, Updated: true}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.MarkRead(context.Background(), enums.RecipientKindUser, uuid.New(), uuid.New()); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
}

func TestMarkAllReadReturnsCount(t *testing.T) {
	repo := &fakeNotificationsRepo{markAll: 4}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	count, err := svc.MarkAllRead(context.Background(), enums.RecipientKindSupplier, uuid.New())
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 rows updated, got %d", count)
	}
}

func TestNotifySpecChangeCreatesSupplierNotification(t *testing.T) {
	repo := &fakeNotificationsRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	supplierID := uuid.New()
	itemID := uuid.New()
	boardID := uuid.New()
	if err := svc.NotifySpecChange(context.Background(), supplierID, itemID, &boardID, "Walnut credenza", 3); err != nil {
		t.Fatalf("NotifySpecChange: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(repo.created))
	}
	created := repo.created[0]
	if created.RecipientKind != enums.RecipientKindSupplier {
		t.Fatalf("unexpected recipient kind %s", created.RecipientKind)
	}
	if created.RecipientID != supplierID {
		t.Fatalf("unexpected recipient %s", created.RecipientID)
	}
	if created.Type != enums.NotificationTypeSpecChanged {
		t.Fatalf("unexpected type %s", created.Type)
	}
	if created.ItemID == nil || *created.ItemID != itemID {
		t.Fatalf("item id not carried")
	}
}

func TestNotifySpecChangeWrapsRepoError(t *testing.T) {
	repo := &fakeNotificationsRepo{err: errors.New("connection reset")}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	err = svc.NotifySpecChange(context.Background(), uuid.New(), uuid.New(), nil, "Chair", 2)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
