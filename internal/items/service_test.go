package items

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db"
	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
	"github.com/svaldeco/atelierq-backend/pkg/outbox"
	"github.com/svaldeco/atelierq-backend/pkg/pagination"
)

type fakeRepo struct {
	item      *models.Item
	records   []models.ItemEditRecord
	saveCount int
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, item *models.Item) error {
	item.ID = uuid.New()
	f.item = item
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	if f.item == nil || f.item.ID != itemID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.item, nil
}

func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	return f.FindByID(ctx, itemID)
}

func (f *fakeRepo) Save(ctx context.Context, item *models.Item) error {
	f.saveCount++
	f.item = item
	return nil
}

func (f *fakeRepo) ListByBoard(ctx context.Context, boardID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Item, *pagination.Cursor, error) {
	if f.item != nil && f.item.BoardID == boardID {
		return []models.Item{*f.item}, nil, nil
	}
	return nil, nil, nil
}

func (f *fakeRepo) InsertEditRecords(ctx context.Context, records []models.ItemEditRecord) error {
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeRepo) ListEditRecords(ctx context.Context, itemID uuid.UUID, limit int) ([]models.ItemEditRecord, error) {
	return f.records, nil
}

type fakeBoards struct {
	board *models.Board
}

func (f *fakeBoards) FindByID(ctx context.Context, boardID uuid.UUID) (*models.Board, error) {
	if f.board == nil || f.board.ID != boardID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.board, nil
}

type fakeRfq struct {
	routes   []models.RfqRoute
	bids     []models.Bid
	staleIDs []uuid.UUID
}

func (f *fakeRfq) FindRoutes(ctx context.Context, itemID uuid.UUID) ([]models.RfqRoute, error) {
	return f.routes, nil
}

func (f *fakeRfq) FindSubmittedBids(ctx context.Context, itemID uuid.UUID) ([]models.Bid, error) {
	return f.bids, nil
}

func (f *fakeRfq) MarkBidsStale(ctx context.Context, tx *gorm.DB, bidIDs []uuid.UUID) (int64, error) {
	f.staleIDs = append(f.staleIDs, bidIDs...)
	return int64(len(bidIDs)), nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	suppliers []uuid.UUID
	err       error
}

func (f *fakeNotifier) NotifySpecChange(ctx context.Context, supplierID, itemID uuid.UUID, boardID *uuid.UUID, itemTitle string, revision int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.suppliers = append(f.suppliers, supplierID)
	return nil
}

type fakeEmitter struct {
	events []outbox.DomainEvent
}

func (f *fakeEmitter) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	f.events = append(f.events, event)
	return nil
}

type serviceFixture struct {
	svc      Service
	repo     *fakeRepo
	boards   *fakeBoards
	rfq      *fakeRfq
	notifier *fakeNotifier
	emitter  *fakeEmitter
	editor   Editor
	item     *models.Item
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	client, err := db.NewSQLite(context.Background(), "file::memory:", nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	owner := uuid.New()
	board := &models.Board{ID: uuid.New(), OwnerUserID: owner, Name: "Lobby"}
	item := &models.Item{
		ID:          uuid.New(),
		BoardID:     board.ID,
		OwnerUserID: owner,
		Title:       "Walnut Credenza",
		ItemType:    enums.ItemTypeFurniture,
		Status:      enums.ItemStatusActive,
		Quantity:    1,
		Version:     1,
	}

	repo := &fakeRepo{item: item}
	boards := &fakeBoards{board: board}
	rfqFake := &fakeRfq{}
	notifier := &fakeNotifier{}
	emitter := &fakeEmitter{}

	svc, err := NewService(
		repo,
		client,
		NewValidator(DefaultWhitelist()),
		NewNormalizer(5000),
		boards,
		rfqFake,
		notifier,
		emitter,
		nil,
		nil,
		50*time.Millisecond,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	return &serviceFixture{
		svc:      svc,
		repo:     repo,
		boards:   boards,
		rfq:      rfqFake,
		notifier: notifier,
		emitter:  emitter,
		editor:   Editor{UserID: owner, Role: enums.EditorRoleUser},
		item:     item,
	}
}

func eventNames(events []outbox.DomainEvent) []string {
	names := make([]string, len(events))
	for i, event := range events {
		names[i] = string(event.EventType)
	}
	return names
}

func hasEvent(names []string, want enums.OutboxEventType) bool {
	for _, name := range names {
		if name == string(want) {
			return true
		}
	}
	return false
}

func TestUpdateItemFirstDimension(t *testing.T) {
	fx := newServiceFixture(t)

	result, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"dimension_width":          "100",
		"dimension_units_original": "mm",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := result.Item
	if item.DimensionWidthCM == nil || *item.DimensionWidthCM != 10 {
		t.Fatalf("expected width 10cm, got %v", item.DimensionWidthCM)
	}
	if item.DimensionWidthOriginal == nil || *item.DimensionWidthOriginal != 100 {
		t.Fatalf("expected original 100, got %v", item.DimensionWidthOriginal)
	}
	if item.DimensionUnitsOriginal == nil || *item.DimensionUnitsOriginal != enums.DimensionUnitMillimeter {
		t.Fatalf("expected mm unit, got %v", item.DimensionUnitsOriginal)
	}
	if item.CBM != nil {
		t.Fatal("cbm must stay null with incomplete axes")
	}
	if item.Version != 2 {
		t.Fatalf("expected version 2, got %d", item.Version)
	}
	if len(result.EditRecords) == 0 {
		t.Fatal("expected audit rows")
	}

	names := eventNames(fx.emitter.events)
	if !hasEvent(names, enums.EventItemDimensionChanged) || !hasEvent(names, enums.EventItemUnitNormalized) {
		t.Fatalf("expected dimension and unit events, got %v", names)
	}
	if hasEvent(names, enums.EventItemRevisionIncremented) {
		t.Fatalf("no active rfq, revision must not move: %v", names)
	}
}

func TestUpdateItemExplicitClearForcesCBMNull(t *testing.T) {
	fx := newServiceFixture(t)
	fx.item.DimensionWidthOriginal = f(50)
	fx.item.DimensionDepthOriginal = f(40)
	fx.item.DimensionHeightOriginal = f(30)
	fx.item.DimensionUnitsOriginal = unitPtr(enums.DimensionUnitCentimeter)
	fx.item.DimensionWidthCM = f(50)
	fx.item.DimensionDepthCM = f(40)
	fx.item.DimensionHeightCM = f(30)
	fx.item.CBM = f(0.06)

	result, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"dimension_height": "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := result.Item
	if item.DimensionHeightCM != nil || item.DimensionHeightOriginal != nil {
		t.Fatal("expected height cleared")
	}
	if item.CBM != nil {
		t.Fatal("expected cbm null after clearing an axis")
	}
	if len(result.EditRecords) != 3 {
		t.Fatalf("expected 3 audit rows (height pair + cbm), got %d", len(result.EditRecords))
	}

	names := eventNames(fx.emitter.events)
	if !hasEvent(names, enums.EventItemDimensionChanged) || !hasEvent(names, enums.EventItemCBMRecalculated) {
		t.Fatalf("expected dimension and cbm events, got %v", names)
	}
	if hasEvent(names, enums.EventItemUnitNormalized) {
		t.Fatalf("clear under stable unit must not emit unit event: %v", names)
	}
}

func TestUpdateItemIncrementsRevisionAndFlagsBids(t *testing.T) {
	fx := newServiceFixture(t)
	supplier := uuid.New()
	bid := models.Bid{ID: uuid.New(), ItemID: fx.item.ID, SupplierID: supplier, Status: enums.BidStatusSubmitted, RevisionAtSubmit: intp(1)}
	fx.rfq.routes = []models.RfqRoute{{ID: uuid.New(), ItemID: fx.item.ID, SupplierID: supplier, Status: enums.RfqRouteStatusSent}}
	fx.rfq.bids = []models.Bid{bid}

	result, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"dimension_width": "120",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.RevisionIncremented || result.Revision != 2 {
		t.Fatalf("expected revision 2, got %+v", result)
	}
	if result.Item.RfqRevision() != 2 {
		t.Fatalf("expected stored revision 2, got %d", result.Item.RfqRevision())
	}
	if len(fx.rfq.staleIDs) != 1 || fx.rfq.staleIDs[0] != bid.ID {
		t.Fatalf("expected bid flagged stale, got %v", fx.rfq.staleIDs)
	}
	if len(result.NotifiedSupplierIDs) != 1 || result.NotifiedSupplierIDs[0] != supplier {
		t.Fatalf("expected one notified supplier, got %v", result.NotifiedSupplierIDs)
	}
	if len(fx.notifier.suppliers) != 1 {
		t.Fatalf("expected one notification, got %v", fx.notifier.suppliers)
	}

	names := eventNames(fx.emitter.events)
	if !hasEvent(names, enums.EventItemRevisionIncremented) || !hasEvent(names, enums.EventItemBidsMarkedStale) {
		t.Fatalf("expected revision events, got %v", names)
	}
}

func TestUpdateItemTitleUnderActiveRfqKeepsRevision(t *testing.T) {
	fx := newServiceFixture(t)
	fx.rfq.routes = []models.RfqRoute{{ID: uuid.New(), ItemID: fx.item.ID, SupplierID: uuid.New(), Status: enums.RfqRouteStatusViewed}}

	result, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"title": "Renamed Credenza",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RevisionIncremented || result.Revision != 1 {
		t.Fatalf("title change must not bump revision, got %+v", result)
	}
	if len(fx.notifier.suppliers) != 0 {
		t.Fatal("no supplier notification expected")
	}
}

func TestUpdateItemAssignsTimeline(t *testing.T) {
	fx := newServiceFixture(t)

	result, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"product_category": "Outdoor Dining Sets",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := result.Item
	if item.TimelineType == nil || *item.TimelineType != enums.TimelineTypeSixStepFurniture {
		t.Fatalf("expected 6step_furniture, got %v", item.TimelineType)
	}
	if item.TimelineStructure == nil || len(item.TimelineStructure.Steps) != 6 {
		t.Fatalf("expected 6 generated steps, got %+v", item.TimelineStructure)
	}
	if item.TimelineStructure.Steps[0].IsLocked {
		t.Fatal("step 1 must be unlocked")
	}

	names := eventNames(fx.emitter.events)
	if !hasEvent(names, enums.EventItemTimelineTypeDerived) {
		t.Fatalf("expected timeline event, got %v", names)
	}
}

func TestUpdateItemNeverRegeneratesTimeline(t *testing.T) {
	fx := newServiceFixture(t)
	existing := GenerateTimeline(enums.TimelineTypeFourStepSourcing, "Lighting", time.Now())
	timelineType := enums.TimelineTypeFourStepSourcing
	fx.item.TimelineType = &timelineType
	fx.item.TimelineStructure = &existing

	result, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"product_category": "Outdoor Dining Sets",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *result.Item.TimelineType != enums.TimelineTypeFourStepSourcing {
		t.Fatal("existing timeline must never be regenerated")
	}
	if len(result.Item.TimelineStructure.Steps) != 4 {
		t.Fatal("existing structure must be untouched")
	}
}

func TestUpdateItemUnknownFieldLeavesItemUntouched(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"foo": "bar",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnknownField {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if fx.item.Version != 1 {
		t.Fatalf("version must be unchanged, got %d", fx.item.Version)
	}
	if fx.repo.saveCount != 0 {
		t.Fatal("nothing may be persisted on rejection")
	}
	if len(fx.emitter.events) != 0 {
		t.Fatal("no events may be emitted on rejection")
	}
}

func TestUpdateItemNoOpShortCircuits(t *testing.T) {
	fx := newServiceFixture(t)

	result, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"title":    "Walnut Credenza",
		"quantity": 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NoChanges {
		t.Fatal("expected no-op result")
	}
	if result.Item.Version != 1 {
		t.Fatalf("version must not bump, got %d", result.Item.Version)
	}
	if len(result.EditRecords) != 0 || len(fx.emitter.events) != 0 {
		t.Fatal("no audit rows or events on a no-op")
	}
	if fx.repo.saveCount != 0 {
		t.Fatal("no save on a no-op")
	}
}

func TestUpdateItemOwnership(t *testing.T) {
	fx := newServiceFixture(t)
	stranger := Editor{UserID: uuid.New(), Role: enums.EditorRoleUser}

	_, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, stranger, map[string]any{"title": "Steal"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	admin := Editor{UserID: uuid.New(), Role: enums.EditorRoleAdmin, IsAdmin: true}
	if _, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, admin, map[string]any{"title": "Renovated"}); err != nil {
		t.Fatalf("admin edit must succeed, got %v", err)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	fx := newServiceFixture(t)
	_, err := fx.svc.UpdateItem(context.Background(), uuid.New(), fx.editor, map[string]any{"title": "x"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListBoardItemsEnforcesBoardOwnership(t *testing.T) {
	fx := newServiceFixture(t)
	stranger := Editor{UserID: uuid.New(), Role: enums.EditorRoleUser}

	_, _, err := fx.svc.ListBoardItems(context.Background(), fx.item.BoardID, stranger, 0, nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	page, _, err := fx.svc.ListBoardItems(context.Background(), fx.item.BoardID, fx.editor, 0, nil)
	if err != nil {
		t.Fatalf("owner list must succeed, got %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected one item, got %d", len(page))
	}

	admin := Editor{UserID: uuid.New(), Role: enums.EditorRoleAdmin, IsAdmin: true}
	if _, _, err := fx.svc.ListBoardItems(context.Background(), fx.item.BoardID, admin, 0, nil); err != nil {
		t.Fatalf("admin list must succeed, got %v", err)
	}

	_, _, err = fx.svc.ListBoardItems(context.Background(), uuid.New(), fx.editor, 0, nil)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown board, got %v", err)
	}
}

func TestUpdateItemNotificationFailureDoesNotFailUpdate(t *testing.T) {
	fx := newServiceFixture(t)
	fx.notifier.err = errors.New("smtp down")
	supplier := uuid.New()
	fx.rfq.routes = []models.RfqRoute{{ID: uuid.New(), ItemID: fx.item.ID, SupplierID: supplier, Status: enums.RfqRouteStatusQueued}}

	result, err := fx.svc.UpdateItem(context.Background(), fx.item.ID, fx.editor, map[string]any{
		"quantity": 5,
	})
	if err != nil {
		t.Fatalf("update must survive notification failure, got %v", err)
	}
	if !result.RevisionIncremented {
		t.Fatal("expected revision increment")
	}
	if len(result.NotifiedSupplierIDs) != 0 {
		t.Fatalf("failed deliveries must not be reported, got %v", result.NotifiedSupplierIDs)
	}
}

func TestCreateItemEmitsEvent(t *testing.T) {
	fx := newServiceFixture(t)

	item, err := fx.svc.CreateItem(context.Background(), fx.editor, CreateItemInput{
		BoardID:  fx.boards.board.ID,
		Title:    "Brass Sconce",
		ItemType: "fixture",
		Quantity: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Status != enums.ItemStatusActive {
		t.Fatalf("expected active default, got %s", item.Status)
	}
	names := eventNames(fx.emitter.events)
	if !hasEvent(names, enums.EventItemCreated) {
		t.Fatalf("expected item_created event, got %v", names)
	}
}
