package items

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db"
	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/metrics"
	"github.com/svaldeco/atelierq-backend/pkg/outbox"
	"github.com/svaldeco/atelierq-backend/pkg/outbox/payloads"
	"github.com/svaldeco/atelierq-backend/pkg/pagination"
)

// Service exposes item creation, lookup, and the update pipeline.
type Service interface {
	CreateItem(ctx context.Context, editor Editor, input CreateItemInput) (*models.Item, error)
	GetItemForUser(ctx context.Context, itemID uuid.UUID, editor Editor) (*models.Item, error)
	ListBoardItems(ctx context.Context, boardID uuid.UUID, editor Editor, limit int, cursor *pagination.Cursor) ([]models.Item, *pagination.Cursor, error)
	ListItemEdits(ctx context.Context, itemID uuid.UUID, editor Editor, limit int) ([]models.ItemEditRecord, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, editor Editor, payload map[string]any) (*UpdateResult, error)
}

type boardLoader interface {
	FindByID(ctx context.Context, boardID uuid.UUID) (*models.Board, error)
}

type rfqCollaborator interface {
	FindRoutes(ctx context.Context, itemID uuid.UUID) ([]models.RfqRoute, error)
	FindSubmittedBids(ctx context.Context, itemID uuid.UUID) ([]models.Bid, error)
	MarkBidsStale(ctx context.Context, tx *gorm.DB, bidIDs []uuid.UUID) (int64, error)
}

type supplierNotifier interface {
	NotifySpecChange(ctx context.Context, supplierID, itemID uuid.UUID, boardID *uuid.UUID, itemTitle string, revision int) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo          Repository
	dbClient      *db.Client
	validator     *Validator
	normalizer    *Normalizer
	boards        boardLoader
	rfq           rfqCollaborator
	notifier      supplierNotifier
	events        eventEmitter
	logg          *logger.Logger
	metrics       *metrics.UpdatePipelineMetrics
	notifyTimeout time.Duration
}

// NewService constructs the items service.
func NewService(
	repo Repository,
	dbClient *db.Client,
	validator *Validator,
	normalizer *Normalizer,
	boards boardLoader,
	rfq rfqCollaborator,
	notifier supplierNotifier,
	events eventEmitter,
	logg *logger.Logger,
	pipelineMetrics *metrics.UpdatePipelineMetrics,
	notifyTimeout time.Duration,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("items repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if validator == nil {
		return nil, fmt.Errorf("validator required")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("normalizer required")
	}
	if boards == nil {
		return nil, fmt.Errorf("board loader required")
	}
	if rfq == nil {
		return nil, fmt.Errorf("rfq collaborator required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("supplier notifier required")
	}
	if events == nil {
		return nil, fmt.Errorf("event emitter required")
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 2 * time.Second
	}
	return &service{
		repo:          repo,
		dbClient:      dbClient,
		validator:     validator,
		normalizer:    normalizer,
		boards:        boards,
		rfq:           rfq,
		notifier:      notifier,
		events:        events,
		logg:          logg,
		metrics:       pipelineMetrics,
		notifyTimeout: notifyTimeout,
	}, nil
}

// CreateItem inserts a new item on a board owned by the editor.
func (s *service) CreateItem(ctx context.Context, editor Editor, input CreateItemInput) (*models.Item, error) {
	itemType, err := enums.ParseItemType(input.ItemType)
	if err != nil {
		return nil, invalidEnum(FieldItemType, enums.ItemTypeValues())
	}
	status := enums.ItemStatusActive
	if input.Status != "" {
		status, err = enums.ParseItemStatus(input.Status)
		if err != nil {
			return nil, invalidEnum(FieldStatus, enums.ItemStatusValues())
		}
	}
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	board, err := s.boardForEditor(ctx, input.BoardID, editor)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		BoardID:     input.BoardID,
		OwnerUserID: board.OwnerUserID,
		Title:       input.Title,
		Description: input.Description,
		ItemType:    itemType,
		Status:      status,
		Quantity:    input.Quantity,
		Tags:        input.Tags,
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventItemCreated,
			AggregateType: enums.AggregateItem,
			AggregateID:   item.ID,
			Actor:         &outbox.ActorRef{UserID: editor.UserID, Role: editor.Role.String()},
			Data: payloads.ItemCreatedEvent{
				ItemID:   item.ID,
				BoardID:  item.BoardID,
				Title:    item.Title,
				ItemType: item.ItemType,
			},
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return item, nil
}

// GetItemForUser loads an item and enforces ownership unless the editor is
// an admin.
func (s *service) GetItemForUser(ctx context.Context, itemID uuid.UUID, editor Editor) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}
	if !editor.IsAdmin && item.OwnerUserID != editor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "item belongs to another user")
	}
	return item, nil
}

func (s *service) ListBoardItems(ctx context.Context, boardID uuid.UUID, editor Editor, limit int, cursor *pagination.Cursor) ([]models.Item, *pagination.Cursor, error) {
	if _, err := s.boardForEditor(ctx, boardID, editor); err != nil {
		return nil, nil, err
	}
	items, next, err := s.repo.ListByBoard(ctx, boardID, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	return items, next, nil
}

// boardForEditor loads a board and enforces ownership unless the editor is
// an admin.
func (s *service) boardForEditor(ctx context.Context, boardID uuid.UUID, editor Editor) (*models.Board, error) {
	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "board not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load board")
	}
	if !editor.IsAdmin && board.OwnerUserID != editor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "board belongs to another user")
	}
	return board, nil
}

func (s *service) ListItemEdits(ctx context.Context, itemID uuid.UUID, editor Editor, limit int) ([]models.ItemEditRecord, error) {
	if _, err := s.GetItemForUser(ctx, itemID, editor); err != nil {
		return nil, err
	}
	records, err := s.repo.ListEditRecords(ctx, itemID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list edit records")
	}
	return records, nil
}

// UpdateItem runs the full update pipeline: whitelist validation, dimension
// normalization, volume recalculation, timeline assignment, revision
// evaluation, and a single atomic commit of the item row, its audit rows,
// and the domain events. Supplier fan-out happens after the commit.
func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, editor Editor, payload map[string]any) (*UpdateResult, error) {
	started := time.Now()
	patch, err := s.validator.ParsePatch(payload)
	if err != nil {
		s.metrics.ObserveUpdate("rejected", time.Since(started))
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithItemID(ctx, itemID.String())
	}

	var result *UpdateResult
	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		item, err := txRepo.FindByIDForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock item")
		}
		if !editor.IsAdmin && item.OwnerUserID != editor.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "item belongs to another user")
		}

		snapshot := captureSnapshot(item)

		var norm *NormalizeResult
		if patch.TouchesDimensions() {
			norm, err = s.normalizer.Normalize(item, patch)
			if err != nil {
				return err
			}
		}

		changes := &changeSet{}
		applyDescriptive(item, patch, changes)
		if norm != nil {
			applyDimensions(item, norm, changes)
		}

		timelineAssigned, err := s.assignTimeline(ctx, item, patch, changes)
		if err != nil {
			return err
		}

		if changes.empty() {
			result = &UpdateResult{Item: item, NoChanges: true, Revision: item.RfqRevision()}
			return nil
		}

		routes, err := s.rfq.FindRoutes(ctx, itemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load rfq routes")
		}
		bids, err := s.rfq.FindSubmittedBids(ctx, itemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load bids")
		}
		decision := EvaluateRevision(item, changes.columns(), routes, bids)
		if decision.Increment {
			item.SetRfqRevision(decision.NewRevision)
		}

		item.Version++
		item.UpdatedAt = time.Now().UTC()
		if err := txRepo.Save(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save item")
		}
		records := changes.auditRecords(item, editor)
		if err := txRepo.InsertEditRecords(ctx, records); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert edit records")
		}
		if decision.Increment && len(decision.StaleBidIDs) > 0 {
			if _, err := s.rfq.MarkBidsStale(ctx, tx, decision.StaleBidIDs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark bids stale")
			}
		}

		eventNames, err := s.emitUpdateEvents(ctx, tx, item, editor, changes, norm, snapshot, timelineAssigned, decision)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit events")
		}

		result = &UpdateResult{
			Item:                item,
			EditRecords:         records,
			Events:              eventNames,
			Revision:            item.RfqRevision(),
			RevisionIncremented: decision.Increment,
			StaleBidIDs:         decision.StaleBidIDs,
		}
		if decision.Increment {
			result.NotifiedSupplierIDs = decision.SupplierIDs
		}
		return nil
	})
	if txErr != nil {
		s.metrics.ObserveUpdate("rejected", time.Since(started))
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "update item")
	}

	if result.NoChanges {
		s.metrics.ObserveUpdate("no_changes", time.Since(started))
	} else {
		s.metrics.ObserveUpdate("committed", time.Since(started))
	}
	if result.RevisionIncremented {
		s.metrics.IncRevision()
		s.metrics.AddStaleBids(len(result.StaleBidIDs))
	}

	if result.RevisionIncremented && len(result.NotifiedSupplierIDs) > 0 {
		result.NotifiedSupplierIDs = s.fanOutSpecChange(ctx, result)
	}
	return result, nil
}

// assignTimeline classifies and generates the step plan the first time an
// item gains a category while having no structure. Existing structures are
// never regenerated.
func (s *service) assignTimeline(ctx context.Context, item *models.Item, patch *UpdatePatch, changes *changeSet) (bool, error) {
	if item.TimelineStructure != nil {
		return false, nil
	}
	if patch.ProductCategory.IsUnset() && patch.SourcingType.IsUnset() {
		return false, nil
	}

	category := ""
	if item.ProductCategory != nil {
		category = *item.ProductCategory
	}
	fallback := ""
	if category == "" {
		board, err := s.boards.FindByID(ctx, item.BoardID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load board")
		}
		if board != nil && board.SourcingCategory != nil {
			fallback = *board.SourcingCategory
		}
	}
	if category == "" && fallback == "" {
		return false, nil
	}

	timelineType := ClassifyTimeline(category, fallback)
	assignedBy := category
	if assignedBy == "" {
		assignedBy = fallback
	}
	structure := GenerateTimeline(timelineType, assignedBy, time.Now())

	changes.record(ColumnTimelineType, timelineTypeStr(item.TimelineType), strPtr(timelineType.String()))
	changes.record(ColumnTimelineStructure, nil, strPtr(timelineType.String()+" structure"))
	item.TimelineType = &timelineType
	item.TimelineStructure = &structure
	return true, nil
}

// itemSnapshot captures the pre-change values the event payloads compare
// against.
type itemSnapshot struct {
	Unit         *enums.DimensionUnit
	CBM          *float64
	SourcingType *enums.SourcingType
	Revision     int
}

func captureSnapshot(item *models.Item) itemSnapshot {
	snap := itemSnapshot{Revision: item.RfqRevision()}
	if item.DimensionUnitsOriginal != nil {
		unit := *item.DimensionUnitsOriginal
		snap.Unit = &unit
	}
	if item.CBM != nil {
		cbm := *item.CBM
		snap.CBM = &cbm
	}
	if item.SourcingType != nil {
		sourcing := *item.SourcingType
		snap.SourcingType = &sourcing
	}
	return snap
}

// emitUpdateEvents writes the ordered domain events for a committed update:
// intelligence changes first, then the generic field change, then delivery
// and revision bookkeeping.
func (s *service) emitUpdateEvents(
	ctx context.Context,
	tx *gorm.DB,
	item *models.Item,
	editor Editor,
	changes *changeSet,
	norm *NormalizeResult,
	snapshot itemSnapshot,
	timelineAssigned bool,
	decision RevisionDecision,
) ([]string, error) {
	actor := &outbox.ActorRef{UserID: editor.UserID, Role: editor.Role.String()}
	var names []string
	emit := func(eventType enums.OutboxEventType, data any) error {
		err := s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     eventType,
			AggregateType: enums.AggregateItem,
			AggregateID:   item.ID,
			Actor:         actor,
			Data:          data,
		})
		if err != nil {
			return err
		}
		names = append(names, string(eventType))
		return nil
	}

	if norm != nil && norm.DimensionChanged {
		var axes []payloads.AxisChange
		for _, axis := range []struct {
			name   string
			result AxisResult
		}{
			{AxisWidth, norm.Width},
			{AxisDepth, norm.Depth},
			{AxisHeight, norm.Height},
		} {
			if axis.result.Changed {
				axes = append(axes, payloads.AxisChange{Axis: axis.name, Original: axis.result.Original, CM: axis.result.CM})
			}
		}
		if err := emit(enums.EventItemDimensionChanged, payloads.ItemDimensionChangedEvent{ItemID: item.ID, Axes: axes}); err != nil {
			return nil, err
		}
	}
	if norm != nil && norm.UnitNormalized {
		event := payloads.ItemUnitNormalizedEvent{
			ItemID:       item.ID,
			Unit:         item.DimensionUnitsOriginal,
			PreviousUnit: snapshot.Unit,
			Defaulted:    norm.UnitDefaulted,
		}
		if err := emit(enums.EventItemUnitNormalized, event); err != nil {
			return nil, err
		}
	}
	if changes.contains(ColumnCBM) {
		event := payloads.ItemCBMRecalculatedEvent{ItemID: item.ID, CBM: item.CBM, PreviousCBM: snapshot.CBM}
		if err := emit(enums.EventItemCBMRecalculated, event); err != nil {
			return nil, err
		}
	}
	if changes.contains(ColumnSourcingType) {
		eventType := enums.EventItemSourcingTypeChanged
		if snapshot.SourcingType == nil {
			eventType = enums.EventItemSourcingTypeSet
		}
		event := payloads.ItemSourcingTypeEvent{ItemID: item.ID, SourcingType: item.SourcingType, Previous: snapshot.SourcingType}
		if err := emit(eventType, event); err != nil {
			return nil, err
		}
	}
	if timelineAssigned && item.TimelineType != nil && item.TimelineStructure != nil {
		derived := payloads.ItemTimelineTypeDerivedEvent{
			ItemID:             item.ID,
			TimelineType:       *item.TimelineType,
			AssignedByCategory: item.TimelineStructure.AssignedByCategory,
			StepCount:          len(item.TimelineStructure.Steps),
		}
		if err := emit(enums.EventItemTimelineTypeDerived, derived); err != nil {
			return nil, err
		}
		if err := emit(enums.EventItemTimelineStructureAssigned, derived); err != nil {
			return nil, err
		}
	}

	var plainFields []string
	for _, column := range changes.columns() {
		if !isIntelligenceColumn(column) {
			plainFields = append(plainFields, column)
		}
	}
	if len(plainFields) > 0 {
		event := payloads.ItemFieldChangedEvent{ItemID: item.ID, Fields: plainFields}
		if err := emit(enums.EventItemFieldChanged, event); err != nil {
			return nil, err
		}
	}

	if reasons := deliveryRecalcReasons(changes); len(reasons) > 0 {
		event := payloads.ItemDeliveryRecalcRequestedEvent{ItemID: item.ID, BoardID: item.BoardID, Reason: reasons}
		if err := emit(enums.EventItemDeliveryRecalcRequested, event); err != nil {
			return nil, err
		}
	}

	if decision.Increment {
		event := payloads.ItemRevisionIncrementedEvent{ItemID: item.ID, Revision: decision.NewRevision, OldRevision: snapshot.Revision}
		if err := emit(enums.EventItemRevisionIncremented, event); err != nil {
			return nil, err
		}
		if len(decision.StaleBidIDs) > 0 {
			stale := payloads.ItemBidsMarkedStaleEvent{ItemID: item.ID, Revision: decision.NewRevision, BidIDs: decision.StaleBidIDs}
			if err := emit(enums.EventItemBidsMarkedStale, stale); err != nil {
				return nil, err
			}
		}
	}
	return names, nil
}

// deliveryRecalcReasons lists the changed columns that require a new
// delivery cost estimate.
func deliveryRecalcReasons(changes *changeSet) []string {
	var reasons []string
	for _, column := range changes.columns() {
		switch column {
		case ColumnQuantity, ColumnDeliveryAddress,
			ColumnDimensionWidthCM, ColumnDimensionDepthCM, ColumnDimensionHeightCM:
			reasons = append(reasons, column)
		}
	}
	return reasons
}

// fanOutSpecChange tells every affected supplier that specifications moved.
// Each delivery is bounded by its own timeout; failures are logged and
// skipped so one slow sink cannot block the update result.
func (s *service) fanOutSpecChange(ctx context.Context, result *UpdateResult) []uuid.UUID {
	item := result.Item
	boardID := item.BoardID

	var mu sync.Mutex
	var delivered []uuid.UUID
	var errs error

	var wg sync.WaitGroup
	for _, supplierID := range result.NotifiedSupplierIDs {
		wg.Add(1)
		go func(supplierID uuid.UUID) {
			defer wg.Done()
			notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
			defer cancel()
			err := s.notifier.NotifySpecChange(notifyCtx, supplierID, item.ID, &boardID, item.Title, result.Revision)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("supplier %s: %w", supplierID, err))
				return
			}
			delivered = append(delivered, supplierID)
		}(supplierID)
	}
	wg.Wait()

	if errs != nil && s.logg != nil {
		s.logg.Error(ctx, "supplier spec-change fan-out incomplete", errs)
	}
	return delivered
}
