package items

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/pagination"
)

// Repository exposes persistence helpers for items and their audit trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.Item) error
	FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
	// FindByIDForUpdate takes a row lock so concurrent updates to the same
	// item serialize instead of overwriting each other.
	FindByIDForUpdate(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
	Save(ctx context.Context, item *models.Item) error
	ListByBoard(ctx context.Context, boardID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Item, *pagination.Cursor, error)
	InsertEditRecords(ctx context.Context, records []models.ItemEditRecord) error
	ListEditRecords(ctx context.Context, itemID uuid.UUID, limit int) ([]models.ItemEditRecord, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an items repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) FindByIDForUpdate(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repositoryImpl) ListByBoard(ctx context.Context, boardID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Item, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)
	query := r.db.WithContext(ctx).Model(&models.Item{}).Where("board_id = ?", boardID)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var items []models.Item
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&items).Error; err != nil {
		return nil, nil, err
	}

	if len(items) > normalized {
		next := items[normalized]
		items = items[:normalized]
		return items, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return items, nil, nil
}

func (r *repositoryImpl) InsertEditRecords(ctx context.Context, records []models.ItemEditRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *repositoryImpl) ListEditRecords(ctx context.Context, itemID uuid.UUID, limit int) ([]models.ItemEditRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var records []models.ItemEditRecord
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
