package boards

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
)

// Repository exposes persistence helpers for boards.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, board *models.Board) error
	FindByID(ctx context.Context, boardID uuid.UUID) (*models.Board, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID, limit int) ([]models.Board, error)
	Save(ctx context.Context, board *models.Board) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a boards repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, boardID uuid.UUID) (*models.Board, error) {
	var board models.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", boardID).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *repositoryImpl) ListByOwner(ctx context.Context, ownerUserID uuid.UUID, limit int) ([]models.Board, error) {
	if limit <= 0 {
		limit = 50
	}
	var boards []models.Board
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").
		Limit(limit).
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *repositoryImpl) Save(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}
