package delivery

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/internal/repo"
	"github.com/svaldeco/atelierq-backend/pkg/db/models"
)

// MetadataKeyEstimateCents is the item metadata entry the estimator owns.
const MetadataKeyEstimateCents = "delivery_estimate_cents"

// Repository persists delivery estimates onto item metadata.
type Repository interface {
	UpdateEstimate(ctx context.Context, itemID uuid.UUID, cents int64) error
	ClearEstimate(ctx context.Context, itemID uuid.UUID) error
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a delivery repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) UpdateEstimate(ctx context.Context, itemID uuid.UUID, cents int64) error {
	return r.DB(ctx).
		Model(&models.Item{}).
		Where("id = ?", itemID).
		UpdateColumn("metadata", gorm.Expr(
			"jsonb_set(metadata, '{"+MetadataKeyEstimateCents+"}', to_jsonb(?::bigint), true)", cents)).Error
}

func (r *repositoryImpl) ClearEstimate(ctx context.Context, itemID uuid.UUID) error {
	return r.DB(ctx).
		Model(&models.Item{}).
		Where("id = ?", itemID).
		UpdateColumn("metadata", gorm.Expr("metadata - '"+MetadataKeyEstimateCents+"'")).Error
}
