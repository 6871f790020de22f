package rfq

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// Repository exposes persistence helpers for RFQ routes and bids.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateRoute(ctx context.Context, route *models.RfqRoute) error
	FindRoutes(ctx context.Context, itemID uuid.UUID) ([]models.RfqRoute, error)
	FindRouteByID(ctx context.Context, routeID uuid.UUID) (*models.RfqRoute, error)
	UpdateRouteStatus(ctx context.Context, routeID uuid.UUID, status enums.RfqRouteStatus) error
	CreateBid(ctx context.Context, bid *models.Bid) error
	FindSubmittedBids(ctx context.Context, itemID uuid.UUID) ([]models.Bid, error)
	FindBidsByIDs(ctx context.Context, bidIDs []uuid.UUID) ([]models.Bid, error)
	// MarkBidsStale flags bids for re-submission and clears their recorded
	// revision. Runs inside the caller's transaction so staleness commits
	// atomically with the revision bump.
	MarkBidsStale(ctx context.Context, tx *gorm.DB, bidIDs []uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an RFQ repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) CreateRoute(ctx context.Context, route *models.RfqRoute) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *repositoryImpl) FindRoutes(ctx context.Context, itemID uuid.UUID) ([]models.RfqRoute, error) {
	var routes []models.RfqRoute
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *repositoryImpl) FindRouteByID(ctx context.Context, routeID uuid.UUID) (*models.RfqRoute, error) {
	var route models.RfqRoute
	if err := r.db.WithContext(ctx).First(&route, "id = ?", routeID).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repositoryImpl) UpdateRouteStatus(ctx context.Context, routeID uuid.UUID, status enums.RfqRouteStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.RfqRoute{}).
		Where("id = ?", routeID).
		UpdateColumn("status", status).Error
}

func (r *repositoryImpl) CreateBid(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *repositoryImpl) FindSubmittedBids(ctx context.Context, itemID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ?", itemID, enums.BidStatusSubmitted).
		Order("submitted_at ASC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *repositoryImpl) FindBidsByIDs(ctx context.Context, bidIDs []uuid.UUID) ([]models.Bid, error) {
	if len(bidIDs) == 0 {
		return nil, nil
	}
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("id IN ?", bidIDs).
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *repositoryImpl) MarkBidsStale(ctx context.Context, tx *gorm.DB, bidIDs []uuid.UUID) (int64, error) {
	if len(bidIDs) == 0 {
		return 0, nil
	}
	conn := r.db
	if tx != nil {
		conn = tx
	}
	result := conn.WithContext(ctx).
		Model(&models.Bid{}).
		Where("id IN ?", bidIDs).
		Updates(map[string]any{
			"status":             enums.BidStatusStale,
			"revision_at_submit": nil,
		})
	return result.RowsAffected, result.Error
}
