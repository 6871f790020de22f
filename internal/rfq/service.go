package rfq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db"
	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
)

// Service exposes RFQ routing and bid submission.
type Service interface {
	RouteItem(ctx context.Context, itemID uuid.UUID, boardID *uuid.UUID, supplierIDs []uuid.UUID) ([]models.RfqRoute, error)
	MarkRouteSent(ctx context.Context, routeID uuid.UUID) error
	MarkRouteViewed(ctx context.Context, routeID uuid.UUID) error
	DeclineRoute(ctx context.Context, routeID uuid.UUID) error
	SubmitBid(ctx context.Context, routeID uuid.UUID, input SubmitBidInput) (*models.Bid, error)
	ListRoutes(ctx context.Context, itemID uuid.UUID) ([]models.RfqRoute, error)
}

// SubmitBidInput carries a supplier quote.
type SubmitBidInput struct {
	AmountCents int64
	Currency    string
}

type itemRevisionReader interface {
	FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
}

type service struct {
	repo     Repository
	items    itemRevisionReader
	dbClient *db.Client
}

// NewService constructs an RFQ service instance.
func NewService(repo Repository, items itemRevisionReader, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rfq repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("item reader required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, items: items, dbClient: dbClient}, nil
}

// RouteItem queues one routing record per supplier, skipping duplicates for
// suppliers that already hold an active route.
func (s *service) RouteItem(ctx context.Context, itemID uuid.UUID, boardID *uuid.UUID, supplierIDs []uuid.UUID) ([]models.RfqRoute, error) {
	if len(supplierIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one supplier required")
	}
	existing, err := s.repo.FindRoutes(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load rfq routes")
	}
	active := make(map[uuid.UUID]struct{})
	for _, route := range existing {
		if route.Status.IsActive() {
			active[route.SupplierID] = struct{}{}
		}
	}

	var created []models.RfqRoute
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, supplierID := range supplierIDs {
			if _, dup := active[supplierID]; dup {
				continue
			}
			active[supplierID] = struct{}{}
			route := models.RfqRoute{
				ItemID:     itemID,
				SupplierID: supplierID,
				Status:     enums.RfqRouteStatusQueued,
				BoardID:    boardID,
			}
			if err := txRepo.CreateRoute(ctx, &route); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert rfq route")
			}
			created = append(created, route)
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "route item")
	}
	return created, nil
}

func (s *service) MarkRouteSent(ctx context.Context, routeID uuid.UUID) error {
	return s.transitionRoute(ctx, routeID, enums.RfqRouteStatusSent, enums.RfqRouteStatusQueued)
}

func (s *service) MarkRouteViewed(ctx context.Context, routeID uuid.UUID) error {
	return s.transitionRoute(ctx, routeID, enums.RfqRouteStatusViewed, enums.RfqRouteStatusSent, enums.RfqRouteStatusQueued)
}

func (s *service) DeclineRoute(ctx context.Context, routeID uuid.UUID) error {
	return s.transitionRoute(ctx, routeID, enums.RfqRouteStatusDeclined,
		enums.RfqRouteStatusQueued, enums.RfqRouteStatusSent, enums.RfqRouteStatusViewed)
}

func (s *service) transitionRoute(ctx context.Context, routeID uuid.UUID, next enums.RfqRouteStatus, from ...enums.RfqRouteStatus) error {
	route, err := s.repo.FindRouteByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "rfq route not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load rfq route")
	}
	allowed := false
	for _, status := range from {
		if route.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "route in status %s cannot move to %s", route.Status, next)
	}
	if err := s.repo.UpdateRouteStatus(ctx, routeID, next); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update route status")
	}
	return nil
}

// SubmitBid records a supplier quote stamped with the item's current
// specification revision, and moves the route to bid_submitted.
func (s *service) SubmitBid(ctx context.Context, routeID uuid.UUID, input SubmitBidInput) (*models.Bid, error) {
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid amount must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}

	route, err := s.repo.FindRouteByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rfq route not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load rfq route")
	}
	if !route.Status.IsActive() {
		return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "route in status %s cannot accept bids", route.Status)
	}

	item, err := s.items.FindByID(ctx, route.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}
	revision := item.RfqRevision()

	bid := &models.Bid{
		ItemID:           route.ItemID,
		SupplierID:       route.SupplierID,
		AmountCents:      input.AmountCents,
		Currency:         currency,
		RevisionAtSubmit: &revision,
		Status:           enums.BidStatusSubmitted,
	}
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateBid(ctx, bid); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert bid")
		}
		if err := txRepo.UpdateRouteStatus(ctx, routeID, enums.RfqRouteStatusBidSubmitted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update route status")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit bid")
	}
	return bid, nil
}

func (s *service) ListRoutes(ctx context.Context, itemID uuid.UUID) ([]models.RfqRoute, error) {
	routes, err := s.repo.FindRoutes(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list rfq routes")
	}
	return routes, nil
}
