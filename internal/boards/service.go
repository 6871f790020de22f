package boards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
)

// Service exposes board management for designers.
type Service interface {
	CreateBoard(ctx context.Context, ownerUserID uuid.UUID, input CreateBoardInput) (*models.Board, error)
	GetBoard(ctx context.Context, boardID, userID uuid.UUID, isAdmin bool) (*models.Board, error)
	ListBoards(ctx context.Context, ownerUserID uuid.UUID, limit int) ([]models.Board, error)
	UpdateDelivery(ctx context.Context, boardID, userID uuid.UUID, isAdmin bool, input DeliveryInput) (*models.Board, error)
}

// CreateBoardInput holds the payload for a new board.
type CreateBoardInput struct {
	Name             string
	SourcingCategory *string
	DeliveryCity     *string
	DeliveryCountry  *string
}

// DeliveryInput updates the board-level delivery destination.
type DeliveryInput struct {
	DeliveryCity    *string
	DeliveryCountry *string
}

type service struct {
	repo Repository
}

// NewService constructs a boards service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("boards repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateBoard(ctx context.Context, ownerUserID uuid.UUID, input CreateBoardInput) (*models.Board, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "board name cannot be empty")
	}
	board := &models.Board{
		OwnerUserID:      ownerUserID,
		Name:             name,
		SourcingCategory: input.SourcingCategory,
		DeliveryCity:     input.DeliveryCity,
		DeliveryCountry:  input.DeliveryCountry,
	}
	if err := s.repo.Create(ctx, board); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert board")
	}
	return board, nil
}

func (s *service) GetBoard(ctx context.Context, boardID, userID uuid.UUID, isAdmin bool) (*models.Board, error) {
	board, err := s.repo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "board not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load board")
	}
	if !isAdmin && board.OwnerUserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "board belongs to another user")
	}
	return board, nil
}

func (s *service) ListBoards(ctx context.Context, ownerUserID uuid.UUID, limit int) ([]models.Board, error) {
	boards, err := s.repo.ListByOwner(ctx, ownerUserID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list boards")
	}
	return boards, nil
}

func (s *service) UpdateDelivery(ctx context.Context, boardID, userID uuid.UUID, isAdmin bool, input DeliveryInput) (*models.Board, error) {
	board, err := s.GetBoard(ctx, boardID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	board.DeliveryCity = input.DeliveryCity
	board.DeliveryCountry = input.DeliveryCountry
	if err := s.repo.Save(ctx, board); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save board")
	}
	return board, nil
}
