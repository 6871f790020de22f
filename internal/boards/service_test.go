package boards

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
)

type fakeBoardsRepo struct {
	boards map[uuid.UUID]*models.Board
	saves  int
}

func newFakeBoardsRepo() *fakeBoardsRepo {
	return &fakeBoardsRepo{boards: make(map[uuid.UUID]*models.Board)}
}

func (f *fakeBoardsRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeBoardsRepo) Create(ctx context.Context, board *models.Board) error {
	board.ID = uuid.New()
	copied := *board
	f.boards[board.ID] = &copied
	return nil
}

func (f *fakeBoardsRepo) FindByID(ctx context.Context, boardID uuid.UUID) (*models.Board, error) {
	board, ok := f.boards[boardID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *board
	return &copied, nil
}

func (f *fakeBoardsRepo) ListByOwner(ctx context.Context, ownerUserID uuid.UUID, limit int) ([]models.Board, error) {
	var matched []models.Board
	for _, board := range f.boards {
		if board.OwnerUserID == ownerUserID {
			matched = append(matched, *board)
		}
	}
	return matched, nil
}

func (f *fakeBoardsRepo) Save(ctx context.Context, board *models.Board) error {
	f.saves++
	copied := *board
	f.boards[board.ID] = &copied
	return nil
}

func TestCreateBoardTrimsName(t *testing.T) {
	repo := newFakeBoardsRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	owner := uuid.New()
	board, err := svc.CreateBoard(context.Background(), owner, CreateBoardInput{Name: "  Hotel Lobby  "})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if board.Name != "Hotel Lobby" {
		t.Fatalf("expected trimmed name, got %q", board.Name)
	}
	if board.OwnerUserID != owner {
		t.Fatalf("owner not carried")
	}
}

func TestCreateBoardRejectsBlankName(t *testing.T) {
	svc, err := NewService(newFakeBoardsRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.CreateBoard(context.Background(), uuid.New(), CreateBoardInput{Name: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetBoardEnforcesOwnership(t *testing.T) {
	repo := newFakeBoardsRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	owner := uuid.New()
	board, err := svc.CreateBoard(context.Background(), owner, CreateBoardInput{Name: "Lounge"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	_, err = svc.GetBoard(context.Background(), board.ID, uuid.New(), false)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	if _, err := svc.GetBoard(context.Background(), board.ID, uuid.New(), true); err != nil {
		t.Fatalf("admin should read any board: %v", err)
	}
	if _, err := svc.GetBoard(context.Background(), board.ID, owner, false); err != nil {
		t.Fatalf("owner should read own board: %v", err)
	}
}

func TestGetBoardUnknownReturnsNotFound(t *testing.T) {
	svc, err := NewService(newFakeBoardsRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetBoard(context.Background(), uuid.New(), uuid.New(), false)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateDeliveryOverwritesDestination(t *testing.T) {
	repo := newFakeBoardsRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	owner := uuid.New()
	city := "Copenhagen"
	board, err := svc.CreateBoard(context.Background(), owner, CreateBoardInput{Name: "Suites", DeliveryCity: &city})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	newCity := "Aarhus"
	country := "DK"
	updated, err := svc.UpdateDelivery(context.Background(), board.ID, owner, false, DeliveryInput{
		DeliveryCity:    &newCity,
		DeliveryCountry: &country,
	})
	if err != nil {
		t.Fatalf("UpdateDelivery: %v", err)
	}
	if updated.DeliveryCity == nil || *updated.DeliveryCity != "Aarhus" {
		t.Fatalf("city not updated")
	}
	if updated.DeliveryCountry == nil || *updated.DeliveryCountry != "DK" {
		t.Fatalf("country not updated")
	}
	if repo.saves != 1 {
		t.Fatalf("expected one save, got %d", repo.saves)
	}
}

func TestUpdateDeliveryRequiresOwnershipOrAdmin(t *testing.T) {
	repo := newFakeBoardsRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	board, err := svc.CreateBoard(context.Background(), uuid.New(), CreateBoardInput{Name: "Terrace"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	_, err = svc.UpdateDelivery(context.Background(), board.ID, uuid.New(), false, DeliveryInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if _, err := svc.UpdateDelivery(context.Background(), board.ID, uuid.New(), true, DeliveryInput{}); err != nil {
		t.Fatalf("admin update should pass: %v", err)
	}
}
