package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/api/middleware"
	"github.com/svaldeco/atelierq-backend/internal/items"
	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/pagination"
)

type stubItemsService struct {
	created *items.CreateItemInput
}

func (s *stubItemsService) CreateItem(ctx context.Context, editor items.Editor, input items.CreateItemInput) (*models.Item, error) {
	s.created = &input
	return &models.Item{ID: uuid.New(), BoardID: input.BoardID, Title: input.Title}, nil
}

func (s *stubItemsService) GetItemForUser(ctx context.Context, itemID uuid.UUID, editor items.Editor) (*models.Item, error) {
	return &models.Item{ID: itemID}, nil
}

func (s *stubItemsService) ListBoardItems(ctx context.Context, boardID uuid.UUID, editor items.Editor, limit int, cursor *pagination.Cursor) ([]models.Item, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (s *stubItemsService) ListItemEdits(ctx context.Context, itemID uuid.UUID, editor items.Editor, limit int) ([]models.ItemEditRecord, error) {
	return nil, nil
}

func (s *stubItemsService) UpdateItem(ctx context.Context, itemID uuid.UUID, editor items.Editor, payload map[string]any) (*items.UpdateResult, error) {
	return &items.UpdateResult{}, nil
}

func postCreateItem(t *testing.T, svc items.Service, title string) *httptest.ResponseRecorder {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-controllers", Output: io.Discard})
	handler := CreateItem(svc, logg)

	body, err := json.Marshal(map[string]any{
		"board_id":  uuid.New().String(),
		"title":     title,
		"item_type": "furniture",
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New().String()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

// Create accepts the same title length the field whitelist allows on update.
func TestCreateItemAcceptsWhitelistTitleLength(t *testing.T) {
	svc := &stubItemsService{}
	resp := postCreateItem(t, svc, strings.Repeat("a", 500))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for 500-char title got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.created == nil || len(svc.created.Title) != 500 {
		t.Fatal("expected the full title to reach the service")
	}
}

func TestCreateItemRejectsOverlongTitle(t *testing.T) {
	svc := &stubItemsService{}
	resp := postCreateItem(t, svc, strings.Repeat("a", 501))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 501-char title got %d", resp.Code)
	}
	if svc.created != nil {
		t.Fatal("expected the service to stay untouched")
	}
}
