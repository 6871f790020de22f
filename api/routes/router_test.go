package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/svaldeco/atelierq-backend/internal/auth"
	"github.com/svaldeco/atelierq-backend/internal/boards"
	"github.com/svaldeco/atelierq-backend/internal/items"
	"github.com/svaldeco/atelierq-backend/internal/notifications"
	"github.com/svaldeco/atelierq-backend/internal/rfq"
	pkgAuth "github.com/svaldeco/atelierq-backend/pkg/auth"
	"github.com/svaldeco/atelierq-backend/pkg/auth/session"
	"github.com/svaldeco/atelierq-backend/pkg/config"
	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/pagination"
	"github.com/svaldeco/atelierq-backend/pkg/redis"
	"github.com/google/uuid"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessToken string) error {
	return nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubBoardsService struct{}

func (stubBoardsService) CreateBoard(ctx context.Context, ownerUserID uuid.UUID, input boards.CreateBoardInput) (*models.Board, error) {
	return &models.Board{}, nil
}

func (stubBoardsService) GetBoard(ctx context.Context, boardID, userID uuid.UUID, isAdmin bool) (*models.Board, error) {
	return &models.Board{}, nil
}

func (stubBoardsService) ListBoards(ctx context.Context, ownerUserID uuid.UUID, limit int) ([]models.Board, error) {
	return nil, nil
}

func (stubBoardsService) UpdateDelivery(ctx context.Context, boardID, userID uuid.UUID, isAdmin bool, input boards.DeliveryInput) (*models.Board, error) {
	return &models.Board{}, nil
}

type stubItemsService struct {
	getItem func(ctx context.Context, itemID uuid.UUID, editor items.Editor) (*models.Item, error)
}

func (stubItemsService) CreateItem(ctx context.Context, editor items.Editor, input items.CreateItemInput) (*models.Item, error) {
	return &models.Item{}, nil
}

func (s stubItemsService) GetItemForUser(ctx context.Context, itemID uuid.UUID, editor items.Editor) (*models.Item, error) {
	if s.getItem != nil {
		return s.getItem(ctx, itemID, editor)
	}
	return &models.Item{}, nil
}

func (stubItemsService) ListBoardItems(ctx context.Context, boardID uuid.UUID, editor items.Editor, limit int, cursor *pagination.Cursor) ([]models.Item, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (stubItemsService) ListItemEdits(ctx context.Context, itemID uuid.UUID, editor items.Editor, limit int) ([]models.ItemEditRecord, error) {
	return nil, nil
}

func (stubItemsService) UpdateItem(ctx context.Context, itemID uuid.UUID, editor items.Editor, payload map[string]any) (*items.UpdateResult, error) {
	return &items.UpdateResult{}, nil
}

type stubRfqService struct{}

func (stubRfqService) RouteItem(ctx context.Context, itemID uuid.UUID, boardID *uuid.UUID, supplierIDs []uuid.UUID) ([]models.RfqRoute, error) {
	return nil, nil
}

func (stubRfqService) MarkRouteSent(ctx context.Context, routeID uuid.UUID) error {
	return nil
}

func (stubRfqService) MarkRouteViewed(ctx context.Context, routeID uuid.UUID) error {
	return nil
}

func (stubRfqService) DeclineRoute(ctx context.Context, routeID uuid.UUID) error {
	return nil
}

func (stubRfqService) SubmitBid(ctx context.Context, routeID uuid.UUID, input rfq.SubmitBidInput) (*models.Bid, error) {
	return &models.Bid{}, nil
}

func (stubRfqService) ListRoutes(ctx context.Context, itemID uuid.UUID) ([]models.RfqRoute, error) {
	return nil, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, kind enums.RecipientKind, recipientID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, kind enums.RecipientKind, recipientID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubNotificationsService) NotifySpecChange(ctx context.Context, supplierID, itemID uuid.UUID, boardID *uuid.UUID, itemTitle string, revision int) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, itemsSvc items.Service) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	if itemsSvc == nil {
		itemsSvc = stubItemsService{}
	}
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubSessionChecker{},
		stubAuthService{},
		stubRegisterService{},
		stubBoardsService{},
		itemsSvc,
		stubRfqService{},
		stubNotificationsService{},
	)
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, uuid.New(), false))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for private ping got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminClaim(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, uuid.New(), false))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, uuid.New(), true))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestGetItemRouteCarriesEditorIdentity(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()
	itemID := uuid.New()

	var captured items.Editor
	svc := stubItemsService{
		getItem: func(ctx context.Context, gotItem uuid.UUID, editor items.Editor) (*models.Item, error) {
			if gotItem != itemID {
				t.Fatalf("expected item %s got %s", itemID, gotItem)
			}
			captured = editor
			return &models.Item{}, nil
		},
	}
	router := newTestRouter(cfg, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+itemID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, userID, false))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.UserID != userID {
		t.Fatalf("expected editor %s got %s", userID, captured.UserID)
	}
	if captured.Role != enums.EditorRoleUser {
		t.Fatalf("expected user role got %s", captured.Role)
	}
}

func TestGetItemRejectsMalformedID(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, uuid.New(), false))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListBoardsRequiresAuth(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/boards/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func buildToken(t *testing.T, cfg *config.Config, userID uuid.UUID, isAdmin bool) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:  userID,
		IsAdmin: isAdmin,
		JTI:     session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
