package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/svaldeco/atelierq-backend/api/controllers"
	"github.com/svaldeco/atelierq-backend/api/middleware"
	"github.com/svaldeco/atelierq-backend/internal/auth"
	"github.com/svaldeco/atelierq-backend/internal/boards"
	"github.com/svaldeco/atelierq-backend/internal/items"
	"github.com/svaldeco/atelierq-backend/internal/notifications"
	"github.com/svaldeco/atelierq-backend/internal/rfq"
	"github.com/svaldeco/atelierq-backend/pkg/auth/session"
	"github.com/svaldeco/atelierq-backend/pkg/config"
	"github.com/svaldeco/atelierq-backend/pkg/db"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	authService auth.Service,
	registerService auth.RegisterService,
	boardsService boards.Service,
	itemsService items.Service,
	rfqService rfq.Service,
	notificationsService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Post("/validate", controllers.PublicValidate(logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(registerService, authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/boards", func(r chi.Router) {
			r.Post("/", controllers.CreateBoard(boardsService, logg))
			r.Get("/", controllers.ListBoards(boardsService, logg))
			r.Get("/{boardId}", controllers.GetBoard(boardsService, logg))
			r.Put("/{boardId}/delivery", controllers.UpdateBoardDelivery(boardsService, logg))
			r.Get("/{boardId}/items", controllers.ListBoardItems(itemsService, logg))
		})

		r.Route("/v1/items", func(r chi.Router) {
			r.Post("/", controllers.CreateItem(itemsService, logg))
			r.Get("/{itemId}", controllers.GetItem(itemsService, logg))
			r.Patch("/{itemId}", controllers.UpdateItem(itemsService, logg))
			r.Get("/{itemId}/edits", controllers.ListItemEdits(itemsService, logg))
			r.Get("/{itemId}/routes", controllers.ListItemRoutes(rfqService, logg))
			r.Post("/{itemId}/routes", controllers.RouteItem(rfqService, logg))
		})

		r.Route("/v1/rfq/routes/{routeId}", func(r chi.Router) {
			r.Post("/sent", controllers.MarkRouteSent(rfqService, logg))
			r.Post("/viewed", controllers.MarkRouteViewed(rfqService, logg))
			r.Post("/decline", controllers.DeclineRoute(rfqService, logg))
			r.Post("/bids", controllers.SubmitBid(rfqService, logg))
		})

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireAdmin(logg))
		r.Use(middleware.Idempotency(redisClient, logg))
		r.Get("/ping", controllers.AdminPing())
	})

	return r
}
