// Package server собирает HTTP API магазина: маршруты, middleware,
// хранилище и концентратор синхронизации.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/handlers"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/images"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/mail"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/middleware"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/synchub"
)

// Config содержит настройки HTTP сервера
type Config struct {
	// Addr адрес для прослушивания, например ":8080"
	Addr string
	// Version версия сборки для health check
	Version string
	// JWT настройки подписи токенов
	JWT handlers.JWTConfig
	// OTPRateLimit лимит запросов отправки OTP с одного IP
	OTPRateLimit int
	// OTPRateWindow окно лимита отправки OTP
	OTPRateWindow time.Duration
}

// Storage объединяет все серверные хранилища
type Storage interface {
	storage.UserStorage
	storage.TokenStorage
	storage.OTPStorage
	storage.ProductStorage
	storage.ReviewStorage
	storage.SettingsStorage
	storage.WishlistStorage
	storage.SliderStorage
}

// Server представляет HTTP сервер магазина
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	hub        *synchub.Hub
}

// New создает сервер со всеми маршрутами и middleware
func New(logger *slog.Logger, cfg Config, store Storage, mailer mail.Sender, uploader images.Uploader) *Server {
	hub := synchub.NewHub(logger)

	authHandler := handlers.NewAuthHandler(logger, store, store, store, mailer, cfg.JWT)
	productHandler := handlers.NewProductHandler(logger, store)
	reviewHandler := handlers.NewReviewHandler(logger, store, store)
	settingsHandler := handlers.NewSettingsHandler(logger, store)
	wishlistHandler := handlers.NewWishlistHandler(logger, store, store)
	sliderHandler := handlers.NewSliderHandler(logger, store, uploader)
	healthHandler := handlers.NewHealthHandler(logger, cfg.Version)

	requireAuth := middleware.AuthMiddleware(logger, cfg.JWT)
	otpLimit := middleware.RateLimitMiddleware(cfg.OTPRateLimit, cfg.OTPRateWindow, logger)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /api/health", healthHandler.Check)

	// Auth
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/send-otp", otpLimit(http.HandlerFunc(authHandler.SendOTP)))
	mux.HandleFunc("POST /api/auth/verify-otp", authHandler.VerifyOTP)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Catalog: чтение публичное, мутации только авторизованным
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.Get)
	mux.Handle("POST /api/products", requireAuth(http.HandlerFunc(productHandler.Create)))
	mux.Handle("PUT /api/products/{id}", requireAuth(http.HandlerFunc(productHandler.Update)))
	mux.Handle("DELETE /api/products/{id}", requireAuth(http.HandlerFunc(productHandler.Delete)))

	// Reviews
	mux.HandleFunc("GET /api/reviews", reviewHandler.List)
	mux.HandleFunc("GET /api/reviews/{id}", reviewHandler.Get)
	mux.Handle("POST /api/reviews", requireAuth(http.HandlerFunc(reviewHandler.Create)))
	mux.Handle("DELETE /api/reviews/{id}", requireAuth(http.HandlerFunc(reviewHandler.Delete)))

	// Store settings
	mux.HandleFunc("GET /api/store-settings", settingsHandler.Get)
	mux.Handle("PUT /api/store-settings", requireAuth(http.HandlerFunc(settingsHandler.Update)))

	// Wishlist
	mux.Handle("GET /api/user/wishlist", requireAuth(http.HandlerFunc(wishlistHandler.List)))
	mux.Handle("POST /api/user/wishlist", requireAuth(http.HandlerFunc(wishlistHandler.Add)))
	mux.Handle("DELETE /api/user/wishlist/{id}", requireAuth(http.HandlerFunc(wishlistHandler.Remove)))
	mux.Handle("DELETE /api/user/wishlist", requireAuth(http.HandlerFunc(wishlistHandler.Clear)))

	// Slider
	mux.HandleFunc("GET /api/slider", sliderHandler.List)
	mux.Handle("POST /api/slider", requireAuth(http.HandlerFunc(sliderHandler.Create)))
	mux.Handle("DELETE /api/slider/{id}", requireAuth(http.HandlerFunc(sliderHandler.Delete)))

	// Sync channel: авторизация не требуется, канал не несет данных,
	// только сигналы "перечитай коллекцию"
	mux.HandleFunc("GET /api/sync", hub.HandleWebSocket)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		hub: hub,
	}
}

// Hub возвращает концентратор синхронизации
func (s *Server) Hub() *synchub.Hub {
	return s.hub
}

// Run запускает сервер и блокируется до его остановки
func (s *Server) Run() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, закрыв сначала sync-соединения
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Shutdown()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
