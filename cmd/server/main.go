package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/handlers"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/images"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/mail"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", envOr("MRBM_ADDR", ":8080"), "Address to listen on")
	dbPath := flag.String("db", envOr("MRBM_DB", "mrbikemodz.db"), "Path to SQLite database")
	logLevel := flag.String("log-level", envOr("MRBM_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := newLogger(*logLevel)

	if err := run(logger, *addr, *dbPath); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// JWT секрет обязателен: на нем держится вся авторизация
	jwtSecret := os.Getenv("MRBM_JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("MRBM_JWT_SECRET environment variable is required")
	}

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	cfg := server.Config{
		Addr:    addr,
		Version: Version,
		JWT: handlers.JWTConfig{
			Secret:          []byte(jwtSecret),
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 30 * 24 * time.Hour,
		},
		OTPRateLimit:  5,
		OTPRateWindow: 5 * time.Minute,
	}

	srv := server.New(logger, cfg, store, newMailer(logger), newUploader(logger))

	errC := make(chan error, 1)
	go func() {
		errC <- srv.Run()
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errC
}

// newMailer выбирает SMTP транспорт, если он сконфигурирован,
// иначе OTP коды пишутся в лог (режим разработки)
func newMailer(logger *slog.Logger) mail.Sender {
	host := os.Getenv("MRBM_SMTP_HOST")
	if host == "" {
		logger.Warn("SMTP is not configured, OTP codes will be logged instead")
		return mail.NewLogSender(logger)
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     host,
		Port:     envOr("MRBM_SMTP_PORT", "587"),
		Username: os.Getenv("MRBM_SMTP_USER"),
		Password: os.Getenv("MRBM_SMTP_PASSWORD"),
		From:     envOr("MRBM_SMTP_FROM", "no-reply@mrbikemodz.local"),
	}, logger)
}

// newUploader настраивает клиент стороннего image-хостинга для баннеров
func newUploader(logger *slog.Logger) images.Uploader {
	return images.NewHTTPUploader(
		logger,
		envOr("MRBM_IMAGES_URL", "https://images.mrbikemodz.local/api"),
		os.Getenv("MRBM_IMAGES_KEY"),
	)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// envOr возвращает значение переменной окружения либо fallback
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printVersion() {
	fmt.Printf("MR BikeModz Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
