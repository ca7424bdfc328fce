package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	clientapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/api"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/auth"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/cli"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/iocli"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/storage/boltdb"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/store"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	syncURL := flag.String("sync", "ws://localhost:8080/api/sync", "Sync channel URL")
	dbPath := flag.String("db", "mrbikemodz-client.db", "Path to local database")
	verbose := flag.Bool("verbose", false, "Enable debug logging to stderr")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	// Логи клиента уходят в stderr, чтобы не мешать выводу команд
	logger := newLogger(*verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент и сервисы
	apiClient := clientapi.NewClient(*serverURL)
	authService := auth.NewService(apiClient, boltStorage)

	// Восстанавливаем персистентное состояние витрины
	st, err := store.New(ctx, logger, boltStorage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore state: %v\n", err)
		os.Exit(1)
	}

	refresher := store.NewRefresher(logger, apiClient, st)

	stdio := iocli.NewStdio()

	// Команды дашборда не перерисовывают витрину при force reload
	router := cli.StaticRouter{Dashboard: isDashboardCommand(command)}

	channel := sync.NewChannel(
		logger,
		sync.NewConfig(*syncURL),
		sync.NewWebsocketDialer(),
		refresher,
		cli.NewIONotifier(stdio),
		cli.NewStorefrontReloader(stdio, st),
		router,
		boltStorage,
	)

	// Канал живет в фоне все время работы команды
	go channel.Run(ctx)

	app := cli.New(stdio, apiClient, authService, st, refresher, channel)

	if err := dispatch(ctx, app, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dispatch выполняет команду
func dispatch(ctx context.Context, app *cli.Cli, command string, args []string) error {
	switch command {
	case "register":
		return app.RunRegister(ctx)
	case "verify":
		return app.RunVerify(ctx)
	case "login":
		return app.RunLogin(ctx)
	case "logout":
		return app.RunLogout(ctx)
	case "status":
		return app.RunStatus(ctx)
	case "products":
		return app.RunProducts(ctx, args)
	case "reviews":
		return app.RunReviews(ctx, args)
	case "settings":
		return app.RunSettings(ctx, args)
	case "wishlist":
		return app.RunWishlist(ctx, args)
	case "slider":
		return app.RunSlider(ctx, args)
	case "watch":
		return app.RunWatch(ctx)
	default:
		cli.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// isDashboardCommand возвращает true для административных команд
func isDashboardCommand(command string) bool {
	switch command {
	case "products", "settings", "slider":
		return true
	default:
		return false
	}
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func printVersion() {
	fmt.Printf("MR BikeModz Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
