// Package cli реализует команды консольного клиента магазина
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/api"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/auth"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/iocli"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/store"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/sync"
	pkgapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// Cli связывает команды с сервисами клиента
type Cli struct {
	io        iocli.IO
	apiClient *api.Client
	auth      *auth.Service
	store     *store.Store
	refresher *store.Refresher
	channel   *sync.Channel
}

// New создает Cli
func New(
	io iocli.IO,
	apiClient *api.Client,
	authService *auth.Service,
	st *store.Store,
	refresher *store.Refresher,
	channel *sync.Channel,
) *Cli {
	return &Cli{
		io:        io,
		apiClient: apiClient,
		auth:      authService,
		store:     st,
		refresher: refresher,
		channel:   channel,
	}
}

// broadcast отправляет сигнал синхронизации после успешной мутации.
// Канал подключается асинхронно, поэтому немного ждем Connected;
// если канал так и не поднялся, сигнал дропается (best-effort).
func (c *Cli) broadcast(msgType pkgapi.SyncMessageType) {
	deadline := time.Now().Add(2 * time.Second)
	for c.channel.State() != sync.StateConnected && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	c.channel.Broadcast(msgType)
}

// requireSession восстанавливает сохраненную сессию или падает с подсказкой
func (c *Cli) requireSession(ctx context.Context) error {
	if _, err := c.auth.Restore(ctx); err != nil {
		if err == auth.ErrNotAuthenticated {
			return fmt.Errorf("not authenticated, run 'mrbikemodz login' first")
		}
		return err
	}
	return nil
}

// PrintUsage печатает справку по командам
func PrintUsage() {
	fmt.Println("MR BikeModz Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mrbikemodz [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version          Show version information")
	fmt.Println("  --server URL       Server URL (default: http://localhost:8080)")
	fmt.Println("  --sync URL         Sync channel URL (default: ws://localhost:8080/api/sync)")
	fmt.Println("  --db PATH          Path to local database (default: mrbikemodz-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                     Register new account (sends OTP to email)")
	fmt.Println("  verify                       Verify email with an OTP code")
	fmt.Println("  login                        Login with email and password")
	fmt.Println("  logout                       Logout and drop the local session")
	fmt.Println("  status                       Show session status")
	fmt.Println("  products [list|get|add|update|delete]")
	fmt.Println("  reviews [list|add|delete]    Manage product reviews")
	fmt.Println("  settings [show|edit]         Manage store settings (retailer only)")
	fmt.Println("  wishlist [list|add|remove|clear]   Manage your wishlist")
	fmt.Println("  slider [list|add|delete]     Manage homepage banners (retailer only)")
	fmt.Println("  watch                        Follow live catalog updates")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  mrbikemodz register")
	fmt.Println("  mrbikemodz login")
	fmt.Println("  mrbikemodz products list")
	fmt.Println("  mrbikemodz products add")
	fmt.Println("  mrbikemodz reviews add <product-id>")
	fmt.Println("  mrbikemodz watch")
	fmt.Println("  mrbikemodz --server https://shop.example.com login")
}
