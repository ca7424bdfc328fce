// Package sync реализует канал синхронизации витрины: best-effort
// распространение сигналов "данные изменились" между инстансами,
// разделяющими один бэкенд. Канал не несет сами данные, только тип
// изменения; получатель перечитывает коллекцию через обычный CRUD.
//
// Гарантий доставки нет: при исчерпании попыток переподключения канал
// навсегда деградирует в опрос по фиксированному интервалу.
package sync

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/rehydrate"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// State представляет состояние канала синхронизации
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StatePolling
)

// String returns state name
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StatePolling:
		return "polling"
	default:
		return "unknown"
	}
}

// Publisher publishes outbound change notifications.
// Компоненты, мутирующие данные, получают Publisher через конструктор,
// а не через глобальный слот.
type Publisher interface {
	// Broadcast отправляет сигнал об изменении. Если канал не в состоянии
	// Connected, сигнал молча отбрасывается: доставка best-effort.
	Broadcast(msgType api.SyncMessageType)
}

// Fetcher re-fetches collections from the server into the local store
type Fetcher interface {
	RefreshProducts(ctx context.Context) error
	RefreshReviews(ctx context.Context) error
	RefreshSettings(ctx context.Context) error
}

// Notifier shows transient user-facing notifications
type Notifier interface {
	Notify(message string)
}

// Reloader forces a full reload of the storefront UI
type Reloader interface {
	Reload()
}

// Router reports which route the instance is currently on
type Router interface {
	// OnDashboard возвращает true, если открыт админский маршрут.
	// На админских маршрутах force reload не выполняется.
	OnDashboard() bool
}

// Conn абстрагирует WebSocket соединение для подмены в тестах
type Conn interface {
	// Read блокируется до получения следующего кадра
	Read(ctx context.Context) ([]byte, error)
	// Write отправляет текстовый кадр
	Write(ctx context.Context, data []byte) error
	// Close закрывает соединение; clean означает штатное завершение
	Close(clean bool) error
}

// Dialer открывает соединение с концентратором синхронизации
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}

// Config содержит параметры канала синхронизации
type Config struct {
	// Endpoint адрес WebSocket концентратора
	Endpoint string
	// MaxAttempts число неудачных попыток до перехода в Polling
	MaxAttempts int
	// OpenRetryDelay пауза после ошибки открытия соединения
	OpenRetryDelay time.Duration
	// RedialDelay пауза после неожиданного разрыва
	RedialDelay time.Duration
	// PollInterval интервал опроса в режиме Polling
	PollInterval time.Duration
	// StaleAfter возраст, после которого сообщение отбрасывается
	StaleAfter time.Duration
}

// NewConfig возвращает конфигурацию с фиксированными интервалами
func NewConfig(endpoint string) Config {
	return Config{
		Endpoint:       endpoint,
		MaxAttempts:    3,
		OpenRetryDelay: 3 * time.Second,
		RedialDelay:    5 * time.Second,
		PollInterval:   30 * time.Second,
		StaleAfter:     30 * time.Second,
	}
}

// Channel представляет канал синхронизации одного инстанса витрины
type Channel struct {
	logger     *slog.Logger
	cfg        Config
	dialer     Dialer
	fetcher    Fetcher
	notifier   Notifier
	reloader   Reloader
	router     Router
	state      storage.StateStorage
	instanceID string

	mu       sync.Mutex
	chState  State
	conn     Conn
	attempts int
}

// NewChannel создает канал синхронизации.
// instanceId генерируется на время жизни инстанса и используется
// получателями для фильтрации собственных сообщений.
func NewChannel(
	logger *slog.Logger,
	cfg Config,
	dialer Dialer,
	fetcher Fetcher,
	notifier Notifier,
	reloader Reloader,
	router Router,
	state storage.StateStorage,
) *Channel {
	return &Channel{
		logger:     logger,
		cfg:        cfg,
		dialer:     dialer,
		fetcher:    fetcher,
		notifier:   notifier,
		reloader:   reloader,
		router:     router,
		state:      state,
		instanceID: uuid.NewString(),
		chState:    StateDisconnected,
	}
}

// InstanceID возвращает идентификатор инстанса
func (c *Channel) InstanceID() string {
	return c.instanceID
}

// State возвращает текущее состояние канала
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chState
}

func (c *Channel) setState(s State) {
	c.mu.Lock()
	prev := c.chState
	c.chState = s
	c.mu.Unlock()
	if prev != s {
		c.logger.Info("sync channel state changed",
			"from", prev.String(),
			"to", s.String())
	}
}

// Run запускает канал и блокируется до отмены контекста.
// Отмена контекста равнозначна clean close: без ретраев.
func (c *Channel) Run(ctx context.Context) {
	defer c.teardown()

	for {
		if ctx.Err() != nil {
			return
		}

		c.setState(StateConnecting)

		conn, err := c.dialer.Dial(ctx, c.cfg.Endpoint)
		if err != nil {
			c.attempts++
			c.logger.Warn("failed to open sync channel",
				"attempt", c.attempts,
				"error", err)
			if c.attempts >= c.cfg.MaxAttempts {
				c.pollLoop(ctx)
				return
			}
			if !sleep(ctx, c.cfg.OpenRetryDelay) {
				return
			}
			continue
		}

		if err := c.register(ctx, conn); err != nil {
			_ = conn.Close(false)
			c.attempts++
			c.logger.Warn("failed to register on sync channel",
				"attempt", c.attempts,
				"error", err)
			if c.attempts >= c.cfg.MaxAttempts {
				c.pollLoop(ctx)
				return
			}
			if !sleep(ctx, c.cfg.OpenRetryDelay) {
				return
			}
			continue
		}

		// Открылись: сбрасываем счетчик попыток
		c.mu.Lock()
		c.conn = conn
		c.attempts = 0
		c.mu.Unlock()
		c.setState(StateConnected)

		c.readLoop(ctx, conn)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()

		if ctx.Err() != nil {
			// Teardown: clean close, без ретраев
			_ = conn.Close(true)
			return
		}

		_ = conn.Close(false)
		c.setState(StateDisconnected)

		c.attempts++
		c.logger.Warn("sync channel closed unexpectedly", "attempt", c.attempts)
		if c.attempts >= c.cfg.MaxAttempts {
			c.pollLoop(ctx)
			return
		}
		if !sleep(ctx, c.cfg.RedialDelay) {
			return
		}
	}
}

// register первым кадром представляется концентратору
func (c *Channel) register(ctx context.Context, conn Conn) error {
	data, err := json.Marshal(api.SyncRegister{InstanceID: c.instanceID})
	if err != nil {
		return err
	}
	return conn.Write(ctx, data)
}

// readLoop читает и обрабатывает сообщения до разрыва соединения
func (c *Channel) readLoop(ctx context.Context, conn Conn) {
	for {
		data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		c.handleFrame(ctx, data)
	}
}

// handleFrame разбирает кадр и применяет правила отбрасывания
func (c *Channel) handleFrame(ctx context.Context, data []byte) {
	var msg api.SyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		// Ошибки парсинга не видны пользователю: сообщение просто дропается
		c.logger.Warn("dropping malformed sync message", "error", err)
		return
	}
	c.Handle(ctx, &msg)
}

// Handle обрабатывает одно входящее сообщение синхронизации
func (c *Channel) Handle(ctx context.Context, msg *api.SyncMessage) {
	if !msg.Type.Valid() {
		c.logger.Warn("dropping sync message with unknown type",
			"type", string(msg.Type))
		return
	}

	// Собственные сообщения не обрабатываются: инстанс уже видит
	// результат своей мутации
	if msg.InstanceID == c.instanceID {
		c.logger.Debug("ignoring own sync message", "type", string(msg.Type))
		return
	}

	// Слишком старые сообщения отбрасываются без побочных эффектов
	age := time.Since(time.UnixMilli(msg.Timestamp))
	if age > c.cfg.StaleAfter {
		c.logger.Debug("dropping stale sync message",
			"type", string(msg.Type),
			"age", age.String())
		return
	}

	switch msg.Type {
	case api.SyncProductsUpdated:
		c.refreshProducts(ctx)
		c.notifier.Notify("Catalog updated")

	case api.SyncReviewsUpdated:
		c.refreshReviews(ctx)
		c.notifier.Notify("Reviews updated")

	case api.SyncStoreSettingsUpdated:
		// Устаревший снапшот не должен воскресить старые настройки,
		// поэтому секция настроек вычищается из персистентного блоба
		if err := rehydrate.ClearSettings(ctx, c.state); err != nil {
			c.logger.Warn("failed to clear persisted settings", "error", err)
		}
		c.refreshAll(ctx)
		if !c.router.OnDashboard() {
			c.reloader.Reload()
		}
		c.notifier.Notify("Store settings updated")

	case api.SyncAllDataUpdated:
		c.refreshAll(ctx)
		if !c.router.OnDashboard() {
			c.reloader.Reload()
		}
		c.notifier.Notify("Store data updated")
	}
}

// refreshProducts перечитывает каталог
func (c *Channel) refreshProducts(ctx context.Context) {
	if err := c.fetcher.RefreshProducts(ctx); err != nil {
		c.logger.Warn("failed to refresh products", "error", err)
	}
}

// refreshReviews перечитывает отзывы
func (c *Channel) refreshReviews(ctx context.Context) {
	if err := c.fetcher.RefreshReviews(ctx); err != nil {
		c.logger.Warn("failed to refresh reviews", "error", err)
	}
}

// refreshAll перечитывает все три коллекции параллельно.
// Какая именно коллекция изменилась, не важно: перечитываются все,
// простота важнее экономии запросов.
func (c *Channel) refreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		c.refreshProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		c.refreshReviews(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := c.fetcher.RefreshSettings(ctx); err != nil {
			c.logger.Warn("failed to refresh settings", "error", err)
		}
	}()
	wg.Wait()
}

// Broadcast отправляет сигнал об изменении данных.
// Реализует Publisher. Вне состояния Connected сигнал молча дропается.
func (c *Channel) Broadcast(msgType api.SyncMessageType) {
	c.mu.Lock()
	conn := c.conn
	state := c.chState
	c.mu.Unlock()

	if state != StateConnected || conn == nil {
		c.logger.Debug("dropping broadcast, channel not connected",
			"type", string(msgType),
			"state", state.String())
		return
	}

	msg := api.SyncMessage{
		Type:       msgType,
		Timestamp:  time.Now().UnixMilli(),
		Source:     uuid.NewString(),
		InstanceID: c.instanceID,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to marshal sync message", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Write(ctx, data); err != nil {
		// Отправитель не получает обратной связи о доставке
		c.logger.Warn("failed to send sync message", "error", err)
	}
}

// pollLoop безусловно перечитывает все коллекции по фиксированному
// интервалу. Из этого режима канал уже не выходит.
func (c *Channel) pollLoop(ctx context.Context) {
	c.setState(StatePolling)
	c.logger.Warn("sync channel degraded to polling",
		"interval", c.cfg.PollInterval.String())

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshAll(ctx)
		}
	}
}

// teardown переводит канал в Disconnected и закрывает соединение чисто
func (c *Channel) teardown() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close(true)
	}
	c.setState(StateDisconnected)
}

// sleep ждет delay или отмены контекста.
// Возвращает false, если контекст отменен.
func sleep(ctx context.Context, delay time.Duration) bool {
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
