// Package synchub реализует WebSocket-концентратор синхронизации витрин.
// Сервер не интерпретирует сообщения: он принимает SyncMessage от одного
// инстанса и ретранслирует его всем подключенным, включая отправителя.
// Фильтрация собственных сообщений происходит на клиенте по instanceId.
package synchub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// writeTimeout ограничивает время отправки одного кадра клиенту
const writeTimeout = 5 * time.Second

// client хранит соединение и заявленный им instanceId
type client struct {
	conn       *websocket.Conn
	instanceID string
}

// Hub релеит сообщения синхронизации между подключенными инстансами
type Hub struct {
	logger  *slog.Logger
	clients map[*client]struct{}
	mu      sync.RWMutex
	closed  bool
}

// NewHub создает новый Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// ClientCount возвращает число подключенных инстансов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown закрывает все соединения со статусом StatusGoingAway.
// Клиенты трактуют этот статус как штатное завершение и не ретраят.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		_ = c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.clients, c)
	}
}

// HandleWebSocket обрабатывает подключение инстанса витрины
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}

	// Первым кадром клиент представляется своим instanceId
	regCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_, data, err := conn.Read(regCtx)
	cancel()
	if err != nil {
		_ = conn.Close(websocket.StatusPolicyViolation, "missing register frame")
		return
	}

	var reg api.SyncRegister
	if err := json.Unmarshal(data, &reg); err != nil || reg.InstanceID == "" {
		h.logger.Warn("invalid register frame", "error", err)
		_ = conn.Close(websocket.StatusPolicyViolation, "invalid register frame")
		return
	}

	c := &client{conn: conn, instanceID: reg.InstanceID}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("sync client connected", "instance_id", reg.InstanceID)

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		_ = conn.Close(websocket.StatusNormalClosure, "")
		h.logger.Info("sync client disconnected", "instance_id", reg.InstanceID)
	}()

	// Читаем сообщения до закрытия соединения. Контекст запроса
	// отменяется при возврате handler, поэтому используем Background.
	for {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			return
		}

		var msg api.SyncMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Warn("dropping malformed sync message",
				"instance_id", reg.InstanceID,
				"error", err)
			continue
		}
		if !msg.Type.Valid() {
			h.logger.Warn("dropping sync message with unknown type",
				"instance_id", reg.InstanceID,
				"type", string(msg.Type))
			continue
		}

		h.broadcast(&msg)
	}
}

// broadcast ретранслирует сообщение всем подключенным, включая отправителя
func (h *Hub) broadcast(msg *api.SyncMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal sync message", "error", err)
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
			h.logger.Warn("failed to relay sync message",
				"instance_id", c.instanceID,
				"error", err)
		}
		cancel()
	}
}
