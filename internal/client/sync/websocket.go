package sync

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
)

// wsConn адаптирует *websocket.Conn под интерфейс Conn
type wsConn struct {
	conn *websocket.Conn
}

// Read блокируется до получения следующего кадра
func (c *wsConn) Read(ctx context.Context) ([]byte, error) {
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("websocket read failed: %w", err)
	}
	return data, nil
}

// Write отправляет текстовый кадр
func (c *wsConn) Write(ctx context.Context, data []byte) error {
	if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("websocket write failed: %w", err)
	}
	return nil
}

// Close закрывает соединение
func (c *wsConn) Close(clean bool) error {
	if clean {
		return c.conn.Close(websocket.StatusNormalClosure, "")
	}
	return c.conn.Close(websocket.StatusGoingAway, "reconnecting")
}

// WebsocketDialer открывает реальные WebSocket соединения
type WebsocketDialer struct{}

// NewWebsocketDialer создает Dialer поверх coder/websocket
func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{}
}

// Dial открывает соединение с концентратором синхронизации
func (d *WebsocketDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	conn, _, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return &wsConn{conn: conn}, nil
}
