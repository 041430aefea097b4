package realtime

import (
	"sync"

	"mindhaven/internal/domain/dto"

	"github.com/gorilla/websocket"
)

// Channel is one live duplex session for a single user. Channels are owned
// by the registry once registered: a delivery failure closes and removes
// the channel, it is never reused.
type Channel interface {
	// Accept completes the connection handshake. A channel that fails
	// Accept is discarded without ever being registered.
	Accept() error
	Send(payload any) error
	Close() error
}

// WebSocketChannel wraps one websocket connection. gorilla/websocket
// permits only one concurrent writer, so every write goes through writeMu.
type WebSocketChannel struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewWebSocketChannel(conn *websocket.Conn) *WebSocketChannel {
	return &WebSocketChannel{conn: conn}
}

func (c *WebSocketChannel) Accept() error {
	return c.Send(dto.ConnectedEnvelope{Type: dto.EnvelopeConnected})
}

func (c *WebSocketChannel) Send(payload any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(payload)
}

func (c *WebSocketChannel) Close() error {
	return c.conn.Close()
}
