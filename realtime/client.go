package realtime

import (
	"github.com/gorilla/websocket"
)

// Client is one authenticated websocket connection. A user may hold
// several clients at once (one per device or tab).
type Client struct {
	ID     string
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}
