package realtime

import (
	"fmt"
	"net/http"
	"time"

	"luggage-link/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TokenVerifier resolves a bearer token to a local user ID.
type TokenVerifier func(token string) (uint, error)

// ServeWS upgrades the request and waits for an auth message before
// registering the connection with the hub.
func ServeWS(hub *Hub, verify TokenVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade failed", err)
			return
		}

		var authMsg struct {
			Type  string `json:"type"`
			Token string `json:"token"`
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := conn.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "auth failed"))
			conn.Close()
			return
		}

		userID, err := verify(authMsg.Token)
		if err != nil {
			logger.Error("WebSocket auth rejected", err)
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "invalid token"))
			conn.Close()
			return
		}

		client := &Client{
			ID:     uuid.NewString(),
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 256),
		}
		hub.AddClient(client)
		logger.Info(fmt.Sprintf("WebSocket connected for user %d", userID))

		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		go writePump(hub, client)
		go readPump(hub, client)
	}
}

func writePump(hub *Hub, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if !ok {
				client.Conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := client.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; the socket is server-push only.
// It exists to surface pongs and connection closure.
func readPump(hub *Hub, client *Client) {
	defer func() {
		hub.RemoveClient(client.UserID, client.ID)
		client.Conn.Close()
		logger.Info(fmt.Sprintf("WebSocket closed for user %d", client.UserID))
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// ListenAndServe runs the realtime endpoint on its own listener.
func ListenAndServe(addr string, hub *Hub, verify TokenVerifier) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", ServeWS(hub, verify))
	logger.Info(fmt.Sprintf("Realtime server listening on %s", addr))
	return http.ListenAndServe(addr, mux)
}
