package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"partygo/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements the chathub.Client interface over a
// gorilla/websocket connection.
type WebSocketClient struct {
	HandleID string
	UserID   uint
	RoomID   uint
	Conn     *websocket.Conn
	Hub      *Hub
	Send     chan models.ChatFrame

	closeOnce sync.Once
}

func (c *WebSocketClient) GetUserID() uint                         { return c.UserID }
func (c *WebSocketClient) GetHandleID() string                     { return c.HandleID }
func (c *WebSocketClient) GetRoomID() uint                         { return c.RoomID }
func (c *WebSocketClient) GetSendChannel() chan<- models.ChatFrame { return c.Send }

// Run starts the read and write pumps. Called by the hub after the
// connection has been admitted to its room.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the connection down. Closing Send stops the write pump;
// closing the socket stops the read pump. Idempotent, since both the hub
// and the registry may close an evicted connection.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
		c.Conn.Close()
	})
}

// inboundFrame is what a client sends over the socket. Only the content is
// trusted; sender and room always come from the connection.
type inboundFrame struct {
	Content string `json:"content"`
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var in inboundFrame
		if err := json.Unmarshal(message, &in); err != nil {
			log.Printf("error decoding frame from user %d: %v", c.UserID, err)
			continue
		}
		if in.Content == "" {
			continue
		}

		c.Hub.IncomingCh <- InboundMessage{
			RoomID:  c.RoomID,
			UserID:  c.UserID,
			Content: in.Content,
		}
	}
}

func (c *WebSocketClient) writeFrame(frame models.ChatFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("error encoding frame for user %d: %v", c.UserID, err)
		return nil
	}
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Send channel closed by the hub or registry.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.writeFrame(frame); err != nil {
				return
			}

			// Drain whatever queued up while the last write was in flight.
			// Each frame stays its own text message so clients decode one
			// JSON object per read.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				if err := c.writeFrame(<-c.Send); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
