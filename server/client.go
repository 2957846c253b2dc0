package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// enqueue drops msg when the client is slow. The next snapshot supersedes
// it anyway.
func (c *client) enqueue(msg []byte) {
	if msg == nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// writePump is the only goroutine writing to conn.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warn("ws read", zap.Error(err))
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.enqueue(c.hub.encode(Message{Type: TypeError, Error: "invalid command: " + err.Error()}))
			continue
		}

		reply := Execute(c.hub.trainer, cmd)
		if m := c.hub.metrics; m != nil {
			m.Commands.WithLabelValues(commandLabel(cmd.Cmd), reply.Type).Inc()
		}
		c.enqueue(c.hub.encode(reply))
	}
}
