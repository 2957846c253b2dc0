package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxtrainer/session"
)

const sendBuffer = 64

// Hub fans session snapshots out to websocket clients and feeds their
// commands back into the session.
type Hub struct {
	trainer *session.Trainer
	metrics *Metrics
	log     *zap.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub subscribes a hub to tr. metrics may be nil.
func NewHub(tr *session.Trainer, m *Metrics, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		trainer: tr,
		metrics: m,
		log:     log,
		clients: make(map[*client]struct{}),
	}
	tr.Subscribe(h.broadcast)
	return h
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve registers conn and blocks until the client goes away.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.clientsChanged(count)
	h.log.Info("ws client connected", zap.Int("clients", count))

	c.enqueue(h.encode(Message{Type: TypeSnapshot, Data: h.trainer.Snapshot()}))

	go c.writePump()
	c.readPump()

	h.remove(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	count := len(h.clients)
	close(c.done)
	h.mu.Unlock()

	h.clientsChanged(count)
	h.log.Info("ws client disconnected", zap.Int("clients", count))
}

func (h *Hub) clientsChanged(n int) {
	if h.metrics != nil {
		h.metrics.Clients.Set(float64(n))
	}
}

func (h *Hub) broadcast(s session.Snapshot) {
	msg := h.encode(Message{Type: TypeSnapshot, Data: s})
	if msg == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.enqueue(msg)
	}
}

func (h *Hub) encode(m Message) []byte {
	b, err := json.Marshal(m)
	if err != nil {
		h.log.Error("encode message", zap.String("type", m.Type), zap.Error(err))
		return nil
	}
	return b
}
