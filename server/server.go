// Package server exposes a trainer session over HTTP: a websocket feed of
// snapshots that also accepts commands, Prometheus metrics and a health
// probe.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxtrainer/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Server struct {
	Hub     *Hub
	Metrics *Metrics

	trainer  *session.Trainer
	registry *prometheus.Registry
	started  time.Time
	log      *zap.Logger
}

// New wires a hub and a private metrics registry to tr.
func New(tr *session.Trainer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.Attach(tr)

	return &Server{
		Hub:      NewHub(tr, m, log),
		Metrics:  m,
		trainer:  tr,
		registry: reg,
		started:  time.Now(),
		log:      log,
	}
}

// Handler returns the routes: /ws, /metrics and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade", zap.Error(err))
		return
	}
	s.Hub.Serve(conn)
}

type health struct {
	Status    string  `json:"status"`
	SessionID string  `json:"session_id"`
	Uptime    string  `json:"uptime"`
	Clients   int     `json:"clients"`
	Price     float64 `json:"price"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health{
		Status:    "ok",
		SessionID: s.trainer.ID(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Clients:   s.Hub.ClientCount(),
		Price:     s.trainer.CurrentPrice(),
	})
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
