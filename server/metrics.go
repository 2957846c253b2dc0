package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rustyeddy/fxtrainer/session"
	"github.com/rustyeddy/fxtrainer/sim"
)

// Metrics holds the Prometheus collectors fed by a trainer session.
type Metrics struct {
	Updates       prometheus.Counter
	Trades        *prometheus.CounterVec // labels: reason
	TradePL       prometheus.Histogram
	Balance       prometheus.Gauge
	Equity        prometheus.Gauge
	OpenPositions prometheus.Gauge
	Price         prometheus.Gauge
	Clients       prometheus.Gauge
	Commands      *prometheus.CounterVec // labels: cmd, result
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trainer_updates_total",
			Help: "Snapshots published by the session (ticks and commands)",
		}),
		Trades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trainer_trades_closed_total",
			Help: "Closed trades by close reason",
		}, []string{"reason"}),
		TradePL: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trainer_trade_profit",
			Help:    "Realized profit per closed trade",
			Buckets: []float64{-5000, -2000, -1000, -500, -100, 0, 100, 500, 1000, 2000, 5000},
		}),
		Balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainer_balance",
			Help: "Account balance",
		}),
		Equity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainer_equity",
			Help: "Account equity (balance + open P/L)",
		}),
		OpenPositions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainer_open_positions",
			Help: "Number of open positions",
		}),
		Price: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainer_price",
			Help: "Current simulated price",
		}),
		Clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainer_ws_clients",
			Help: "Connected websocket clients",
		}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trainer_commands_total",
			Help: "Websocket commands by name and result",
		}, []string{"cmd", "result"}),
	}

	reg.MustRegister(
		m.Updates,
		m.Trades,
		m.TradePL,
		m.Balance,
		m.Equity,
		m.OpenPositions,
		m.Price,
		m.Clients,
		m.Commands,
	)
	return m
}

// ObserveSnapshot updates the gauges from s.
func (m *Metrics) ObserveSnapshot(s session.Snapshot) {
	m.Updates.Inc()
	m.Balance.Set(s.Metrics.Balance)
	m.Equity.Set(s.Metrics.Equity)
	m.OpenPositions.Set(float64(len(s.Positions)))
	m.Price.Set(s.Price)
}

// ObserveTrade counts a closed trade.
func (m *Metrics) ObserveTrade(ct sim.ClosedTrade) {
	m.Trades.WithLabelValues(string(ct.Reason)).Inc()
	m.TradePL.Observe(ct.Profit)
}

// Attach subscribes m to the session's snapshots and closed trades.
func (m *Metrics) Attach(tr *session.Trainer) {
	tr.Subscribe(m.ObserveSnapshot)
	tr.OnTrade(m.ObserveTrade)
}
