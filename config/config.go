package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxtrainer/market"
	"github.com/rustyeddy/fxtrainer/pricing"
	"github.com/rustyeddy/fxtrainer/sim"
)

// Config is the complete trainer configuration.
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Contract   sim.Contract     `json:"contract" yaml:"contract"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Log        LogConfig        `json:"log" yaml:"log"`
	Server     ServerConfig     `json:"server" yaml:"server"`
}

type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// SimulationConfig holds the random walk and scheduler settings.
type SimulationConfig struct {
	Walk pricing.WalkParams `json:"walk" yaml:"walk"`

	TickInterval   string `json:"tick_interval" yaml:"tick_interval"`     // e.g. "500ms"
	CandleInterval string `json:"candle_interval" yaml:"candle_interval"` // e.g. "15s"

	WindowCapacity int    `json:"window_capacity" yaml:"window_capacity"`
	HistoryCandles int    `json:"history_candles" yaml:"history_candles"`
	Timeframe      string `json:"timeframe" yaml:"timeframe"`

	// Seed of the random walk; 0 picks one from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Intervals parses the fast and slow tick cadences.
func (s SimulationConfig) Intervals() (tick, candle time.Duration, err error) {
	tick, err = time.ParseDuration(s.TickInterval)
	if err != nil {
		return 0, 0, fmt.Errorf("simulation.tick_interval: %w", err)
	}
	candle, err = time.ParseDuration(s.CandleInterval)
	if err != nil {
		return 0, 0, fmt.Errorf("simulation.candle_interval: %w", err)
	}
	return tick, candle, nil
}

type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
	Console    bool   `json:"console" yaml:"console"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// LoadFromFile reads a config file over Default and validates the result.
// Paths ending in .json decode as JSON; anything else decodes as YAML.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	decode := yaml.Unmarshal
	if filepath.Ext(path) == ".json" {
		decode = json.Unmarshal
	}
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate reports the first field that would break a session.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency: empty")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance: %.2f is not above zero", c.Account.Balance)
	}
	if err := c.Contract.Validate(); err != nil {
		return fmt.Errorf("contract: %w", err)
	}
	if err := c.Simulation.Walk.Validate(); err != nil {
		return fmt.Errorf("simulation.walk: %w", err)
	}

	tick, candle, err := c.Simulation.Intervals()
	if err != nil {
		return err
	}
	if tick <= 0 || candle <= 0 {
		return fmt.Errorf("simulation intervals must be positive")
	}
	if candle < tick {
		return fmt.Errorf("simulation.candle_interval must not be shorter than tick_interval")
	}
	if c.Simulation.WindowCapacity < 1 {
		return fmt.Errorf("simulation.window_capacity must be positive")
	}
	if c.Simulation.HistoryCandles < 0 || c.Simulation.HistoryCandles > c.Simulation.WindowCapacity {
		return fmt.Errorf("simulation.history_candles must be between 0 and window_capacity")
	}
	if _, _, err := market.ParseTimeframe(c.Simulation.Timeframe); err != nil {
		return fmt.Errorf("simulation.timeframe: %w", err)
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal: csv needs trades_file and equity_file")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal: sqlite needs db_path")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr: empty")
	}
	return nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Balance:  10000,
		},
		Contract: sim.DefaultContract(),
		Simulation: SimulationConfig{
			Walk:           pricing.DefaultWalkParams(),
			TickInterval:   "500ms",
			CandleInterval: "15s",
			WindowCapacity: 100,
			HistoryCandles: 50,
			Timeframe:      market.DefaultTimeframe,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./trainer.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
