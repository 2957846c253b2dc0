package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRAINER_"

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped; variables already set are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields of c from TRAINER_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	float := func(name string, dst *float64) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = f
		return nil
	}

	if err := float("BALANCE", &c.Account.Balance); err != nil {
		return err
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Simulation.Seed = n
	}
	str("TICK_INTERVAL", &c.Simulation.TickInterval)
	str("CANDLE_INTERVAL", &c.Simulation.CandleInterval)
	str("TIMEFRAME", &c.Simulation.Timeframe)
	str("JOURNAL_TYPE", &c.Journal.Type)
	str("DB_PATH", &c.Journal.DBPath)
	str("TRADES_FILE", &c.Journal.TradesFile)
	str("EQUITY_FILE", &c.Journal.EquityFile)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	str("ADDR", &c.Server.Addr)
	return nil
}
