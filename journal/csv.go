package journal

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// CSV appends trades and equity snapshots to two CSV files. The header row
// is written with the first record of each file.
type CSV struct {
	tf, ef       *os.File
	tradesHeader bool
	equityHeader bool
}

func NewCSV(tradesPath, equityPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", tradesPath, err)
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		_ = tf.Close()
		return nil, fmt.Errorf("create %s: %w", equityPath, err)
	}
	return &CSV{tf: tf, ef: ef}, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	rows := []TradeRecord{t}
	if !j.tradesHeader {
		j.tradesHeader = true
		return gocsv.Marshal(&rows, j.tf)
	}
	return gocsv.MarshalWithoutHeaders(&rows, j.tf)
}

func (j *CSV) RecordEquity(e EquitySnapshot) error {
	rows := []EquitySnapshot{e}
	if !j.equityHeader {
		j.equityHeader = true
		return gocsv.Marshal(&rows, j.ef)
	}
	return gocsv.MarshalWithoutHeaders(&rows, j.ef)
}

func (j *CSV) Close() error {
	if err := j.tf.Close(); err != nil {
		_ = j.ef.Close()
		return err
	}
	return j.ef.Close()
}

// ReadTradesCSV loads a trades file written by CSV.
func ReadTradesCSV(path string) ([]TradeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []TradeRecord
	if err := gocsv.UnmarshalFile(f, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}
