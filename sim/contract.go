package sim

import (
	"errors"
	"math"
)

// Contract holds the fixed trading constants of a session.
type Contract struct {
	LotValue          float64 `json:"lot_value" yaml:"lot_value"`
	PipValue          float64 `json:"pip_value" yaml:"pip_value"`
	MarginRequirement float64 `json:"margin_requirement" yaml:"margin_requirement"`
	MinLot            float64 `json:"min_lot" yaml:"min_lot"`
	MaxLot            float64 `json:"max_lot" yaml:"max_lot"`
	PipProfitPerLot   float64 `json:"pip_profit_per_lot" yaml:"pip_profit_per_lot"`
}

func DefaultContract() Contract {
	return Contract{
		LotValue:          100000,
		PipValue:          0.01,
		MarginRequirement: 0.01,
		MinLot:            0.01,
		MaxLot:            10,
		PipProfitPerLot:   100,
	}
}

func (c Contract) Validate() error {
	if c.LotValue <= 0 {
		return errors.New("lot_value must be > 0")
	}
	if c.PipValue <= 0 {
		return errors.New("pip_value must be > 0")
	}
	if c.MarginRequirement <= 0 || c.MarginRequirement > 1 {
		return errors.New("margin_requirement must be in (0, 1]")
	}
	if c.MinLot <= 0 {
		return errors.New("min_lot must be > 0")
	}
	if c.MaxLot < c.MinLot {
		return errors.New("max_lot must be >= min_lot")
	}
	if c.PipProfitPerLot <= 0 {
		return errors.New("pip_profit_per_lot must be > 0")
	}
	return nil
}

// RequiredMargin is the margin reserved by a position of the given lot size.
func (c Contract) RequiredMargin(lot float64) float64 {
	return lot * c.LotValue * c.MarginRequirement
}

// ValidLot reports whether lot is a finite value in [MinLot, MaxLot].
func (c Contract) ValidLot(lot float64) bool {
	if math.IsNaN(lot) || math.IsInf(lot, 0) {
		return false
	}
	return lot >= c.MinLot && lot <= c.MaxLot
}
