package sim

import (
	"github.com/rustyeddy/fxtrainer/market"
)

// levels returns the absolute stop and target prices for a position entered
// at entry.
func (c Contract) levels(side market.Side, entry, slPips, tpPips float64) (sl, tp float64) {
	sign := side.Sign()
	sl = market.Round2(entry - sign*slPips*c.PipValue)
	tp = market.Round2(entry + sign*tpPips*c.PipValue)
	return sl, tp
}

// mark revalues p at price.
func (c Contract) mark(p *Position, price float64) {
	p.CurrentPrice = price
	diff := p.Side.Sign() * (price - p.EntryPrice)
	p.Pips = market.Round2(diff / c.PipValue)
	p.Profit = market.Round2(p.Pips * p.LotSize * c.PipProfitPerLot)
}
