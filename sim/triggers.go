package sim

import "github.com/rustyeddy/fxtrainer/market"

func hitStopLoss(p *Position, price float64) bool {
	if p.Side == market.Long {
		return price <= p.StopLossPrice
	}
	return price >= p.StopLossPrice
}

func hitTakeProfit(p *Position, price float64) bool {
	if p.Side == market.Long {
		return price >= p.TakeProfitPrice
	}
	return price <= p.TakeProfitPrice
}
