package sim

import (
	"github.com/montanaflynn/stats"

	"github.com/rustyeddy/fxtrainer/market"
)

// HistoryStats summarizes the closed-trade log.
type HistoryStats struct {
	TotalTrades int     `json:"total_trades"`
	Winners     int     `json:"winners"`
	Losers      int     `json:"losers"`
	WinRate     float64 `json:"win_rate"`
	TotalPL     float64 `json:"total_pl"`
	AveragePL   float64 `json:"average_pl"`
	BestTrade   float64 `json:"best_trade"`
	WorstTrade  float64 `json:"worst_trade"`
	StdDevPL    float64 `json:"stddev_pl"`
}

// Stats computes HistoryStats over every closed trade. A trade wins when its
// profit is strictly positive.
func (l *Ledger) Stats() HistoryStats {
	return ComputeStats(l.closed)
}

func ComputeStats(trades []ClosedTrade) HistoryStats {
	var hs HistoryStats
	if len(trades) == 0 {
		return hs
	}

	profits := make(stats.Float64Data, 0, len(trades))
	for _, t := range trades {
		profits = append(profits, t.Profit)
		switch {
		case t.Profit > 0:
			hs.Winners++
		case t.Profit < 0:
			hs.Losers++
		}
	}
	hs.TotalTrades = len(trades)
	hs.WinRate = market.Round2(float64(hs.Winners) / float64(hs.TotalTrades) * 100)

	// errors only occur on empty input
	total, _ := profits.Sum()
	mean, _ := profits.Mean()
	best, _ := profits.Max()
	worst, _ := profits.Min()
	sd, _ := profits.StandardDeviationPopulation()

	hs.TotalPL = market.Round2(total)
	hs.AveragePL = market.Round2(mean)
	hs.BestTrade = best
	hs.WorstTrade = worst
	hs.StdDevPL = market.Round2(sd)
	return hs
}
