// Package coach turns indicators, price and account state into advisory
// trading guidance. Analyze is a pure function: identical inputs produce an
// identical Report.
package coach

import (
	"math"

	talib "github.com/markcheno/go-talib"

	"github.com/rustyeddy/fxtrainer/indicators"
	"github.com/rustyeddy/fxtrainer/market"
	"github.com/rustyeddy/fxtrainer/risk"
	"github.com/rustyeddy/fxtrainer/sim"
)

const (
	FastMAPeriod = 20
	SlowMAPeriod = 50

	RangeWindow    = 10
	ATRPeriod      = 14
	LowRangeMax    = 5.0
	MediumRangeMax = 10.0

	Overbought = 70.0
	Oversold   = 30.0
)

type Trend string

const (
	Uptrend   Trend = "UPTREND"
	Downtrend Trend = "DOWNTREND"
	Sideways  Trend = "SIDEWAYS"
)

type Strength string

const (
	Strong   Strength = "Strong"
	Moderate Strength = "Moderate"
	Weak     Strength = "Weak"
)

type Volatility string

const (
	VolatilityUnknown Volatility = "Unknown"
	VolatilityLow     Volatility = "Low"
	VolatilityMedium  Volatility = "Medium"
	VolatilityHigh    Volatility = "High"
)

type Input struct {
	Candles   []market.Candle
	Price     float64
	Positions []sim.Position
	Metrics   sim.Metrics
}

type Report struct {
	MA20        float64 `json:"ma20"`
	MA50        float64 `json:"ma50"`
	MA20Defined bool    `json:"ma20_defined"`
	MA50Defined bool    `json:"ma50_defined"`
	RSI         float64 `json:"rsi"`

	Trend        Trend      `json:"trend"`
	Strength     Strength   `json:"strength"`
	Volatility   Volatility `json:"volatility"`
	AverageRange float64    `json:"average_range"`
	ATR          float64    `json:"atr"`
	ATRDefined   bool       `json:"atr_defined"`

	Signals    []Signal    `json:"signals"`
	Steps      []Step      `json:"steps"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
	Risk       RiskPanel   `json:"risk"`
}

// Opportunity reports whether the guide detected a trade setup.
func (r Report) Opportunity() bool { return r.Suggestion != nil }

func Analyze(in Input) Report {
	var r Report

	r.MA20, r.MA20Defined = indicators.SMA(in.Candles, FastMAPeriod).Last()
	r.MA50, r.MA50Defined = indicators.SMA(in.Candles, SlowMAPeriod).Last()

	r.RSI = indicators.RSINeutral
	if v, ok := indicators.RSI(in.Candles, indicators.DefaultRSIPeriod).Last(); ok {
		r.RSI = v
	}

	r.Trend = trendOf(in.Price, r)
	r.Strength = strengthOf(r, in.Candles)
	r.Volatility, r.AverageRange = volatilityOf(in.Candles)
	r.ATR, r.ATRDefined = indicators.AverageTrueRange(in.Candles, ATRPeriod)

	r.Signals = signals(r)
	r.Steps, r.Suggestion = guide(r)
	r.Risk = riskPanel(in)
	return r
}

func trendOf(price float64, r Report) Trend {
	if !r.MA20Defined || !r.MA50Defined {
		return Sideways
	}
	switch {
	case price > r.MA20 && r.MA20 > r.MA50:
		return Uptrend
	case price < r.MA20 && r.MA20 < r.MA50:
		return Downtrend
	default:
		return Sideways
	}
}

// strengthOf grades an aligned trend by the MA spread against the dispersion
// of the last FastMAPeriod closes.
func strengthOf(r Report, candles []market.Candle) Strength {
	if r.Trend == Sideways {
		return Weak
	}
	closes := indicators.Closes(candles)
	if len(closes) < FastMAPeriod {
		return Moderate
	}

	sd := talib.StdDev(closes, FastMAPeriod, 1.0)
	dispersion := sd[len(sd)-1]
	if math.Abs(r.MA20-r.MA50) >= dispersion/2 {
		return Strong
	}
	return Moderate
}

func volatilityOf(candles []market.Candle) (Volatility, float64) {
	avg, ok := indicators.AverageRange(candles, RangeWindow)
	if !ok {
		return VolatilityUnknown, 0
	}
	switch {
	case avg < LowRangeMax:
		return VolatilityLow, avg
	case avg < MediumRangeMax:
		return VolatilityMedium, avg
	default:
		return VolatilityHigh, avg
	}
}

func riskPanel(in Input) RiskPanel {
	p := RiskPanel{
		FreeMargin:     in.Metrics.FreeMargin,
		SafeLot:        risk.SafeLot(in.Metrics.Balance),
		MarginUsagePct: market.Round2(risk.MarginUsagePct(in.Metrics.UsedMargin, in.Metrics.Balance)),
	}
	for _, pos := range in.Positions {
		switch pos.Side {
		case market.Long:
			p.LongCount++
			p.LongLots += pos.LotSize
		case market.Short:
			p.ShortCount++
			p.ShortLots += pos.LotSize
		}
	}
	p.LongLots = market.Round2(p.LongLots)
	p.ShortLots = market.Round2(p.ShortLots)
	return p
}

type RiskPanel struct {
	FreeMargin     float64 `json:"free_margin"`
	SafeLot        float64 `json:"safe_lot"`
	MarginUsagePct float64 `json:"margin_usage_pct"`
	LongCount      int     `json:"long_count"`
	LongLots       float64 `json:"long_lots"`
	ShortCount     int     `json:"short_count"`
	ShortLots      float64 `json:"short_lots"`
}
