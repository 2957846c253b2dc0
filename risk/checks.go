package risk

import "fmt"

type Status string

const (
	Good    Status = "Good"
	Warning Status = "Warning"
	Bad     Status = "Bad"
)

type Violation struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

type Decision struct {
	Status     Status      `json:"status"`
	Violations []Violation `json:"violations,omitempty"`

	RR         float64 `json:"rr"`
	RiskAmount float64 `json:"risk_amount"`
	RiskPct    float64 `json:"risk_pct"`
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Status = Bad
}

// TicketInput is a draft order as entered by the trainee.
type TicketInput struct {
	Lot     float64
	SLPips  float64
	TPPips  float64
	Balance float64
}

// CheckTicket grades a draft ticket. Any violation makes it Bad; a ticket
// with no violation is Good when both the RR and risk targets are met and
// Warning otherwise.
func CheckTicket(p Policy, in TicketInput) Decision {
	d := Decision{
		RR:         RR(in.SLPips, in.TPPips),
		RiskAmount: RiskAmount(in.Lot, in.SLPips, p.ProfitPerPipPerLot),
	}
	d.RiskPct = RiskPct(d.RiskAmount, in.Balance)

	if in.SLPips < p.MinStopPips {
		d.add("STOP_TOO_TIGHT",
			fmt.Sprintf("stop %.0f pips below minimum %.0f", in.SLPips, p.MinStopPips))
	}
	if d.RR < p.MinRR {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %.2f below minimum %.2f", d.RR, p.MinRR))
	}
	if d.RiskPct > p.MaxRiskPct {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("risk %.1f%% exceeds max %.1f%%", d.RiskPct, p.MaxRiskPct))
	}

	if len(d.Violations) > 0 {
		return d
	}
	if d.RR >= p.GoodRR && d.RiskPct <= p.GoodRiskPct {
		d.Status = Good
	} else {
		d.Status = Warning
	}
	return d
}
