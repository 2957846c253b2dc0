package pricing

// TickHistory keeps the most recent tick prices, oldest first.
type TickHistory struct {
	limit  int
	prices []float64
}

func NewTickHistory(limit int) *TickHistory {
	if limit < 1 {
		limit = 1
	}
	return &TickHistory{limit: limit, prices: make([]float64, 0, limit+1)}
}

func (h *TickHistory) Add(p float64) {
	h.prices = append(h.prices, p)
	if len(h.prices) > h.limit {
		h.prices = h.prices[1:]
	}
}

// Reset replaces the history with the tail of prices.
func (h *TickHistory) Reset(prices []float64) {
	if len(prices) > h.limit {
		prices = prices[len(prices)-h.limit:]
	}
	h.prices = append(h.prices[:0], prices...)
}

func (h *TickHistory) Len() int { return len(h.prices) }

// First returns the oldest retained price.
func (h *TickHistory) First() (float64, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}

// ChangePercent is the percent move from the oldest retained price to p.
// With no history it is 0.
func (h *TickHistory) ChangePercent(p float64) float64 {
	first, ok := h.First()
	if !ok || first == 0 {
		return 0
	}
	return (p - first) / first * 100
}
