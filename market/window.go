package market

// CandleWindow is a fixed capacity, oldest-first rolling window of candles.
// Pushing beyond capacity evicts the oldest candle.
type CandleWindow struct {
	capacity int
	candles  []Candle
}

func NewCandleWindow(capacity int) *CandleWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &CandleWindow{
		capacity: capacity,
		candles:  make([]Candle, 0, capacity+1),
	}
}

func (w *CandleWindow) Capacity() int { return w.capacity }

func (w *CandleWindow) Len() int { return len(w.candles) }

// Push appends c and evicts the oldest candle if the window is over capacity.
// It reports whether an eviction happened.
func (w *CandleWindow) Push(c Candle) bool {
	w.candles = append(w.candles, c)
	if len(w.candles) > w.capacity {
		copy(w.candles, w.candles[1:])
		w.candles = w.candles[:len(w.candles)-1]
		return true
	}
	return false
}

// Last returns the forming candle, or nil for an empty window.
func (w *CandleWindow) Last() *Candle {
	if len(w.candles) == 0 {
		return nil
	}
	return &w.candles[len(w.candles)-1]
}

// Candles returns a copy of the window, oldest first.
func (w *CandleWindow) Candles() []Candle {
	out := make([]Candle, len(w.candles))
	copy(out, w.candles)
	return out
}
