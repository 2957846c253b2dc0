package pricing

// Source supplies uniform random numbers in [0, 1). *math/rand.Rand
// satisfies it; tests script exact sequences.
type Source interface {
	Float64() float64
}

// ScriptedSource replays a fixed sequence of values, cycling when exhausted.
type ScriptedSource struct {
	Values []float64
	pos    int
}

func (s *ScriptedSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}
