package market

import (
	"fmt"
	"strings"
)

// Side is the direction of a position.
type Side int

const (
	Long Side = iota + 1
	Short
)

func (s Side) String() string {
	switch s {
	case Long:
		return "BUY"
	case Short:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Sign is +1 for Long and -1 for Short.
func (s Side) Sign() float64 {
	if s == Short {
		return -1
	}
	return 1
}

// ParseSide accepts BUY/LONG and SELL/SHORT in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "LONG":
		return Long, nil
	case "SELL", "SHORT":
		return Short, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func (s Side) MarshalText() ([]byte, error) {
	if s != Long && s != Short {
		return nil, fmt.Errorf("invalid side %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
