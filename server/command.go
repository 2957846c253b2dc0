package server

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/fxtrainer/market"
	"github.com/rustyeddy/fxtrainer/session"
	"github.com/rustyeddy/fxtrainer/sim"
)

// Command is a client request read from the websocket.
type Command struct {
	Cmd       string  `json:"cmd"`
	Side      string  `json:"side,omitempty"`
	Lot       float64 `json:"lot,omitempty"`
	SL        float64 `json:"sl,omitempty"`
	TP        float64 `json:"tp,omitempty"`
	ID        int64   `json:"id,omitempty"`
	Timeframe string  `json:"timeframe,omitempty"`
}

// Message is every frame the server writes.
type Message struct {
	Type   string `json:"type"`
	Cmd    string `json:"cmd,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	TypeSnapshot = "snapshot"
	TypeAck      = "ack"
	TypeError    = "error"
)

var ErrUnknownCommand = errors.New("unknown command")

var commands = map[string]bool{
	"open":      true,
	"close":     true,
	"close_all": true,
	"modify":    true,
	"timeframe": true,
	"ticket":    true,
}

// commandLabel bounds the metric label set to known commands.
func commandLabel(cmd string) string {
	if commands[cmd] {
		return cmd
	}
	return "unknown"
}

// Execute runs c against tr and returns the reply to send back.
func Execute(tr *session.Trainer, c Command) Message {
	data, err := execute(tr, c)
	if err != nil {
		msg := Message{Type: TypeError, Cmd: c.Cmd, Error: err.Error()}
		var rej *sim.RejectError
		if errors.As(err, &rej) {
			msg.Reason = string(rej.Reason)
		}
		return msg
	}
	return Message{Type: TypeAck, Cmd: c.Cmd, Data: data}
}

func execute(tr *session.Trainer, c Command) (any, error) {
	switch c.Cmd {
	case "open":
		side, err := market.ParseSide(c.Side)
		if err != nil {
			return nil, err
		}
		return tr.Open(side, c.Lot, c.SL, c.TP)

	case "close":
		ct, ok := tr.CloseByID(c.ID)
		if !ok {
			return nil, fmt.Errorf("position %d not found", c.ID)
		}
		return ct, nil

	case "close_all":
		return tr.CloseAll(), nil

	case "modify":
		if err := tr.Modify(c.ID, c.SL, c.TP); err != nil {
			return nil, err
		}
		return nil, nil

	case "timeframe":
		if err := tr.SetTimeframe(c.Timeframe); err != nil {
			return nil, err
		}
		return tr.Timeframe(), nil

	case "ticket":
		return tr.SetTicket(session.Ticket{Lot: c.Lot, SLPips: c.SL, TPPips: c.TP}), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, c.Cmd)
	}
}
