package sim

import (
	"errors"
	"fmt"
)

type RejectReason string

const (
	InvalidSide        RejectReason = "InvalidSide"
	InvalidLotSize     RejectReason = "InvalidLotSize"
	MissingStopLoss    RejectReason = "MissingStopLoss"
	MissingTakeProfit  RejectReason = "MissingTakeProfit"
	InsufficientMargin RejectReason = "InsufficientMargin"
)

var (
	ErrInvalidSide        = errors.New("side must be long or short")
	ErrInvalidLotSize     = errors.New("invalid lot size")
	ErrMissingStopLoss    = errors.New("stop loss is required")
	ErrMissingTakeProfit  = errors.New("take profit is required")
	ErrInsufficientMargin = errors.New("insufficient margin")

	ErrInvalidAdjustment = errors.New("invalid stop loss or take profit adjustment")
)

// RejectError is returned by Open when a ticket is refused. The ledger is
// left untouched.
type RejectError struct {
	Reason RejectReason
	Detail string
}

func (e *RejectError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("order rejected: %s", e.Reason)
	}
	return fmt.Sprintf("order rejected: %s: %s", e.Reason, e.Detail)
}

// Is matches the sentinel error of the reject reason.
func (e *RejectError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *RejectError) sentinel() error {
	switch e.Reason {
	case InvalidSide:
		return ErrInvalidSide
	case InvalidLotSize:
		return ErrInvalidLotSize
	case MissingStopLoss:
		return ErrMissingStopLoss
	case MissingTakeProfit:
		return ErrMissingTakeProfit
	case InsufficientMargin:
		return ErrInsufficientMargin
	default:
		return nil
	}
}

func reject(reason RejectReason, format string, args ...any) *RejectError {
	return &RejectError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
