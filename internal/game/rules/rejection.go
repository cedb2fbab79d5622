package rules

import (
	"errors"
	"fmt"
)

// RejectCode classifies why the engine refused a player or AI intent.
// Rejections are ordinary results of play, never faults: the engine keeps
// running and the caller decides what to do next.
type RejectCode string

const (
	RejectInsufficientMana RejectCode = "INSUFFICIENT_MANA"
	RejectInvalidPlacement RejectCode = "INVALID_PLACEMENT"
	RejectOutOfRange       RejectCode = "OUT_OF_RANGE"
	RejectIllegalMove      RejectCode = "ILLEGAL_MOVE"
	RejectInvalidTarget    RejectCode = "INVALID_TARGET"
	RejectUnknownEffectKey RejectCode = "UNKNOWN_EFFECT_KEY"
	RejectNotYourTurn      RejectCode = "NOT_YOUR_TURN"
	RejectGameFinished     RejectCode = "GAME_FINISHED"
)

// Rejection is the error type returned for every refused intent.
// State is guaranteed untouched when a Rejection is returned.
type Rejection struct {
	Code   RejectCode
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Reason)
}

// Rejectf builds a Rejection with a formatted reason.
func Rejectf(code RejectCode, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the rejection code from an error, or empty string if the
// error is not a Rejection.
func CodeOf(err error) RejectCode {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Code
	}
	return ""
}

// IsRejection reports whether err is a rules rejection as opposed to an
// internal failure.
func IsRejection(err error) bool {
	var rej *Rejection
	return errors.As(err, &rej)
}
