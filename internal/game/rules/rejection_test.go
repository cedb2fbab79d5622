package rules

import (
	"errors"
	"fmt"
	"testing"
)

func TestRejectf(t *testing.T) {
	err := Rejectf(RejectInsufficientMana, "need %d mana, have %d", 5, 3)

	if CodeOf(err) != RejectInsufficientMana {
		t.Errorf("expected code INSUFFICIENT_MANA, got %s", CodeOf(err))
	}
	want := "INSUFFICIENT_MANA: need 5 mana, have 3"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestCodeOfWrappedError(t *testing.T) {
	inner := Rejectf(RejectOutOfRange, "distance 4 exceeds reach 1")
	wrapped := fmt.Errorf("attack failed: %w", inner)

	if CodeOf(wrapped) != RejectOutOfRange {
		t.Errorf("expected OUT_OF_RANGE through wrapping, got %s", CodeOf(wrapped))
	}
	if !IsRejection(wrapped) {
		t.Error("expected wrapped rejection to be recognized")
	}
}

func TestCodeOfPlainError(t *testing.T) {
	err := errors.New("disk on fire")

	if CodeOf(err) != "" {
		t.Errorf("expected empty code for plain error, got %s", CodeOf(err))
	}
	if IsRejection(err) {
		t.Error("plain error must not be a rejection")
	}
	if IsRejection(nil) {
		t.Error("nil must not be a rejection")
	}
}
