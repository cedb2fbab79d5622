package ai

import (
	"fmt"
	"strings"
)

// Weights are the named tuning knobs of the planner. AttackTower and
// ProtectMinions drive the movement scoring; the remaining knobs are
// reserved for future scoring terms and kept so difficulty presets stay
// stable as terms are added.
type Weights struct {
	AttackTower    float64
	ClearMinions   float64
	ProtectMinions float64
	PlayHighValue  float64
	ManaEfficiency float64
}

// Normal returns the baseline weights.
func Normal() Weights {
	return Weights{
		AttackTower:    1.0,
		ClearMinions:   1.0,
		ProtectMinions: 1.0,
		PlayHighValue:  1.0,
		ManaEfficiency: 1.0,
	}
}

// Easy lowers every aggression and defense weight.
func Easy() Weights {
	return Weights{
		AttackTower:    0.5,
		ClearMinions:   0.5,
		ProtectMinions: 0.5,
		PlayHighValue:  0.5,
		ManaEfficiency: 0.5,
	}
}

// Hard raises every aggression and defense weight.
func Hard() Weights {
	return Weights{
		AttackTower:    1.5,
		ClearMinions:   1.5,
		ProtectMinions: 1.5,
		PlayHighValue:  1.5,
		ManaEfficiency: 1.5,
	}
}

// ForDifficulty maps a difficulty selector string onto a weight preset.
func ForDifficulty(difficulty string) (Weights, error) {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy":
		return Easy(), nil
	case "", "normal":
		return Normal(), nil
	case "hard":
		return Hard(), nil
	}
	return Weights{}, fmt.Errorf("unknown difficulty %q", difficulty)
}
