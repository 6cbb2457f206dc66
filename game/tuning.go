package game

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tuning holds every knob of the spawn engine. Array fields are indexed by
// Category (mono, duo, trio, tetromino, pentomino, reward) or by Stage
// (early, mid, late). DefaultTuning returns the shipped literal tables; a
// YAML override is accepted for balance experiments.
type Tuning struct {
	// AttemptBudget bounds the piece-generation loop per hand refill.
	AttemptBudget int `yaml:"attemptBudget"`
	// StageMidAt and StageLateAt are the placement counts where the stage
	// advances.
	StageMidAt  int `yaml:"stageMidAt"`
	StageLateAt int `yaml:"stageLateAt"`
	// BagCapacity is the fixed FIFO bag size per category.
	BagCapacity [6]int `yaml:"bagCapacity"`
	// StageMultipliers scales category weights per stage: [stage][category].
	StageMultipliers [3][6]float64 `yaml:"stageMultipliers"`
	// GapBoostOne/Two/Near scale the bias applied per outstanding
	// near-complete line bucket.
	GapBoostOne  float64 `yaml:"gapBoostOne"`
	GapBoostTwo  float64 `yaml:"gapBoostTwo"`
	GapBoostNear float64 `yaml:"gapBoostNear"`
	// LockoutDivisor sets the lockout threshold: protection engages when
	// total empty cells drop below size*size/LockoutDivisor.
	LockoutDivisor int `yaml:"lockoutDivisor"`
	// LockoutMultipliers overrides category bias while lockout protection
	// is engaged, favoring small categories.
	LockoutMultipliers [6]float64 `yaml:"lockoutMultipliers"`
	// StageComplexityTarget is the per-stage average complexity the
	// diagnostic hand score measures deviation from.
	StageComplexityTarget [3]float64 `yaml:"stageComplexityTarget"`
}

// DefaultTuning returns the shipped spawn tables.
func DefaultTuning() Tuning {
	return Tuning{
		AttemptBudget: 12,
		StageMidAt:    6,
		StageLateAt:   18,
		BagCapacity:   [6]int{4, 4, 6, 8, 6, 4},
		StageMultipliers: [3][6]float64{
			{1.5, 1.4, 1.2, 1.0, 0.4, 0.2}, // early
			{1.0, 1.0, 1.1, 1.2, 0.9, 0.6}, // mid
			{0.7, 0.8, 1.0, 1.2, 1.2, 1.0}, // late
		},
		GapBoostOne:           0.5,
		GapBoostTwo:           0.4,
		GapBoostNear:          0.15,
		LockoutDivisor:        5,
		LockoutMultipliers:    [6]float64{4.0, 3.0, 1.5, 0.5, 0.15, 0.05},
		StageComplexityTarget: [3]float64{3, 5, 7},
	}
}

// Validate rejects tunings that would stall or divide by zero.
func (t Tuning) Validate() error {
	if t.AttemptBudget < HandSize {
		return fmt.Errorf("attemptBudget %d below hand size %d", t.AttemptBudget, HandSize)
	}
	if t.StageMidAt <= 0 || t.StageLateAt <= t.StageMidAt {
		return fmt.Errorf("stage thresholds %d/%d must be increasing", t.StageMidAt, t.StageLateAt)
	}
	if t.LockoutDivisor <= 0 {
		return fmt.Errorf("lockoutDivisor %d must be positive", t.LockoutDivisor)
	}
	for cat, capacity := range t.BagCapacity {
		if capacity <= 0 {
			return fmt.Errorf("bagCapacity[%s] must be positive", Category(cat))
		}
	}
	return nil
}

// StageFor derives the stage from the number of placements made.
func (t Tuning) StageFor(placements int) Stage {
	switch {
	case placements < t.StageMidAt:
		return StageEarly
	case placements < t.StageLateAt:
		return StageMid
	default:
		return StageLate
	}
}

// LoadTuning parses a YAML tuning override. Missing fields keep their
// default values.
func LoadTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}
