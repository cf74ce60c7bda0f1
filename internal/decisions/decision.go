// Package decisions stores the verdict issued for a conflict. A conflict
// holds at most one decision row; an appeal revises it in place and bumps
// the iteration counter.
package decisions

import (
	"time"

	"github.com/google/uuid"
)

// Arbiter type values stored on a decision.
const (
	ArbiterAI    = "ai"
	ArbiterHuman = "human"
)

// Decision represents the verdict for a conflict.
type Decision struct {
	ConflictID   uuid.UUID `json:"conflict_id"`
	ArbiterType  string    `json:"arbiter_type"`
	DecisionText string    `json:"decision_text"`
	Confidence   float64   `json:"confidence"`
	Iteration    int       `json:"iteration"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecordCommand carries the data needed to write a verdict.
type RecordCommand struct {
	ArbiterType  string
	DecisionText string
	Confidence   float64
}

// ValidArbiterType reports whether the given arbiter type is supported.
func ValidArbiterType(t string) bool {
	return t == ArbiterAI || t == ArbiterHuman
}
