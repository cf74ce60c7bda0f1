// Package arbiter implements the decision engine. It assembles a dossier
// from the conflict's record, obtains a verdict either from the assigned
// human arbiter or from a language model, and drives the conflict to its
// next lifecycle stage.
package arbiter

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/decisions"
)

// DecideCommand requests a verdict for a conflict. For a human verdict
// the text and confidence come from the request; for an AI verdict they
// come from the model and the fields here are ignored.
type DecideCommand struct {
	ArbiterType  string  `json:"arbiter_type"`
	DecisionText string  `json:"decision_text"`
	Confidence   float64 `json:"confidence"`
}

// verdict is the JSON shape the model is instructed to answer with.
type verdict struct {
	DecisionText string  `json:"decision_text"`
	Confidence   float64 `json:"confidence"`
}

// System defines the public contract for the decision engine.
type System interface {
	Handler() *Handler

	// Decide produces and records a verdict. Only the conflict's arbiter
	// may invoke it, and only while the conflict is under review or appeal.
	Decide(ctx context.Context, p authz.Principal, conflictID uuid.UUID, cmd DecideCommand) (*decisions.Decision, error)
}
