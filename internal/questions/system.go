package questions

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
)

// System defines the public contract for question operations.
type System interface {
	Handler() *Handler

	// ListForConflict returns the questions the caller may see: everything
	// for the arbiter, otherwise only questions addressed to the caller.
	ListForConflict(ctx context.Context, p authz.Principal, conflictID uuid.UUID) ([]Question, error)

	Ask(ctx context.Context, p authz.Principal, conflictID uuid.UUID, cmd AskCommand) (*Question, error)
	Answer(ctx context.Context, p authz.Principal, id uuid.UUID, cmd AnswerCommand) (*Question, error)

	// Issue creates a question without a caller guard, for the arbitration
	// engine's clarification round.
	Issue(ctx context.Context, conflictID, toUserID uuid.UUID, text string) (*Question, error)

	// AnsweredForConflict returns all answered questions of a conflict for
	// trusted server-side logic.
	AnsweredForConflict(ctx context.Context, conflictID uuid.UUID) ([]Question, error)
}
