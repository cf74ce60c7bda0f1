package decisions

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
)

// System defines the public contract for decision operations.
type System interface {
	Handler() *Handler

	// Find returns the conflict's decision if the caller is a member.
	Find(ctx context.Context, p authz.Principal, conflictID uuid.UUID) (*Decision, error)

	// Record writes the first verdict for a conflict. A second record
	// for the same conflict fails with ErrDuplicate.
	Record(ctx context.Context, conflictID uuid.UUID, cmd RecordCommand) (*Decision, error)

	// Revise replaces the verdict after an appeal, bumping the iteration.
	Revise(ctx context.Context, conflictID uuid.UUID, cmd RecordCommand) (*Decision, error)
}
