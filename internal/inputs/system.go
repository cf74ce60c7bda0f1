package inputs

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
)

// System defines the public contract for input operations.
type System interface {
	Handler() *Handler

	// ListForConflict returns the inputs the caller may see within a
	// conflict, filtered by the role visibility rules.
	ListForConflict(ctx context.Context, p authz.Principal, conflictID uuid.UUID) ([]Input, error)

	Find(ctx context.Context, p authz.Principal, id uuid.UUID) (*Input, error)
	Create(ctx context.Context, p authz.Principal, conflictID uuid.UUID, cmd CreateCommand) (*Input, error)
	Update(ctx context.Context, p authz.Principal, id uuid.UUID, cmd UpdateCommand) (*Input, error)

	// AllForConflict returns every input of a conflict without a caller
	// guard, for trusted server-side logic such as the arbitration engine.
	AllForConflict(ctx context.Context, conflictID uuid.UUID) ([]Input, error)
}
