package conflicts

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/pagination"
)

// System defines the public contract for conflict operations. Guarded
// operations take the caller principal explicitly; Advance is the privileged
// transition path used by server-side systems.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		p authz.Principal,
		page pagination.PageRequest,
	) (*pagination.PageResult[Summary], error)

	Find(ctx context.Context, p authz.Principal, id uuid.UUID) (*Conflict, error)
	Create(ctx context.Context, p authz.Principal, cmd CreateCommand) (*Conflict, error)
	SetStatus(ctx context.Context, p authz.Principal, id uuid.UUID, cmd StatusCommand) (*Conflict, error)

	// Advance moves a conflict from one stage to the next without a caller
	// principal. It is invoked only by trusted server-side logic (readiness
	// rollover, the arbitration engine) and still honors forward-only
	// progression via its atomic from-state precondition.
	Advance(ctx context.Context, id uuid.UUID, from, to Status) error
}
