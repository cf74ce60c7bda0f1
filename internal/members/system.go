package members

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
)

// System defines the public contract for membership operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, p authz.Principal, conflictID uuid.UUID) ([]Member, error)
	Join(ctx context.Context, p authz.Principal, conflictID uuid.UUID, cmd JoinCommand) (*Member, error)
	SetReady(ctx context.Context, p authz.Principal, conflictID uuid.UUID, cmd ReadyCommand) (*Member, error)
	UseAppeal(ctx context.Context, p authz.Principal, conflictID uuid.UUID) (*Member, error)

	// Roster returns all members of a conflict without a caller guard.
	// It serves trusted server-side logic such as the arbitration engine.
	Roster(ctx context.Context, conflictID uuid.UUID) ([]Member, error)
}
