package users

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for identity operations.
type System interface {
	Handler() *Handler

	Find(ctx context.Context, id uuid.UUID) (*User, error)
	// Provision inserts a user row for the given phone hash, or returns the
	// existing row when the hash is already registered.
	Provision(ctx context.Context, phoneHash, lang string) (*User, error)
	UpdateLang(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error)
}
