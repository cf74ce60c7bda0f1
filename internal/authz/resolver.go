package authz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Resolver looks up a caller's role within a conflict.
type Resolver interface {
	// MemberRole returns the role of userID in conflictID, or RoleNone when
	// the user is not a member. It reads membership with the service's own
	// database handle, so guard evaluation never depends on the caller's
	// row visibility.
	MemberRole(ctx context.Context, conflictID, userID uuid.UUID) (Role, error)
}

type resolver struct {
	db *sql.DB
}

// NewResolver creates a database-backed role resolver.
func NewResolver(db *sql.DB) Resolver {
	return &resolver{db: db}
}

func (r *resolver) MemberRole(ctx context.Context, conflictID, userID uuid.UUID) (Role, error) {
	var role string
	err := r.db.QueryRowContext(
		ctx,
		"SELECT role FROM conflict_members WHERE conflict_id = $1 AND user_id = $2",
		conflictID, userID,
	).Scan(&role)

	if errors.Is(err, sql.ErrNoRows) {
		return RoleNone, nil
	}
	if err != nil {
		return RoleNone, fmt.Errorf("resolve member role: %w", err)
	}

	return Role(role), nil
}
