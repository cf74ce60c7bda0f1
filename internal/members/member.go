// Package members implements conflict membership: the join table between
// users and conflicts, carrying the member's role and per-member flags.
package members

import (
	"time"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
)

// Member represents a user's participation in a conflict.
type Member struct {
	ConflictID       uuid.UUID  `json:"conflict_id"`
	UserID           uuid.UUID  `json:"user_id"`
	Role             authz.Role `json:"role"`
	DisplayName      string     `json:"display_name"`
	ReadyForDecision bool       `json:"ready_for_decision"`
	AppealUsed       bool       `json:"appeal_used"`
	JoinedAt         time.Time  `json:"joined_at"`
}

// JoinCommand carries the data needed to join a conflict under a vacant role.
type JoinCommand struct {
	Role        authz.Role `json:"role"`
	DisplayName string     `json:"display_name"`
}

// ReadyCommand carries the ready-for-decision flag update. Only the member's
// own row accepts it, and only for party roles.
type ReadyCommand struct {
	ReadyForDecision bool `json:"ready_for_decision"`
}
