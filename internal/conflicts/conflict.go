// Package conflicts implements the dispute case registry. A conflict is
// owned by its creator and advances through a fixed, forward-only lifecycle:
// collecting → reviewing → decided → appeal → final.
package conflicts

import (
	"time"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
)

// Status is a conflict lifecycle stage.
type Status string

const (
	StatusCollecting Status = "collecting"
	StatusReviewing  Status = "reviewing"
	StatusDecided    Status = "decided"
	StatusAppeal     Status = "appeal"
	StatusFinal      Status = "final"
)

var statusRank = map[Status]int{
	StatusCollecting: 0,
	StatusReviewing:  1,
	StatusDecided:    2,
	StatusAppeal:     3,
	StatusFinal:      4,
}

// Valid reports whether s is a known lifecycle stage.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving from one stage to another is allowed.
// Only the enumerated lifecycle edges are valid; a conflict never returns to
// an earlier stage and never skips one, except that a decided conflict goes
// straight to final when nobody appeals.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusCollecting:
		return to == StatusReviewing
	case StatusReviewing:
		return to == StatusDecided
	case StatusDecided:
		return to == StatusAppeal || to == StatusFinal
	case StatusAppeal:
		return to == StatusFinal
	default:
		return false
	}
}

// Conflict represents a dispute case.
type Conflict struct {
	ID          uuid.UUID  `json:"id"`
	CreatorID   *uuid.UUID `json:"creator_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Summary is a conflict row joined with the caller's own membership,
// used for listing the conflicts a user participates in.
type Summary struct {
	Conflict
	CallerRole authz.Role `json:"caller_role"`
	MemberID   uuid.UUID  `json:"-"`
}

// CreateCommand carries the data needed to open a conflict. The creator
// joins in the same transaction under Role, which must be a party role.
type CreateCommand struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	Role        authz.Role `json:"role"`
	DisplayName string     `json:"display_name"`
}

// StatusCommand carries an explicit lifecycle transition request.
type StatusCommand struct {
	Status Status `json:"status"`
}
