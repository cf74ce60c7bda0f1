// Package audit implements the append-only event stream for dispute activity.
// Entries are written exclusively by trusted server-side systems; no HTTP
// route reads or writes the audit log, for any caller, in any role.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a single audit event scoped to a conflict and, optionally, a user.
type Entry struct {
	ID         uuid.UUID
	ConflictID *uuid.UUID
	UserID     *uuid.UUID
	Event      string
	Meta       map[string]any
	CreatedAt  time.Time
}

// Event names recorded by the domain systems.
const (
	EventUserVerified     = "user.verified"
	EventConflictCreated  = "conflict.created"
	EventStatusChanged    = "conflict.status_changed"
	EventMemberJoined     = "member.joined"
	EventMemberReady      = "member.ready"
	EventAppealUsed       = "member.appeal_used"
	EventInputCreated     = "input.created"
	EventInputUpdated     = "input.updated"
	EventEvidenceUploaded = "evidence.uploaded"
	EventQuestionAsked    = "question.asked"
	EventQuestionAnswered = "question.answered"
	EventDecisionRecorded = "decision.recorded"
)
