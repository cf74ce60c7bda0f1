// Package inputs implements evidence submissions: free-text statements from
// conflict members, editable only while the conflict is collecting.
package inputs

import (
	"time"

	"github.com/google/uuid"
)

// MaxContentLength bounds input content, mirroring the schema check.
const MaxContentLength = 5000

// Input represents a member's free-text submission within a conflict.
type Input struct {
	ID         uuid.UUID  `json:"id"`
	ConflictID uuid.UUID  `json:"conflict_id"`
	AuthorID   *uuid.UUID `json:"author_id"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to submit an input.
type CreateCommand struct {
	Content string `json:"content"`
}

// UpdateCommand carries an edit to an existing input.
type UpdateCommand struct {
	Content string `json:"content"`
}
