// Package evidence manages file attachments on inputs. Blobs live in
// object storage under a per-attachment key; metadata rows live in the
// evidence table and follow the parent input's visibility.
package evidence

import (
	"time"

	"github.com/google/uuid"
)

// Evidence represents a file attached to an input.
type Evidence struct {
	ID          uuid.UUID `json:"id"`
	InputID     uuid.UUID `json:"input_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count,omitempty"`
	StorageKey  string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadCommand carries the file payload and metadata for an attachment.
type UploadCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}