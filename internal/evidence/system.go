package evidence

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
)

// System defines the public contract for evidence operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// ListForInput returns attachments on an input the caller may see.
	ListForInput(ctx context.Context, p authz.Principal, inputID uuid.UUID) ([]Evidence, error)

	// Find returns attachment metadata, subject to the parent input's
	// visibility rules.
	Find(ctx context.Context, p authz.Principal, id uuid.UUID) (*Evidence, error)

	// Upload attaches a file to an input. Only the input's author may
	// attach, and only while the conflict is collecting.
	Upload(ctx context.Context, p authz.Principal, inputID uuid.UUID, cmd UploadCommand) (*Evidence, error)

	// Open streams the blob for an attachment the caller may see. The
	// caller must close the returned body.
	Open(ctx context.Context, p authz.Principal, id uuid.UUID) (*Evidence, io.ReadCloser, error)
}
