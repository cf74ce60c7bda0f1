package evidence

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/audit"
	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/inputs"
	"github.com/arbiterhq/arbiter/pkg/repository"
	"github.com/arbiterhq/arbiter/pkg/storage"
)

const evidenceColumns = "id, input_id, filename, content_type, size_bytes, page_count, storage_key, created_at"

type repo struct {
	db       *sql.DB
	storage  storage.System
	inputs   inputs.System
	recorder audit.Recorder
	logger   *slog.Logger
}

// New creates an evidence repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	inputSys inputs.System,
	recorder audit.Recorder,
	logger *slog.Logger,
) System {
	return &repo{
		db:       db,
		storage:  store,
		inputs:   inputSys,
		recorder: recorder,
		logger:   logger.With("system", "evidence"),
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, maxUploadSize)
}

func (r *repo) ListForInput(
	ctx context.Context,
	p authz.Principal,
	inputID uuid.UUID,
) ([]Evidence, error) {
	// Visibility of attachments follows the parent input. A caller who
	// cannot see the input sees no evidence either.
	if _, err := r.inputs.Find(ctx, p, inputID); err != nil {
		if errors.Is(err, inputs.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	q := "SELECT " + evidenceColumns + " FROM evidence WHERE input_id = $1 ORDER BY created_at"

	items, err := repository.QueryMany(ctx, r.db, q, []any{inputID}, scanEvidence)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, p authz.Principal, id uuid.UUID) (*Evidence, error) {
	ev, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.inputs.Find(ctx, p, ev.InputID); err != nil {
		if errors.Is(err, inputs.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return ev, nil
}

func (r *repo) Upload(
	ctx context.Context,
	p authz.Principal,
	inputID uuid.UUID,
	cmd UploadCommand,
) (*Evidence, error) {
	if len(cmd.Data) == 0 || cmd.Filename == "" {
		return nil, ErrInvalidFile
	}

	in, err := r.inputs.Find(ctx, p, inputID)
	if err != nil {
		if errors.Is(err, inputs.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.AuthorID == nil || *in.AuthorID != p.UserID {
		return nil, authz.ErrDenied
	}

	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload evidence blob: %w", err)
	}

	// The collecting-stage precondition rides inside the insert so a late
	// upload against a reviewing conflict matches zero rows.
	q := `
		INSERT INTO evidence (id, input_id, filename, content_type, size_bytes, page_count, storage_key)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE EXISTS (
			SELECT 1 FROM inputs i
			JOIN conflicts c ON c.id = i.conflict_id
			WHERE i.id = $2 AND c.status = 'collecting'
		)
		RETURNING ` + evidenceColumns

	insertArgs := []any{
		id,
		inputID,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
	}

	ev, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanEvidence)
	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrStageClosed, ErrDuplicate)
	}

	r.recorder.Record(ctx, &in.ConflictID, &p.UserID, audit.EventEvidenceUploaded, map[string]any{
		"evidence_id": ev.ID,
		"input_id":    inputID,
		"filename":    ev.Filename,
	})

	r.logger.Info("evidence uploaded", "id", ev.ID, "input", inputID, "filename", ev.Filename)
	return &ev, nil
}

func (r *repo) Open(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
) (*Evidence, io.ReadCloser, error) {
	ev, err := r.Find(ctx, p, id)
	if err != nil {
		return nil, nil, err
	}

	result, err := r.storage.Download(ctx, ev.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("download evidence blob: %w", err)
	}

	return ev, result.Body, nil
}

func (r *repo) load(ctx context.Context, id uuid.UUID) (*Evidence, error) {
	q := "SELECT " + evidenceColumns + " FROM evidence WHERE id = $1"

	ev, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanEvidence)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ev, nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("evidence/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "evidence"
	}
	return url.PathEscape(name)
}

func scanEvidence(s repository.Scanner) (Evidence, error) {
	var ev Evidence
	err := s.Scan(
		&ev.ID,
		&ev.InputID,
		&ev.Filename,
		&ev.ContentType,
		&ev.SizeBytes,
		&ev.PageCount,
		&ev.StorageKey,
		&ev.CreatedAt,
	)
	return ev, err
}
