package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
)

// Recorder appends audit entries. Recording failures are logged, never
// propagated: an audit write must not fail the operation it describes.
type Recorder interface {
	Record(ctx context.Context, conflictID, userID *uuid.UUID, event string, meta map[string]any)
}

type recorder struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a database-backed audit recorder.
func New(db *sql.DB, logger *slog.Logger) Recorder {
	return &recorder{
		db:     db,
		logger: logger.With("system", "audit"),
	}
}

func (r *recorder) Record(
	ctx context.Context,
	conflictID, userID *uuid.UUID,
	event string,
	meta map[string]any,
) {
	if meta == nil {
		meta = map[string]any{}
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		r.logger.Error("audit meta marshal failed", "event", event, "error", err)
		return
	}

	_, err = r.db.ExecContext(
		ctx,
		"INSERT INTO audit_log (conflict_id, user_id, event, meta) VALUES ($1, $2, $3, $4)",
		conflictID, userID, event, payload,
	)
	if err != nil {
		r.logger.Error("audit record failed", "event", event, "error", err)
	}
}
