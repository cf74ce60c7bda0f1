package inputs

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/audit"
	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

const inputColumns = "id, conflict_id, author_id, content, created_at, updated_at"

type repo struct {
	db       *sql.DB
	resolver authz.Resolver
	recorder audit.Recorder
	logger   *slog.Logger
}

// New creates an input repository implementing the System interface.
func New(
	db *sql.DB,
	resolver authz.Resolver,
	recorder audit.Recorder,
	logger *slog.Logger,
) System {
	return &repo{
		db:       db,
		resolver: resolver,
		recorder: recorder,
		logger:   logger.With("system", "inputs"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListForConflict(
	ctx context.Context,
	p authz.Principal,
	conflictID uuid.UUID,
) ([]Input, error) {
	role, err := r.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !role.Member() {
		return nil, ErrNotFound
	}

	// The SQL filter mirrors CanReadInput: the arbiter sees everything,
	// parties see party-authored rows plus their own, witnesses only their own.
	switch {
	case role == authz.RoleArbiter:
		return r.AllForConflict(ctx, conflictID)
	case role.IsParty():
		q := `
			SELECT ` + qualify("i", inputColumns) + `
			FROM inputs i
			LEFT JOIN conflict_members am
			  ON am.conflict_id = i.conflict_id AND am.user_id = i.author_id
			WHERE i.conflict_id = $1
			  AND (i.author_id = $2 OR am.role IN ('partyA', 'partyB'))
			ORDER BY i.created_at`

		items, err := repository.QueryMany(ctx, r.db, q, []any{conflictID, p.UserID}, scanInput)
		if err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}
		return items, nil
	default:
		q := "SELECT " + inputColumns + " FROM inputs WHERE conflict_id = $1 AND author_id = $2 ORDER BY created_at"

		items, err := repository.QueryMany(ctx, r.db, q, []any{conflictID, p.UserID}, scanInput)
		if err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}
		return items, nil
	}
}

func (r *repo) AllForConflict(ctx context.Context, conflictID uuid.UUID) ([]Input, error) {
	q := "SELECT " + inputColumns + " FROM inputs WHERE conflict_id = $1 ORDER BY created_at"

	items, err := repository.QueryMany(ctx, r.db, q, []any{conflictID}, scanInput)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, p authz.Principal, id uuid.UUID) (*Input, error) {
	in, authorRole, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := r.resolver.MemberRole(ctx, in.ConflictID, p.UserID)
	if err != nil {
		return nil, err
	}

	if !authz.CanReadInput(role, authorRole, isAuthor(in, p)) {
		return nil, ErrNotFound
	}

	return in, nil
}

func (r *repo) Create(
	ctx context.Context,
	p authz.Principal,
	conflictID uuid.UUID,
	cmd CreateCommand,
) (*Input, error) {
	if err := validateContent(cmd.Content); err != nil {
		return nil, err
	}

	role, err := r.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !authz.CanSubmitInput(role, true) {
		return nil, ErrNotFound
	}

	// The collecting-stage precondition rides inside the insert so a
	// concurrent status change cannot slip a late submission through.
	q := `
		INSERT INTO inputs (conflict_id, author_id, content)
		SELECT $1, $2, $3
		WHERE EXISTS (SELECT 1 FROM conflicts c WHERE c.id = $1 AND c.status = 'collecting')
		RETURNING ` + inputColumns

	in, err := repository.QueryOne(ctx, r.db, q, []any{conflictID, p.UserID, cmd.Content}, scanInput)
	if err != nil {
		return nil, repository.MapError(err, ErrStageClosed, ErrDuplicate)
	}

	r.recorder.Record(ctx, &conflictID, &p.UserID, audit.EventInputCreated, map[string]any{
		"input_id": in.ID,
	})

	r.logger.Info("input created", "id", in.ID, "conflict", conflictID)
	return &in, nil
}

func (r *repo) Update(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
	cmd UpdateCommand,
) (*Input, error) {
	if err := validateContent(cmd.Content); err != nil {
		return nil, err
	}

	in, authorRole, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := r.resolver.MemberRole(ctx, in.ConflictID, p.UserID)
	if err != nil {
		return nil, err
	}

	if !authz.CanEditInput(isAuthor(in, p)) {
		if authz.CanReadInput(role, authorRole, false) {
			return nil, authz.ErrDenied
		}
		return nil, ErrNotFound
	}

	q := `
		UPDATE inputs
		SET content = $1, updated_at = now()
		WHERE id = $2 AND author_id = $3
		  AND EXISTS (SELECT 1 FROM conflicts c WHERE c.id = inputs.conflict_id AND c.status = 'collecting')
		RETURNING ` + inputColumns

	updated, err := repository.QueryOne(ctx, r.db, q, []any{cmd.Content, id, p.UserID}, scanInput)
	if err != nil {
		return nil, repository.MapError(err, ErrStageClosed, ErrDuplicate)
	}

	r.recorder.Record(ctx, &in.ConflictID, &p.UserID, audit.EventInputUpdated, map[string]any{
		"input_id": id,
	})

	return &updated, nil
}

// load fetches an input row plus its author's role without a caller guard.
func (r *repo) load(ctx context.Context, id uuid.UUID) (*Input, authz.Role, error) {
	q := `
		SELECT ` + qualify("i", inputColumns) + `, COALESCE(am.role, '')
		FROM inputs i
		LEFT JOIN conflict_members am
		  ON am.conflict_id = i.conflict_id AND am.user_id = i.author_id
		WHERE i.id = $1`

	var in Input
	var authorRole string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&in.ID,
		&in.ConflictID,
		&in.AuthorID,
		&in.Content,
		&in.CreatedAt,
		&in.UpdatedAt,
		&authorRole,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.RoleNone, ErrNotFound
		}
		return nil, authz.RoleNone, err
	}

	return &in, authz.Role(authorRole), nil
}

func isAuthor(in *Input, p authz.Principal) bool {
	return in.AuthorID != nil && *in.AuthorID == p.UserID
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if len([]rune(content)) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

func qualify(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, col := range parts {
		parts[i] = alias + "." + col
	}
	return strings.Join(parts, ", ")
}

func scanInput(s repository.Scanner) (Input, error) {
	var in Input
	err := s.Scan(
		&in.ID,
		&in.ConflictID,
		&in.AuthorID,
		&in.Content,
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	return in, err
}
