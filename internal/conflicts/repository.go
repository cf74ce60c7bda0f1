package conflicts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/audit"
	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/users"
	"github.com/arbiterhq/arbiter/pkg/pagination"
	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

type repo struct {
	db         *sql.DB
	resolver   authz.Resolver
	recorder   audit.Recorder
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a conflict repository implementing the System interface.
func New(
	db *sql.DB,
	resolver authz.Resolver,
	recorder audit.Recorder,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		resolver:   resolver,
		recorder:   recorder,
		logger:     logger.With("system", "conflicts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	p authz.Principal,
	page pagination.PageRequest,
) (*pagination.PageResult[Summary], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(summaryProjection, defaultSort).
		WhereEquals("MemberID", p.UserID).
		WhereSearch(page.Search, "Title", "Description")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count conflicts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query conflicts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, p authz.Principal, id uuid.UUID) (*Conflict, error) {
	role, err := r.resolver.MemberRole(ctx, id, p.UserID)
	if err != nil {
		return nil, err
	}
	if !authz.CanReadConflict(role) {
		// Non-members see absence, never a permission error.
		return nil, ErrNotFound
	}

	return r.find(ctx, id)
}

func (r *repo) Create(ctx context.Context, p authz.Principal, cmd CreateCommand) (*Conflict, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, ErrInvalidTitle
	}
	if cmd.Language == "" {
		cmd.Language = users.LangEnglish
	}
	if !users.ValidLang(cmd.Language) {
		return nil, ErrInvalidLanguage
	}
	if !cmd.Role.IsParty() {
		return nil, ErrInvalidRole
	}

	// Creating a conflict and joining it as the first party is one logical
	// step for the caller, so both inserts commit together.
	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Conflict, error) {
		insert := `
			INSERT INTO conflicts (creator_id, title, description, language)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + conflictColumns

		created, err := repository.QueryOne(
			ctx, tx, insert,
			[]any{p.UserID, cmd.Title, cmd.Description, cmd.Language},
			scanConflict,
		)
		if err != nil {
			return Conflict{}, err
		}

		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO conflict_members (conflict_id, user_id, role, display_name)
			 VALUES ($1, $2, $3, $4)`,
			created.ID, p.UserID, string(cmd.Role), cmd.DisplayName,
		)
		if err != nil {
			return Conflict{}, err
		}

		return created, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, &c.ID, &p.UserID, audit.EventConflictCreated, map[string]any{
		"role": string(cmd.Role),
	})

	r.logger.Info("conflict created", "id", c.ID, "creator", p.UserID)
	return &c, nil
}

func (r *repo) SetStatus(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
	cmd StatusCommand,
) (*Conflict, error) {
	role, err := r.resolver.MemberRole(ctx, id, p.UserID)
	if err != nil {
		return nil, err
	}
	if !role.Member() {
		return nil, ErrNotFound
	}
	if !authz.CanAdvanceStatus(role) {
		return nil, authz.ErrDenied
	}

	current, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, cmd.Status) {
		return nil, ErrInvalidTransition
	}

	if err := r.Advance(ctx, id, current.Status, cmd.Status); err != nil {
		return nil, err
	}

	r.recorder.Record(ctx, &id, &p.UserID, audit.EventStatusChanged, map[string]any{
		"from": string(current.Status),
		"to":   string(cmd.Status),
	})

	return r.find(ctx, id)
}

func (r *repo) Advance(ctx context.Context, id uuid.UUID, from, to Status) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}

	// The from-state predicate makes the transition atomic: a stale or
	// concurrent caller affects zero rows instead of regressing the status.
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE conflicts SET status = $1 WHERE id = $2 AND status = $3",
		string(to), id, string(from),
	)
	if err != nil {
		return repository.MapError(err, ErrInvalidTransition, ErrDuplicate)
	}

	r.logger.Info("conflict status advanced", "id", id, "from", from, "to", to)
	return nil
}

func (r *repo) find(ctx context.Context, id uuid.UUID) (*Conflict, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanConflict)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}
