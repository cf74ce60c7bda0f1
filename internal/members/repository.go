package members

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/audit"
	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/conflicts"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

const memberColumns = "conflict_id, user_id, role, display_name, ready_for_decision, appeal_used, joined_at"

type repo struct {
	db       *sql.DB
	resolver authz.Resolver
	recorder audit.Recorder
	cases    conflicts.System
	logger   *slog.Logger
}

// New creates a membership repository implementing the System interface.
func New(
	db *sql.DB,
	resolver authz.Resolver,
	recorder audit.Recorder,
	cases conflicts.System,
	logger *slog.Logger,
) System {
	return &repo{
		db:       db,
		resolver: resolver,
		recorder: recorder,
		cases:    cases,
		logger:   logger.With("system", "members"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context, p authz.Principal, conflictID uuid.UUID) ([]Member, error) {
	role, err := r.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !authz.CanListMembers(role) {
		return nil, ErrNotFound
	}

	return r.Roster(ctx, conflictID)
}

func (r *repo) Roster(ctx context.Context, conflictID uuid.UUID) ([]Member, error) {
	q := "SELECT " + memberColumns + " FROM conflict_members WHERE conflict_id = $1 ORDER BY joined_at"

	items, err := repository.QueryMany(ctx, r.db, q, []any{conflictID}, scanMember)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return items, nil
}

func (r *repo) Join(
	ctx context.Context,
	p authz.Principal,
	conflictID uuid.UUID,
	cmd JoinCommand,
) (*Member, error) {
	if !cmd.Role.Member() {
		return nil, ErrInvalidRole
	}

	// Any authenticated user may join a vacant role; the composite primary
	// key and the per-conflict role index reject duplicates.
	q := `
		INSERT INTO conflict_members (conflict_id, user_id, role, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + memberColumns

	m, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{conflictID, p.UserID, string(cmd.Role), cmd.DisplayName},
		scanMember,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, &conflictID, &p.UserID, audit.EventMemberJoined, map[string]any{
		"role": string(cmd.Role),
	})

	r.logger.Info("member joined", "conflict", conflictID, "user", p.UserID, "role", cmd.Role)
	return &m, nil
}

func (r *repo) SetReady(
	ctx context.Context,
	p authz.Principal,
	conflictID uuid.UUID,
	cmd ReadyCommand,
) (*Member, error) {
	role, err := r.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !role.Member() {
		return nil, ErrNotFound
	}
	if !authz.CanSetReady(role, true) {
		return nil, authz.ErrDenied
	}

	q := `
		UPDATE conflict_members
		SET ready_for_decision = $1
		WHERE conflict_id = $2 AND user_id = $3
		RETURNING ` + memberColumns

	m, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{cmd.ReadyForDecision, conflictID, p.UserID},
		scanMember,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, &conflictID, &p.UserID, audit.EventMemberReady, map[string]any{
		"ready": cmd.ReadyForDecision,
	})

	if cmd.ReadyForDecision {
		r.rolloverIfReady(ctx, conflictID)
	}

	return &m, nil
}

func (r *repo) UseAppeal(ctx context.Context, p authz.Principal, conflictID uuid.UUID) (*Member, error) {
	role, err := r.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !role.Member() {
		return nil, ErrNotFound
	}

	var appealUsed bool
	err = r.db.QueryRowContext(
		ctx,
		"SELECT appeal_used FROM conflict_members WHERE conflict_id = $1 AND user_id = $2",
		conflictID, p.UserID,
	).Scan(&appealUsed)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if !authz.CanAppeal(role, appealUsed) {
		if role.IsParty() {
			return nil, ErrAppealSpent
		}
		return nil, authz.ErrDenied
	}

	// Single conditional update: the appeal flag flips at most once, and only
	// while the conflict sits in the decided stage.
	q := `
		UPDATE conflict_members
		SET appeal_used = true
		WHERE conflict_id = $1 AND user_id = $2 AND appeal_used = false
		  AND EXISTS (SELECT 1 FROM conflicts c WHERE c.id = $1 AND c.status = 'decided')
		RETURNING ` + memberColumns

	m, err := repository.QueryOne(ctx, r.db, q, []any{conflictID, p.UserID}, scanMember)
	if err != nil {
		return nil, repository.MapError(err, ErrAppealSpent, ErrDuplicate)
	}

	if err := r.cases.Advance(ctx, conflictID, conflicts.StatusDecided, conflicts.StatusAppeal); err != nil {
		// A concurrent appeal may have advanced the status already; the
		// member row update stands either way.
		if !errors.Is(err, conflicts.ErrInvalidTransition) {
			return nil, err
		}
	}

	r.recorder.Record(ctx, &conflictID, &p.UserID, audit.EventAppealUsed, nil)

	r.logger.Info("appeal used", "conflict", conflictID, "user", p.UserID)
	return &m, nil
}

// rolloverIfReady advances collecting → reviewing once both parties have
// flagged ready. Failures are logged; the ready update itself has committed.
func (r *repo) rolloverIfReady(ctx context.Context, conflictID uuid.UUID) {
	var ready int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT count(*) FROM conflict_members
		 WHERE conflict_id = $1 AND role IN ('partyA', 'partyB') AND ready_for_decision`,
		conflictID,
	).Scan(&ready)
	if err != nil {
		r.logger.Error("readiness check failed", "conflict", conflictID, "error", err)
		return
	}

	if ready < 2 {
		return
	}

	err = r.cases.Advance(ctx, conflictID, conflicts.StatusCollecting, conflicts.StatusReviewing)
	if err != nil && !errors.Is(err, conflicts.ErrInvalidTransition) {
		r.logger.Error("review rollover failed", "conflict", conflictID, "error", err)
	}
}

func scanMember(s repository.Scanner) (Member, error) {
	var m Member
	err := s.Scan(
		&m.ConflictID,
		&m.UserID,
		&m.Role,
		&m.DisplayName,
		&m.ReadyForDecision,
		&m.AppealUsed,
		&m.JoinedAt,
	)
	return m, err
}
