package questions

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/audit"
	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

const questionColumns = "id, conflict_id, to_user_id, question_text, answer_text, answered, created_at"

type repo struct {
	db       *sql.DB
	resolver authz.Resolver
	recorder audit.Recorder
	logger   *slog.Logger
}

// New creates a question repository implementing the System interface.
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
		logger:   logger.With("system", "questions"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListForConflict(
	ctx context.Context,
	p authz.Principal,
	conflictID uuid.UUID,
) ([]Question, error) {
	role, err := r.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !role.Member() {
		return nil, ErrNotFound
	}

	if role == authz.RoleArbiter {
		q := "SELECT " + questionColumns + " FROM questions WHERE conflict_id = $1 ORDER BY created_at"

		items, err := repository.QueryMany(ctx, r.db, q, []any{conflictID}, scanQuestion)
		if err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}
		return items, nil
	}

	q := "SELECT " + questionColumns + " FROM questions WHERE conflict_id = $1 AND to_user_id = $2 ORDER BY created_at"

	items, err := repository.QueryMany(ctx, r.db, q, []any{conflictID, p.UserID}, scanQuestion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return items, nil
}

func (r *repo) Ask(
	ctx context.Context,
	p authz.Principal,
	conflictID uuid.UUID,
	cmd AskCommand,
) (*Question, error) {
	if strings.TrimSpace(cmd.QuestionText) == "" {
		return nil, ErrEmptyText
	}

	role, err := r.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !role.Member() {
		return nil, ErrNotFound
	}
	if !authz.CanAskQuestion(role) {
		return nil, authz.ErrDenied
	}

	target, err := r.resolver.MemberRole(ctx, conflictID, cmd.ToUserID)
	if err != nil {
		return nil, err
	}
	if !target.Member() {
		return nil, ErrNotMember
	}

	out, err := r.insert(ctx, conflictID, cmd.ToUserID, cmd.QuestionText)
	if err != nil {
		return nil, err
	}

	r.recorder.Record(ctx, &conflictID, &p.UserID, audit.EventQuestionAsked, map[string]any{
		"question_id": out.ID,
		"to_user_id":  cmd.ToUserID,
	})

	r.logger.Info("question asked", "id", out.ID, "conflict", conflictID)
	return out, nil
}

func (r *repo) Answer(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
	cmd AnswerCommand,
) (*Question, error) {
	if strings.TrimSpace(cmd.AnswerText) == "" {
		return nil, ErrEmptyText
	}

	existing, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	addressed := existing.ToUserID != nil && *existing.ToUserID == p.UserID
	if !addressed {
		role, err := r.resolver.MemberRole(ctx, existing.ConflictID, p.UserID)
		if err != nil {
			return nil, err
		}
		if role == authz.RoleArbiter {
			return nil, authz.ErrDenied
		}
		return nil, ErrNotFound
	}

	// The answered flag flips inside the update itself so a concurrent
	// second answer observes zero matched rows rather than overwriting.
	q := `
		UPDATE questions
		SET answer_text = $1, answered = true
		WHERE id = $2 AND to_user_id = $3 AND answered = false
		RETURNING ` + questionColumns

	updated, err := repository.QueryOne(ctx, r.db, q, []any{cmd.AnswerText, id, p.UserID}, scanQuestion)
	if err != nil {
		return nil, repository.MapError(err, ErrAlreadyAnswered, ErrDuplicate)
	}

	r.recorder.Record(ctx, &existing.ConflictID, &p.UserID, audit.EventQuestionAnswered, map[string]any{
		"question_id": id,
	})

	return &updated, nil
}

func (r *repo) Issue(
	ctx context.Context,
	conflictID, toUserID uuid.UUID,
	text string,
) (*Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	return r.insert(ctx, conflictID, toUserID, text)
}

func (r *repo) AnsweredForConflict(ctx context.Context, conflictID uuid.UUID) ([]Question, error) {
	q := "SELECT " + questionColumns + " FROM questions WHERE conflict_id = $1 AND answered = true ORDER BY created_at"

	items, err := repository.QueryMany(ctx, r.db, q, []any{conflictID}, scanQuestion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return items, nil
}

func (r *repo) insert(
	ctx context.Context,
	conflictID, toUserID uuid.UUID,
	text string,
) (*Question, error) {
	q := `
		INSERT INTO questions (conflict_id, to_user_id, question_text)
		VALUES ($1, $2, $3)
		RETURNING ` + questionColumns

	out, err := repository.QueryOne(ctx, r.db, q, []any{conflictID, toUserID, text}, scanQuestion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &out, nil
}

func (r *repo) load(ctx context.Context, id uuid.UUID) (*Question, error) {
	q := "SELECT " + questionColumns + " FROM questions WHERE id = $1"

	out, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanQuestion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &out, nil
}

func scanQuestion(s repository.Scanner) (Question, error) {
	var q Question
	err := s.Scan(
		&q.ID,
		&q.ConflictID,
		&q.ToUserID,
		&q.QuestionText,
		&q.AnswerText,
		&q.Answered,
		&q.CreatedAt,
	)
	return q, err
}
