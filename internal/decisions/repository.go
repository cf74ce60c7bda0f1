package decisions

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

const decisionColumns = "conflict_id, arbiter_type, decision_text, confidence, iteration, created_at"

type repo struct {
	db       *sql.DB
	resolver authz.Resolver
	recorder audit.Recorder
	logger   *slog.Logger
}

// New creates a decision repository implementing the System interface.
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
		logger:   logger.With("system", "decisions"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Find(
	ctx context.Context,
	p authz.Principal,
	conflictID uuid.UUID,
) (*Decision, error) {
	role, err := r.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !authz.CanReadDecision(role) {
		return nil, ErrNotFound
	}

	q := "SELECT " + decisionColumns + " FROM decisions WHERE conflict_id = $1"

	d, err := repository.QueryOne(ctx, r.db, q, []any{conflictID}, scanDecision)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Record(
	ctx context.Context,
	conflictID uuid.UUID,
	cmd RecordCommand,
) (*Decision, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO decisions (conflict_id, arbiter_type, decision_text, confidence)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + decisionColumns

	d, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{conflictID, cmd.ArbiterType, cmd.DecisionText, cmd.Confidence},
		scanDecision,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, &conflictID, nil, audit.EventDecisionRecorded, map[string]any{
		"arbiter_type": cmd.ArbiterType,
		"iteration":    d.Iteration,
	})

	r.logger.Info("decision recorded", "conflict", conflictID, "arbiter", cmd.ArbiterType)
	return &d, nil
}

func (r *repo) Revise(
	ctx context.Context,
	conflictID uuid.UUID,
	cmd RecordCommand,
) (*Decision, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO decisions (conflict_id, arbiter_type, decision_text, confidence)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (conflict_id) DO UPDATE
		SET arbiter_type = EXCLUDED.arbiter_type,
		    decision_text = EXCLUDED.decision_text,
		    confidence = EXCLUDED.confidence,
		    iteration = decisions.iteration + 1,
		    created_at = now()
		RETURNING ` + decisionColumns

	d, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{conflictID, cmd.ArbiterType, cmd.DecisionText, cmd.Confidence},
		scanDecision,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, &conflictID, nil, audit.EventDecisionRecorded, map[string]any{
		"arbiter_type": cmd.ArbiterType,
		"iteration":    d.Iteration,
	})

	r.logger.Info("decision revised", "conflict", conflictID, "iteration", d.Iteration)
	return &d, nil
}

func validate(cmd RecordCommand) error {
	if !ValidArbiterType(cmd.ArbiterType) {
		return ErrInvalidArbiter
	}
	if strings.TrimSpace(cmd.DecisionText) == "" {
		return ErrEmptyText
	}
	if cmd.Confidence < 0 || cmd.Confidence > 1 {
		return ErrInvalidConfidence
	}
	return nil
}

func scanDecision(s repository.Scanner) (Decision, error) {
	var d Decision
	err := s.Scan(
		&d.ConflictID,
		&d.ArbiterType,
		&d.DecisionText,
		&d.Confidence,
		&d.Iteration,
		&d.CreatedAt,
	)
	return d, err
}
