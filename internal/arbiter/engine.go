package arbiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/conflicts"
	"github.com/arbiterhq/arbiter/internal/decisions"
	"github.com/arbiterhq/arbiter/internal/inputs"
	"github.com/arbiterhq/arbiter/internal/members"
	"github.com/arbiterhq/arbiter/internal/questions"
	"github.com/arbiterhq/arbiter/pkg/formatting"
)

// Options configures the model behind AI verdicts.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

type engine struct {
	client    *openai.Client
	resolver  authz.Resolver
	conflicts conflicts.System
	members   members.System
	inputs    inputs.System
	questions questions.System
	decisions decisions.System
	logger    *slog.Logger
	opts      Options
}

// New creates the decision engine.
func New(
	resolver authz.Resolver,
	conflictSys conflicts.System,
	memberSys members.System,
	inputSys inputs.System,
	questionSys questions.System,
	decisionSys decisions.System,
	logger *slog.Logger,
	opts Options,
) System {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &engine{
		client:    openai.NewClientWithConfig(cfg),
		resolver:  resolver,
		conflicts: conflictSys,
		members:   memberSys,
		inputs:    inputSys,
		questions: questionSys,
		decisions: decisionSys,
		logger:    logger.With("system", "arbiter"),
		opts:      opts,
	}
}

func (e *engine) Handler() *Handler {
	return NewHandler(e, e.logger)
}

func (e *engine) Decide(
	ctx context.Context,
	p authz.Principal,
	conflictID uuid.UUID,
	cmd DecideCommand,
) (*decisions.Decision, error) {
	role, err := e.resolver.MemberRole(ctx, conflictID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !role.Member() {
		return nil, ErrNotFound
	}
	if !authz.CanDecide(role) {
		return nil, authz.ErrDenied
	}

	conflict, err := e.conflicts.Find(ctx, p, conflictID)
	if err != nil {
		if errors.Is(err, conflicts.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var from, to conflicts.Status
	switch conflict.Status {
	case conflicts.StatusReviewing:
		from, to = conflicts.StatusReviewing, conflicts.StatusDecided
	case conflicts.StatusAppeal:
		from, to = conflicts.StatusAppeal, conflicts.StatusFinal
	default:
		return nil, ErrWrongStage
	}

	if !decisions.ValidArbiterType(cmd.ArbiterType) {
		return nil, decisions.ErrInvalidArbiter
	}

	record := decisions.RecordCommand{
		ArbiterType:  cmd.ArbiterType,
		DecisionText: cmd.DecisionText,
		Confidence:   cmd.Confidence,
	}

	if cmd.ArbiterType == decisions.ArbiterAI {
		v, err := e.deliberate(ctx, conflict)
		if err != nil {
			return nil, err
		}
		record.DecisionText = v.DecisionText
		record.Confidence = v.Confidence
	}

	var decision *decisions.Decision
	if from == conflicts.StatusReviewing {
		decision, err = e.decisions.Record(ctx, conflictID, record)
	} else {
		decision, err = e.decisions.Revise(ctx, conflictID, record)
	}
	if err != nil {
		return nil, err
	}

	if err := e.conflicts.Advance(ctx, conflictID, from, to); err != nil {
		if !errors.Is(err, conflicts.ErrInvalidTransition) {
			return nil, err
		}
		e.logger.Warn("stage already advanced", "conflict", conflictID, "from", from, "to", to)
	}

	e.logger.Info(
		"verdict issued",
		"conflict", conflictID,
		"arbiter", cmd.ArbiterType,
		"iteration", decision.Iteration,
	)
	return decision, nil
}

// deliberate assembles the dossier and asks the model for a verdict.
func (e *engine) deliberate(
	ctx context.Context,
	conflict *conflicts.Conflict,
) (*verdict, error) {
	d, err := e.assembleDossier(ctx, conflict)
	if err != nil {
		return nil, fmt.Errorf("assemble dossier: %w", err)
	}

	system, user := buildMessages(d)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.opts.Model,
		Temperature: e.opts.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("model completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoVerdict
	}

	v, err := formatting.Parse[verdict](resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoVerdict, err)
	}

	if strings.TrimSpace(v.DecisionText) == "" {
		return nil, ErrNoVerdict
	}
	v.Confidence = clamp(v.Confidence)

	return &v, nil
}

func clamp(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
