package arbiter

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arbiterhq/arbiter/internal/conflicts"
	"github.com/arbiterhq/arbiter/internal/inputs"
	"github.com/arbiterhq/arbiter/internal/members"
	"github.com/arbiterhq/arbiter/internal/questions"
)

// dossier is the complete case record handed to the model: the conflict,
// every participant, every submitted input, and every answered question.
type dossier struct {
	Conflict *conflicts.Conflict
	Roster   []members.Member
	Inputs   []inputs.Input
	Answers  []questions.Question
}

// assembleDossier gathers the case record. The three collection fetches
// are independent and run concurrently.
func (e *engine) assembleDossier(
	ctx context.Context,
	conflict *conflicts.Conflict,
) (*dossier, error) {
	d := &dossier{Conflict: conflict}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roster, err := e.members.Roster(ctx, conflict.ID)
		if err != nil {
			return err
		}
		d.Roster = roster
		return nil
	})

	g.Go(func() error {
		items, err := e.inputs.AllForConflict(ctx, conflict.ID)
		if err != nil {
			return err
		}
		d.Inputs = items
		return nil
	})

	g.Go(func() error {
		answers, err := e.questions.AnsweredForConflict(ctx, conflict.ID)
		if err != nil {
			return err
		}
		d.Answers = answers
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return d, nil
}

// displayName resolves an author id against the roster.
func (d *dossier) displayName(userID *uuid.UUID) string {
	if userID == nil {
		return "former member"
	}
	for _, m := range d.Roster {
		if m.UserID == *userID {
			if m.DisplayName != "" {
				return m.DisplayName
			}
			return string(m.Role)
		}
	}
	return "former member"
}

// roleOf resolves an author id to its role name, if still a member.
func (d *dossier) roleOf(userID *uuid.UUID) string {
	if userID == nil {
		return ""
	}
	for _, m := range d.Roster {
		if m.UserID == *userID {
			return string(m.Role)
		}
	}
	return ""
}
