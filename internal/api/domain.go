package api

import (
	"github.com/arbiterhq/arbiter/internal/arbiter"
	"github.com/arbiterhq/arbiter/internal/audit"
	"github.com/arbiterhq/arbiter/internal/auth"
	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/config"
	"github.com/arbiterhq/arbiter/internal/conflicts"
	"github.com/arbiterhq/arbiter/internal/decisions"
	"github.com/arbiterhq/arbiter/internal/evidence"
	"github.com/arbiterhq/arbiter/internal/inputs"
	"github.com/arbiterhq/arbiter/internal/members"
	"github.com/arbiterhq/arbiter/internal/questions"
	"github.com/arbiterhq/arbiter/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Auth      auth.System
	Users     users.System
	Conflicts conflicts.System
	Members   members.System
	Inputs    inputs.System
	Evidence  evidence.System
	Questions questions.System
	Decisions decisions.System
	Arbiter   arbiter.System
}

// NewDomain creates all domain systems from the API runtime. The resolver
// and audit recorder are shared: every guarded system resolves membership
// through the same path and appends to the same audit trail.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	resolver := authz.NewResolver(db)
	recorder := audit.New(db, runtime.Logger)

	userSys := users.New(db, runtime.Logger)

	conflictSys := conflicts.New(
		db,
		resolver,
		recorder,
		runtime.Logger,
		runtime.Pagination,
	)

	memberSys := members.New(
		db,
		resolver,
		recorder,
		conflictSys,
		runtime.Logger,
	)

	inputSys := inputs.New(db, resolver, recorder, runtime.Logger)

	evidenceSys := evidence.New(
		db,
		runtime.Storage,
		inputSys,
		recorder,
		runtime.Logger,
	)

	questionSys := questions.New(db, resolver, recorder, runtime.Logger)
	decisionSys := decisions.New(db, resolver, recorder, runtime.Logger)

	arbiterSys := arbiter.New(
		resolver,
		conflictSys,
		memberSys,
		inputSys,
		questionSys,
		decisionSys,
		runtime.Logger,
		arbiter.Options{
			APIKey:      cfg.Arbiter.APIKey,
			BaseURL:     cfg.Arbiter.BaseURL,
			Model:       cfg.Arbiter.Model,
			Temperature: float32(cfg.Arbiter.Temperature),
		},
	)

	authSys := auth.New(
		db,
		userSys,
		auth.NewLogDispatcher(runtime.Logger),
		recorder,
		runtime.Logger,
		auth.Options{
			TokenSecret: []byte(cfg.Auth.TokenSecret),
			TokenTTL:    cfg.Auth.TokenTTLDuration(),
			CodeTTL:     cfg.Auth.CodeTTLDuration(),
			MaxAttempts: cfg.Auth.MaxAttempts,
		},
	)

	return &Domain{
		Auth:      authSys,
		Users:     userSys,
		Conflicts: conflictSys,
		Members:   memberSys,
		Inputs:    inputSys,
		Evidence:  evidenceSys,
		Questions: questionSys,
		Decisions: decisionSys,
		Arbiter:   arbiterSys,
	}
}
