package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/arbiterhq/arbiter/internal/audit"
	"github.com/arbiterhq/arbiter/internal/users"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

type repo struct {
	db         *sql.DB
	users      users.System
	dispatcher Dispatcher
	recorder   audit.Recorder
	logger     *slog.Logger
	opts       Options
}

// New creates an authentication system backed by the verification_codes table.
func New(
	db *sql.DB,
	userSys users.System,
	dispatcher Dispatcher,
	recorder audit.Recorder,
	logger *slog.Logger,
	opts Options,
) System {
	return &repo{
		db:         db,
		users:      userSys,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger.With("system", "auth"),
		opts:       opts,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Start(ctx context.Context, cmd StartCommand) error {
	if !validPhone(cmd.Phone) {
		return ErrInvalidPhone
	}

	phoneHash := users.HashPhone(cmd.Phone)

	code, err := generateCode()
	if err != nil {
		return err
	}

	q := `
		INSERT INTO verification_codes (phone_hash, code_hash, expires_at)
		VALUES ($1, $2, now() + $3::interval)`

	interval := fmt.Sprintf("%d seconds", int(r.opts.CodeTTL.Seconds()))
	if _, err := r.db.ExecContext(ctx, q, phoneHash, hashCode(phoneHash, code), interval); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	if err := r.dispatcher.Dispatch(ctx, cmd.Phone, code); err != nil {
		return fmt.Errorf("dispatch verification code: %w", err)
	}

	r.logger.Info("verification started", "phone_hash", phoneHash)
	return nil
}

func (r *repo) Verify(ctx context.Context, cmd VerifyCommand) (*TokenResult, error) {
	if !validPhone(cmd.Phone) {
		return nil, ErrInvalidPhone
	}

	phoneHash := users.HashPhone(cmd.Phone)

	row, err := r.latest(ctx, phoneHash)
	if err != nil {
		return nil, err
	}

	if row.Attempts >= r.opts.MaxAttempts {
		return nil, ErrTooManyAttempts
	}

	if !matchCode(phoneHash, cmd.Code, row.CodeHash) {
		if _, err := r.db.ExecContext(
			ctx,
			"UPDATE verification_codes SET attempts = attempts + 1 WHERE id = $1",
			row.ID,
		); err != nil {
			r.logger.Warn("attempt count update failed", "error", err)
		}
		return nil, ErrCodeMismatch
	}

	// Consuming flips inside the update so a replayed code matches zero rows.
	if err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE verification_codes SET consumed_at = now() WHERE id = $1 AND consumed_at IS NULL",
		row.ID,
	); err != nil {
		return nil, ErrCodeExpired
	}

	user, err := r.users.Provision(ctx, phoneHash, users.LangEnglish)
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}

	token, expires, err := IssueToken(r.opts.TokenSecret, user.ID, user.Lang, r.opts.TokenTTL)
	if err != nil {
		return nil, err
	}

	r.recorder.Record(ctx, nil, &user.ID, audit.EventUserVerified, nil)

	r.logger.Info("user verified", "user", user.ID)
	return &TokenResult{Token: token, ExpiresAt: expires, User: user}, nil
}

// latest returns the newest live verification row for a phone hash.
func (r *repo) latest(ctx context.Context, phoneHash string) (*codeRow, error) {
	q := `
		SELECT id, phone_hash, code_hash, expires_at, attempts
		FROM verification_codes
		WHERE phone_hash = $1 AND consumed_at IS NULL AND expires_at > now()
		ORDER BY created_at DESC
		LIMIT 1`

	var row codeRow
	err := r.db.QueryRowContext(ctx, q, phoneHash).Scan(
		&row.ID,
		&row.PhoneHash,
		&row.CodeHash,
		&row.ExpiresAt,
		&row.Attempts,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCodeExpired
		}
		return nil, err
	}

	return &row, nil
}

func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}
