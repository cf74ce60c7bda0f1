package users

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/pkg/repository"
)

const userColumns = "id, phone_hash, lang, created_at"

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a user repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "users"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE id = $1"

	u, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Provision(ctx context.Context, phoneHash, lang string) (*User, error) {
	if !ValidLang(lang) {
		lang = LangEnglish
	}

	// Insert-or-fetch keyed on the immutable phone hash. The DO UPDATE on the
	// hash itself is a no-op write that lets RETURNING yield the existing row.
	q := `
		INSERT INTO users (phone_hash, lang)
		VALUES ($1, $2)
		ON CONFLICT (phone_hash) DO UPDATE SET phone_hash = EXCLUDED.phone_hash
		RETURNING ` + userColumns

	u, err := repository.QueryOne(ctx, r.db, q, []any{phoneHash, lang}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user provisioned", "id", u.ID)
	return &u, nil
}

func (r *repo) UpdateLang(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error) {
	if !ValidLang(cmd.Lang) {
		return nil, ErrInvalidLang
	}

	q := "UPDATE users SET lang = $1 WHERE id = $2 RETURNING " + userColumns

	u, err := repository.QueryOne(ctx, r.db, q, []any{cmd.Lang, id}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.PhoneHash, &u.Lang, &u.CreatedAt)
	return u, err
}
