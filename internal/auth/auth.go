// Package auth implements phone-based sign-in. A short-lived numeric
// code is dispatched to the phone, verified against a salted hash, and
// exchanged for a signed bearer token. Raw phone numbers are never
// stored; only their digest reaches the database.
package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/users"
)

// StartCommand begins a verification round for a phone number.
type StartCommand struct {
	Phone string `json:"phone"`
	Lang  string `json:"lang"`
}

// VerifyCommand exchanges a received code for a token.
type VerifyCommand struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// TokenResult carries the issued token and the resolved user.
type TokenResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *users.User `json:"user"`
}

type codeRow struct {
	ID        uuid.UUID
	PhoneHash string
	CodeHash  string
	ExpiresAt time.Time
	Attempts  int
}
