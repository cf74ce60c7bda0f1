package auth

import (
	"context"
	"time"
)

// Options configures code issuance and token signing.
type Options struct {
	TokenSecret []byte
	TokenTTL    time.Duration
	CodeTTL     time.Duration
	MaxAttempts int
}

// System defines the public contract for authentication operations.
type System interface {
	Handler() *Handler

	// Start issues a verification code and dispatches it to the phone.
	Start(ctx context.Context, cmd StartCommand) error

	// Verify checks a code, provisions the user on first sign-in, and
	// returns a signed token.
	Verify(ctx context.Context, cmd VerifyCommand) (*TokenResult, error)
}
