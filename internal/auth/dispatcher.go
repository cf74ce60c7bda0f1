package auth

import (
	"context"
	"log/slog"
)

// Dispatcher delivers a verification code to a phone number. The raw
// phone is available here and only here; it never reaches storage.
type Dispatcher interface {
	Dispatch(ctx context.Context, phone, code string) error
}

// LogDispatcher writes codes to the log instead of sending them.
// Suitable for development and test environments.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a dispatcher that logs codes.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.With("system", "dispatch")}
}

func (d *LogDispatcher) Dispatch(_ context.Context, phone, code string) error {
	d.logger.Info("verification code dispatched", "phone", phone, "code", code)
	return nil
}
