package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ticclub/internal/adapters/telemetry"
	"ticclub/internal/domain/admin"
)

// AdminLoginInput carries input for the admin login orchestrator.
type AdminLoginInput struct {
	Email    string
	Password string
}

// AdminLoginDeps holds dependencies for AdminLogin.
type AdminLoginDeps struct {
	Credentials admin.Credentials
	Now         func() time.Time
}

// ExecuteAdminLogin checks the single configured credential pair.
// There is no lockout or backoff.
// PRE: deps.Credentials holds a bcrypt hash
// POST: Returns an authenticated session on match, admin.ErrInvalidCredentials otherwise
func ExecuteAdminLogin(_ context.Context, input AdminLoginInput, deps AdminLoginDeps) (admin.Session, error) {
	email := strings.TrimSpace(input.Email)
	if err := deps.Credentials.Check(email, input.Password); err != nil {
		telemetry.AdminLoginsTotal.WithLabelValues(telemetry.OutcomeFailure).Inc()
		slog.Info("auth_event", "event", "login_failed", "email", email)
		return admin.Session{}, err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	telemetry.AdminLoginsTotal.WithLabelValues(telemetry.OutcomeSuccess).Inc()
	slog.Info("auth_event", "event", "login_success", "email", email)
	return admin.Login(email, now()), nil
}
