package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ticclub/internal/adapters/telemetry"
	"ticclub/internal/domain/registration"
)

// RegistrationStore defines the persistence needed to accept applications.
type RegistrationStore interface {
	Add(ctx context.Context, r registration.Registration) error
}

// RegistrationDispatcher forwards an accepted registration without blocking.
type RegistrationDispatcher interface {
	Dispatch(r registration.Registration)
}

// SubmitRegistrationInput carries the submitted form fields.
type SubmitRegistrationInput struct {
	Name       string
	Email      string
	Phone      string
	Department string
	Motivation string
	Positions  []string
}

// SubmitRegistrationDeps holds dependencies for SubmitRegistration.
type SubmitRegistrationDeps struct {
	Store      RegistrationStore
	Dispatcher RegistrationDispatcher
	Notifier   RegistrationDispatcher // optional
	Catalog    []string
	Now        func() time.Time
}

// ExecuteSubmitRegistration validates, stamps and stores an application, then
// hands it to the dispatcher without waiting for the outcome.
// PRE: deps.Store and deps.Dispatcher are non-nil
// POST: On success the registration is stored and a delivery has been launched
// INVARIANT: Positions count is re-checked here regardless of any client-side guard
func ExecuteSubmitRegistration(ctx context.Context, input SubmitRegistrationInput, deps SubmitRegistrationDeps) (registration.Registration, error) {
	if err := registration.ValidatePositions(input.Positions); err != nil {
		telemetry.RegistrationRejectionsTotal.WithLabelValues("positions").Inc()
		return registration.Registration{}, err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	r := registration.Registration{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Department: strings.TrimSpace(input.Department),
		Motivation: strings.TrimSpace(input.Motivation),
		Positions:  append([]string(nil), input.Positions...),
		Timestamp:  now().UTC(),
	}
	if err := r.Validate(deps.Catalog); err != nil {
		telemetry.RegistrationRejectionsTotal.WithLabelValues("fields").Inc()
		return registration.Registration{}, err
	}

	if err := deps.Store.Add(ctx, r); err != nil {
		return registration.Registration{}, err
	}
	telemetry.RegistrationsTotal.Inc()
	slog.Info("registration_submitted", "id", r.ID, "positions", len(r.Positions))

	deps.Dispatcher.Dispatch(r)
	if deps.Notifier != nil {
		deps.Notifier.Dispatch(r)
	}
	return r, nil
}
