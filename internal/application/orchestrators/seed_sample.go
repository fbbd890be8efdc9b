package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ticclub/internal/domain/registration"
)

// SeedSampleDeps holds dependencies for ExecuteSeedSample.
type SeedSampleDeps struct {
	Store    RegistrationStore
	Location *time.Location
}

// SampleRegistrations returns the demonstration applications shown on a fresh install.
// Timestamps are wall-clock times in loc.
func SampleRegistrations(loc *time.Location) []registration.Registration {
	if loc == nil {
		loc = time.UTC
	}
	return []registration.Registration{
		{
			Name:       "Rahul Kumar",
			Email:      "rahul.k@example.com",
			Phone:      "+91 9876543210",
			Department: "Computer Science",
			Motivation: "I am passionate about technology and innovation. I want to contribute to TIC Club activities.",
			Positions:  []string{"Technical Coordinator", "Research Coordinator"},
			Timestamp:  time.Date(2025, 10, 25, 10, 30, 0, 0, loc).UTC(),
		},
		{
			Name:       "Priya Sharma",
			Email:      "priya.s@example.com",
			Phone:      "+91 9123456789",
			Department: "Information Technology",
			Motivation: "I have experience in social media management and want to help grow TIC Club online presence.",
			Positions:  []string{"Social Media Coordinator", "Public Relations & Outreach Coordinator"},
			Timestamp:  time.Date(2025, 10, 26, 14, 20, 0, 0, loc).UTC(),
		},
	}
}

// registrationCounter is implemented by stores that can report their size.
type registrationCounter interface {
	Count(ctx context.Context) (int, error)
}

// ExecuteSeedSample loads the sample applications into an empty store.
// Idempotent: a store that already holds registrations is left untouched.
// PRE: deps.Store is non-nil
// POST: Sample registrations appended in order, or nothing when the store is not empty
func ExecuteSeedSample(ctx context.Context, deps SeedSampleDeps) error {
	if c, ok := deps.Store.(registrationCounter); ok {
		n, err := c.Count(ctx)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if n > 0 {
			slog.Info("sample_registrations_skipped", "existing", n)
			return nil
		}
	}
	samples := SampleRegistrations(deps.Location)
	for _, r := range samples {
		r.ID = uuid.New().String()
		if err := deps.Store.Add(ctx, r); err != nil {
			return fmt.Errorf("seed %s: %w", r.Email, err)
		}
	}
	slog.Info("sample_registrations_seeded", "count", len(samples))
	return nil
}
