package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"ticclub/internal/adapters/telemetry"
	"ticclub/internal/domain/registration"
)

// RegistrationLister reads all registrations in insertion order.
type RegistrationLister interface {
	List(ctx context.Context) ([]registration.Registration, error)
}

// ExportRegistrationsDeps holds dependencies for ExportRegistrations.
type ExportRegistrationsDeps struct {
	Store    RegistrationLister
	Location *time.Location
	Now      func() time.Time
}

// ExportResult is a ready-to-download CSV document.
type ExportResult struct {
	Filename string
	Content  []byte
	Rows     int
}

// ExecuteExportRegistrations builds the CSV export of every registration.
// PRE: deps.Store is non-nil
// POST: Returns registration.ErrNoRegistrations and no content when the store is empty
func ExecuteExportRegistrations(ctx context.Context, deps ExportRegistrationsDeps) (ExportResult, error) {
	regs, err := deps.Store.List(ctx)
	if err != nil {
		return ExportResult{}, err
	}

	var buf bytes.Buffer
	if err := registration.WriteCSV(&buf, regs, deps.Location); err != nil {
		if errors.Is(err, registration.ErrNoRegistrations) {
			telemetry.ExportsTotal.WithLabelValues(telemetry.OutcomeEmpty).Inc()
		}
		return ExportResult{}, err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	telemetry.ExportsTotal.WithLabelValues(telemetry.OutcomeSuccess).Inc()
	slog.Info("registrations_exported", "rows", len(regs))
	return ExportResult{
		Filename: registration.CSVFilename(now()),
		Content:  buf.Bytes(),
		Rows:     len(regs),
	}, nil
}
