package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ticclub/internal/adapters/telemetry"
	"ticclub/internal/domain/registration"
)

// Dispatcher hands a registration to the remote collector.
// Dispatch must not block the caller and reports nothing back.
type Dispatcher interface {
	Dispatch(r registration.Registration)
}

// DefaultTimeout bounds a single background delivery.
const DefaultTimeout = 15 * time.Second

// HTTPDispatcher POSTs registrations as JSON to a fixed endpoint.
// Deliveries run in their own goroutine. There is no retry and the response is drained unread.
type HTTPDispatcher struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	// done, if set, is called when a delivery finishes. Used by tests.
	done func(err error)
}

// NewHTTPDispatcher creates a dispatcher for endpoint.
// PRE: endpoint is an absolute URL
// POST: Returns a dispatcher using client (http.DefaultClient when nil)
func NewHTTPDispatcher(endpoint string, client *http.Client, timeout time.Duration) *HTTPDispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPDispatcher{endpoint: endpoint, client: client, timeout: timeout}
}

// OnDone registers a completion hook and returns d.
func (d *HTTPDispatcher) OnDone(fn func(err error)) *HTTPDispatcher {
	d.done = fn
	return d
}

// Dispatch launches the delivery and returns immediately.
// POST: caller is never informed of the outcome
func (d *HTTPDispatcher) Dispatch(r registration.Registration) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		err := d.send(ctx, r)
		if err != nil {
			telemetry.ForwardTotal.WithLabelValues(telemetry.OutcomeFailure).Inc()
			slog.Warn("forward_failed", "email", r.Email, "error", err)
		} else {
			telemetry.ForwardTotal.WithLabelValues(telemetry.OutcomeSuccess).Inc()
			slog.Debug("forward_sent", "email", r.Email)
		}
		if d.done != nil {
			d.done(err)
		}
	}()
}

// send performs one POST. Only transport errors count as failures; the status and
// body of the reply are not inspected.
func (d *HTTPDispatcher) send(ctx context.Context, r registration.Registration) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// NoopDispatcher drops every registration. Used when no endpoint is configured.
type NoopDispatcher struct{}

// Dispatch logs and discards r.
func (NoopDispatcher) Dispatch(r registration.Registration) {
	slog.Debug("forward_disabled", "email", r.Email)
}
