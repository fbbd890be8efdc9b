package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// noopRetain bounds how many requests a NoopSender keeps.
const noopRetain = 100

// NoopSender logs sends but does not deliver them.
// The most recent requests are retained so tests can inspect them.
type NoopSender struct {
	mu   sync.Mutex
	sent []SendRequest
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send records and logs req.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	s.mu.Lock()
	if len(s.sent) == noopRetain {
		copy(s.sent, s.sent[1:])
		s.sent = s.sent[:noopRetain-1]
	}
	s.sent = append(s.sent, req)
	s.mu.Unlock()
	slog.Info("noop_email_send", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// Sent returns a copy of the retained requests, oldest first.
func (s *NoopSender) Sent() []SendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SendRequest, len(s.sent))
	copy(out, s.sent)
	return out
}
