package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"ticclub/internal/adapters/email"
	"ticclub/internal/adapters/telemetry"
	"ticclub/internal/domain/registration"
)

// mdRenderer converts notification Markdown to HTML.
// Raw HTML in the input is omitted (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderMarkdown converts md to HTML, escaping the text on failure.
func RenderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// mdEscaper neutralises Markdown control characters in applicant-supplied text.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", "&lt;", ">", "&gt;", "#", `\#`, "|", `\|`,
)

// BuildNotificationEmail renders the admin notice for a new application.
// PRE: to is non-empty
// POST: Returns a request whose HTML body lists every field of r
func BuildNotificationEmail(r registration.Registration, to []string, loc *time.Location) (email.SendRequest, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "## New TIC Club application\n\n")
	fmt.Fprintf(&md, "- **Name:** %s\n", mdEscaper.Replace(r.Name))
	fmt.Fprintf(&md, "- **Email:** %s\n", mdEscaper.Replace(r.Email))
	fmt.Fprintf(&md, "- **Phone:** %s\n", mdEscaper.Replace(r.Phone))
	fmt.Fprintf(&md, "- **Department:** %s\n", mdEscaper.Replace(r.Department))
	fmt.Fprintf(&md, "- **Positions:** %s\n", mdEscaper.Replace(strings.Join(r.Positions, registration.DisplaySeparator)))
	fmt.Fprintf(&md, "- **Submitted:** %s\n\n", registration.FormatTimestamp(r.Timestamp, loc, registration.CSVTimeLayout))
	if r.Motivation != "" {
		fmt.Fprintf(&md, "### Motivation\n\n%s\n", mdEscaper.Replace(r.Motivation))
	}

	html, err := RenderMarkdown(md.String())
	if err != nil {
		return email.SendRequest{}, err
	}
	return email.SendRequest{
		To:      to,
		Subject: "New application: " + r.Name,
		HTML:    html,
		ReplyTo: r.Email,
	}, nil
}

// RegistrationNotifier emails the club admins about each new application.
// Like the forward, it runs in the background and never affects the applicant.
type RegistrationNotifier struct {
	Sender   email.Sender
	To       []string
	Location *time.Location
	Timeout  time.Duration
	// done, if set, is called after each attempt. Used by tests.
	done func(err error)
}

// Dispatch sends the notification in a goroutine.
func (n *RegistrationNotifier) Dispatch(r registration.Registration) {
	if n == nil || n.Sender == nil || len(n.To) == 0 {
		return
	}
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := n.send(ctx, r)
		if err != nil {
			telemetry.NotificationsTotal.WithLabelValues(telemetry.OutcomeFailure).Inc()
			slog.Warn("notification_failed", "id", r.ID, "error", err)
		} else {
			telemetry.NotificationsTotal.WithLabelValues(telemetry.OutcomeSuccess).Inc()
		}
		if n.done != nil {
			n.done(err)
		}
	}()
}

func (n *RegistrationNotifier) send(ctx context.Context, r registration.Registration) error {
	req, err := BuildNotificationEmail(r, n.To, n.Location)
	if err != nil {
		return err
	}
	_, err = n.Sender.Send(ctx, req)
	return err
}
