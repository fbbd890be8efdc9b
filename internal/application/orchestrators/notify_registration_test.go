package orchestrators

import (
	"strings"
	"testing"
	"time"

	"ticclub/internal/adapters/email"
	"ticclub/internal/domain/registration"
)

func TestBuildNotificationEmail_EscapesApplicantText(t *testing.T) {
	r := registration.Registration{
		Name:       "<script>alert(1)</script>",
		Email:      "a@b.com",
		Phone:      "123",
		Department: "CS",
		Motivation: "**bold** claim",
		Positions:  []string{"Technical Coordinator", "Research Coordinator"},
		Timestamp:  fixedTime,
	}
	req, err := BuildNotificationEmail(r, []string{"admin@tic.club"}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(req.HTML, "<script>") {
		t.Errorf("raw script tag in email body: %s", req.HTML)
	}
	if strings.Contains(req.HTML, "<strong>bold</strong>") {
		t.Errorf("applicant markdown was interpreted: %s", req.HTML)
	}
	if !strings.Contains(req.HTML, "Technical Coordinator, Research Coordinator") {
		t.Errorf("positions missing: %s", req.HTML)
	}
	if req.ReplyTo != "a@b.com" || req.To[0] != "admin@tic.club" {
		t.Errorf("addressing wrong: %+v", req)
	}
}

func TestRegistrationNotifier_SendsInBackground(t *testing.T) {
	sender := email.NewNoopSender()
	done := make(chan error, 1)
	n := &RegistrationNotifier{Sender: sender, To: []string{"admin@tic.club"}, done: func(err error) { done <- err }}

	n.Dispatch(registration.Registration{Name: "A", Email: "a@b.com", Timestamp: fixedTime})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("send err = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("notification never sent")
	}
	if got := sender.Sent(); len(got) != 1 || got[0].Subject != "New application: A" {
		t.Errorf("sent = %+v", got)
	}
}

func TestRegistrationNotifier_NoRecipientsIsNoop(t *testing.T) {
	sender := email.NewNoopSender()
	n := &RegistrationNotifier{Sender: sender}
	n.Dispatch(registration.Registration{Name: "A"})
	time.Sleep(20 * time.Millisecond)
	if len(sender.Sent()) != 0 {
		t.Error("notifier without recipients must not send")
	}
}
