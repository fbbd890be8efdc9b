package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

func TestNoopSender_RecordsRequests(t *testing.T) {
	s := NewNoopSender()
	res, err := s.Send(context.Background(), SendRequest{To: []string{"a@b.c"}, Subject: "hi"})
	if err != nil || res.MessageID == "" {
		t.Fatalf("Send = %+v, %v", res, err)
	}
	sent := s.Sent()
	if len(sent) != 1 || sent[0].Subject != "hi" {
		t.Errorf("Sent() = %+v", sent)
	}
}

func TestNoopSender_RetentionIsBounded(t *testing.T) {
	s := NewNoopSender()
	total := noopRetain + 25
	for i := 0; i < total; i++ {
		if _, err := s.Send(context.Background(), SendRequest{Subject: strconv.Itoa(i)}); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	sent := s.Sent()
	if len(sent) != noopRetain {
		t.Fatalf("retained %d requests, want %d", len(sent), noopRetain)
	}
	if sent[0].Subject != strconv.Itoa(total-noopRetain) || sent[len(sent)-1].Subject != strconv.Itoa(total-1) {
		t.Errorf("retained window = %q..%q, want the most recent", sent[0].Subject, sent[len(sent)-1].Subject)
	}
}

func TestResendSender_PostsEmail(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" || r.Header.Get("Authorization") != "Bearer re_test" {
			t.Errorf("unexpected request %s %s", r.URL.Path, r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test", "TIC Club <noreply@ticclub.in>")
	base, _ := url.Parse(srv.URL + "/")
	s.client.BaseURL = base

	res, err := s.Send(context.Background(), SendRequest{
		To:      []string{"club@ticclub.in"},
		Subject: "New application: Asha",
		HTML:    "<p>hi</p>",
		ReplyTo: "asha@example.com",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.MessageID != "msg_123" {
		t.Errorf("MessageID = %q", res.MessageID)
	}
	if got["from"] != "TIC Club <noreply@ticclub.in>" || got["subject"] != "New application: Asha" {
		t.Errorf("payload = %v", got)
	}
}
