package forward

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticclub/internal/domain/registration"
)

func TestHTTPDispatcher_PostsJSONWithoutBlocking(t *testing.T) {
	received := make(chan map[string]any, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		received <- body
		<-release
	}))
	defer srv.Close()

	done := make(chan error, 1)
	d := NewHTTPDispatcher(srv.URL, srv.Client(), time.Second).OnDone(func(err error) { done <- err })

	start := time.Now()
	d.Dispatch(registration.Registration{
		ID:        "hidden",
		Name:      "A",
		Email:     "a@b.com",
		Positions: []string{"X", "Y"},
		Timestamp: time.Date(2025, 10, 25, 10, 30, 0, 0, time.UTC),
	})
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("Dispatch blocked on the network call")
	}

	body := <-received
	close(release)
	if body["name"] != "A" || body["timestamp"] != "2025-10-25T10:30:00Z" {
		t.Errorf("unexpected body: %v", body)
	}
	if _, ok := body["ID"]; ok {
		t.Error("internal ID must not be forwarded")
	}
	if err := <-done; err != nil {
		t.Errorf("delivery err = %v", err)
	}
}

func TestHTTPDispatcher_ServerErrorIsNotInspected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	done := make(chan error, 1)
	d := NewHTTPDispatcher(srv.URL, srv.Client(), time.Second).OnDone(func(err error) { done <- err })
	d.Dispatch(registration.Registration{Name: "A"})
	if err := <-done; err != nil {
		t.Errorf("status codes are opaque, got err = %v", err)
	}
}

func TestHTTPDispatcher_TransportFailureIsSwallowed(t *testing.T) {
	done := make(chan error, 1)
	d := NewHTTPDispatcher("http://127.0.0.1:1/unreachable", nil, 500*time.Millisecond).OnDone(func(err error) { done <- err })
	d.Dispatch(registration.Registration{Name: "A"})
	select {
	case err := <-done:
		if err == nil {
			t.Error("expected a transport error to be reported to the hook")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("delivery never finished")
	}
}
