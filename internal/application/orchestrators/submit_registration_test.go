package orchestrators

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ticclub/internal/domain/registration"
)

// mockRegistrationStore implements RegistrationStore and RegistrationLister for testing.
type mockRegistrationStore struct {
	mu      sync.Mutex
	items   []registration.Registration
	saveErr error
}

// Add implements RegistrationStore.
func (m *mockRegistrationStore) Add(_ context.Context, r registration.Registration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, r)
	return nil
}

// List implements RegistrationLister.
func (m *mockRegistrationStore) List(_ context.Context) ([]registration.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]registration.Registration(nil), m.items...), nil
}

// recordingDispatcher captures dispatched registrations.
type recordingDispatcher struct {
	mu   sync.Mutex
	seen []registration.Registration
}

// Dispatch implements RegistrationDispatcher.
func (d *recordingDispatcher) Dispatch(r registration.Registration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = append(d.seen, r)
}

var fixedTime = time.Date(2025, 10, 25, 5, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func validSubmitInput() SubmitRegistrationInput {
	return SubmitRegistrationInput{
		Name:       "A",
		Email:      "a@b.com",
		Phone:      "123",
		Department: "CS",
		Motivation: "m",
		Positions:  []string{"Technical Coordinator", "Research Coordinator"},
	}
}

func submitDeps(store *mockRegistrationStore, d *recordingDispatcher) SubmitRegistrationDeps {
	return SubmitRegistrationDeps{
		Store:      store,
		Dispatcher: d,
		Catalog:    registration.DefaultPositions,
		Now:        fixedNow,
	}
}

// TestExecuteSubmitRegistration_Valid stores, stamps and dispatches.
func TestExecuteSubmitRegistration_Valid(t *testing.T) {
	store := &mockRegistrationStore{}
	d := &recordingDispatcher{}
	r, err := ExecuteSubmitRegistration(context.Background(), validSubmitInput(), submitDeps(store, d))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID == "" {
		t.Error("ID not assigned")
	}
	if !r.Timestamp.Equal(fixedTime) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, fixedTime)
	}
	if len(store.items) != 1 || store.items[0].ID != r.ID {
		t.Errorf("store = %+v", store.items)
	}
	if len(d.seen) != 1 || d.seen[0].ID != r.ID {
		t.Errorf("dispatched = %+v", d.seen)
	}
	if r.Positions[0] != "Technical Coordinator" {
		t.Errorf("selection order lost: %v", r.Positions)
	}
}

func TestExecuteSubmitRegistration_OnePositionAccepted(t *testing.T) {
	in := validSubmitInput()
	in.Positions = []string{"Design & Creative Coordinator"}
	if _, err := ExecuteSubmitRegistration(context.Background(), in, submitDeps(&mockRegistrationStore{}, &recordingDispatcher{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecuteSubmitRegistration_PositionBounds rejects 0 and >2 without side effects.
func TestExecuteSubmitRegistration_PositionBounds(t *testing.T) {
	tests := []struct {
		name      string
		positions []string
		want      error
	}{
		{"zero", nil, registration.ErrNoPositions},
		{"three", []string{"Technical Coordinator", "Research Coordinator", "Social Media Coordinator"}, registration.ErrTooManyPositions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockRegistrationStore{}
			d := &recordingDispatcher{}
			in := validSubmitInput()
			in.Positions = tt.positions
			_, err := ExecuteSubmitRegistration(context.Background(), in, submitDeps(store, d))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(store.items) != 0 || len(d.seen) != 0 {
				t.Error("rejected submission must not be stored or dispatched")
			}
		})
	}
}

func TestExecuteSubmitRegistration_InvalidEmail(t *testing.T) {
	in := validSubmitInput()
	in.Email = "nope"
	_, err := ExecuteSubmitRegistration(context.Background(), in, submitDeps(&mockRegistrationStore{}, &recordingDispatcher{}))
	if !errors.Is(err, registration.ErrInvalidEmail) {
		t.Fatalf("err = %v", err)
	}
}

func TestExecuteSubmitRegistration_StoreErrorSkipsDispatch(t *testing.T) {
	store := &mockRegistrationStore{saveErr: errors.New("disk full")}
	d := &recordingDispatcher{}
	if _, err := ExecuteSubmitRegistration(context.Background(), validSubmitInput(), submitDeps(store, d)); err == nil {
		t.Fatal("expected store error")
	}
	if len(d.seen) != 0 {
		t.Error("nothing should be dispatched when the store fails")
	}
}

func TestExecuteSubmitRegistration_CallsNotifier(t *testing.T) {
	n := &recordingDispatcher{}
	deps := submitDeps(&mockRegistrationStore{}, &recordingDispatcher{})
	deps.Notifier = n
	if _, err := ExecuteSubmitRegistration(context.Background(), validSubmitInput(), deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.seen) != 1 {
		t.Errorf("notifier calls = %d, want 1", len(n.seen))
	}
}
