package registration_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ticclub/internal/adapters/storage"
	regStore "ticclub/internal/adapters/storage/registration"
	domain "ticclub/internal/domain/registration"
)

// storeFactories runs the same contract against every Store implementation.
func storeFactories(t *testing.T) map[string]regStore.Store {
	t.Helper()
	db, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]regStore.Store{
		"memory": regStore.NewMemoryStore(),
		"sqlite": regStore.NewSQLiteStore(storage.NewTimedDB(db, 0)),
	}
}

func sample(i int) domain.Registration {
	return domain.Registration{
		ID:         fmt.Sprintf("id-%d", i),
		Name:       fmt.Sprintf("Applicant %d", i),
		Email:      fmt.Sprintf("a%d@example.com", i),
		Phone:      "123",
		Department: "CS",
		Motivation: `likes "quotes"`,
		Positions:  []string{"Research Coordinator", "Technical Coordinator"},
		Timestamp:  time.Date(2025, 10, 25, 10, i, 0, 0, time.UTC),
	}
}

func TestStore_PreservesInsertionOrder(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 5; i++ {
				if err := store.Add(ctx, sample(i)); err != nil {
					t.Fatalf("Add(%d): %v", i, err)
				}
			}
			list, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != 5 {
				t.Fatalf("len = %d, want 5", len(list))
			}
			for i, r := range list {
				if r.ID != fmt.Sprintf("id-%d", i) {
					t.Errorf("list[%d].ID = %s", i, r.ID)
				}
			}
			got := list[0]
			if got.Positions[0] != "Research Coordinator" || got.Positions[1] != "Technical Coordinator" {
				t.Errorf("positions order lost: %v", got.Positions)
			}
			if !got.Timestamp.Equal(sample(0).Timestamp) {
				t.Errorf("timestamp = %v", got.Timestamp)
			}
			n, err := store.Count(ctx)
			if err != nil || n != 5 {
				t.Errorf("Count = %d, %v", n, err)
			}
		})
	}
}

func TestStore_RejectsDuplicateID(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Add(ctx, sample(1)); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if err := store.Add(ctx, sample(1)); err == nil {
				t.Error("expected duplicate ID to be rejected")
			}
		})
	}
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	store := regStore.NewMemoryStore()
	ctx := context.Background()
	_ = store.Add(ctx, sample(0))
	list, _ := store.List(ctx)
	list[0].Name = "mutated"
	again, _ := store.List(ctx)
	if again[0].Name == "mutated" {
		t.Error("List must not expose internal state")
	}
}
