package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"ticclub/internal/adapters/telemetry"
)

func TestOpen_InMemoryCreatesSchema(t *testing.T) {
	db, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='registration'").Scan(&name)
	if err != nil {
		t.Fatalf("registration table missing: %v", err)
	}
}

func TestOpen_FileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tic.db")
	for i := 0; i < 2; i++ {
		db, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i, err)
		}
		db.Close()
	}
}

func TestTimedDB_ObservesQueries(t *testing.T) {
	db, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	timed := NewTimedDB(db, 0)
	defer timed.Close()

	before := testutil.CollectAndCount(telemetry.DBQueryDuration)
	if _, err := timed.ExecContext(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	if after := testutil.CollectAndCount(telemetry.DBQueryDuration); after < before || after == 0 {
		t.Errorf("expected exec series to be observed, before=%d after=%d", before, after)
	}
}
