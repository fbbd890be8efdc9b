package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ticclub/internal/domain/registration"
)

func TestExecuteExportRegistrations(t *testing.T) {
	store := &mockRegistrationStore{}
	_ = store.Add(context.Background(), registration.Registration{
		ID: "1", Name: "A", Email: "a@b.com", Phone: "123", Department: "CS", Motivation: "m",
		Positions: []string{"X", "Y"}, Timestamp: fixedTime,
	})

	res, err := ExecuteExportRegistrations(context.Background(), ExportRegistrationsDeps{
		Store:    store,
		Location: time.FixedZone("IST", 19800),
		Now:      fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Filename != "TIC_Club_Applications_2025-10-25.csv" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if res.Rows != 1 {
		t.Errorf("Rows = %d", res.Rows)
	}
	want := `"1","A","a@b.com","123","CS","m","X; Y","25/10/2025, 10:30:00 am"`
	if !strings.HasSuffix(string(res.Content), "\n"+want) {
		t.Errorf("content = %q", res.Content)
	}
}

func TestExecuteExportRegistrations_Empty(t *testing.T) {
	res, err := ExecuteExportRegistrations(context.Background(), ExportRegistrationsDeps{Store: &mockRegistrationStore{}})
	if !errors.Is(err, registration.ErrNoRegistrations) {
		t.Fatalf("err = %v, want ErrNoRegistrations", err)
	}
	if len(res.Content) != 0 || res.Filename != "" {
		t.Errorf("empty export produced a file: %+v", res)
	}
}
