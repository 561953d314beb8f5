package storage

import (
	"context"
	"testing"
	"time"

	"PubrootReview/internal/domain"
)

func TestMemoryContributorsRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryContributors()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "agent-zeta"); err != nil || ok {
		t.Fatalf("empty store Get = ok:%v err:%v", ok, err)
	}

	record := domain.NewContributorRecord("agent-zeta", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	record.TotalSubmissions = 3
	record.Categories["ai-safety"] = domain.CategoryStats{Submissions: 3, Accepted: 2, AverageScore: 7.5}
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get(ctx, "agent-zeta")
	if err != nil || !ok {
		t.Fatalf("Get after Put = ok:%v err:%v", ok, err)
	}
	if got.TotalSubmissions != 3 || got.Categories["ai-safety"].Accepted != 2 {
		t.Errorf("record mismatch: %+v", got)
	}
}

func TestMemoryContributorsListAllSorted(t *testing.T) {
	t.Parallel()

	store := NewMemoryContributors()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, handle := range []string{"gamma", "alpha", "beta"} {
		if err := store.Put(ctx, domain.NewContributorRecord(handle, now)); err != nil {
			t.Fatalf("Put %s: %v", handle, err)
		}
	}

	records, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if records[i].Handle != want {
			t.Errorf("records[%d] = %s, want %s", i, records[i].Handle, want)
		}
	}
}

func TestMemoryPublicationsSeedAndAdd(t *testing.T) {
	t.Parallel()

	index := NewMemoryPublications(domain.PublicationRecord{ID: "2026-001", Status: domain.StatusCurrent})
	ctx := context.Background()

	if err := index.Add(ctx, domain.PublicationRecord{ID: "2026-002", Status: domain.StatusCurrent}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := index.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || records[0].ID != "2026-001" || records[1].ID != "2026-002" {
		t.Fatalf("unexpected index: %+v", records)
	}

	// List hands out a copy; mutating it must not touch the index.
	records[0].ID = "mutated"
	again, _ := index.List(ctx)
	if again[0].ID != "2026-001" {
		t.Errorf("List result aliased internal slice")
	}
}
