package priority

import (
	"testing"
	"time"

	"PubrootReview/internal/domain"
)

func TestDemandAlwaysOpenCategory(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	policy := domain.CategoryPolicy{RefreshRateDays: 0}

	// Zero refresh rate is open no matter how recent the last paper was.
	if got := Demand(policy, now.AddDate(0, 0, -1), now); got != DemandOpen {
		t.Fatalf("expected 1.0 for refresh rate 0, got %v", got)
	}
	if got := Demand(policy, time.Time{}, now); got != DemandOpen {
		t.Fatalf("expected 1.0 with no history, got %v", got)
	}
}

func TestDemandNoPriorPublication(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	policy := domain.CategoryPolicy{RefreshRateDays: 30}

	if got := Demand(policy, time.Time{}, now); got != DemandOpen {
		t.Fatalf("expected 1.0 for empty category, got %v", got)
	}
}

func TestDemandSlotBlocked(t *testing.T) {
	t.Parallel()

	// llm-benchmarks scenario: 30-day refresh, published 10 days ago,
	// 20 days remaining > 7 → blocked.
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	policy := domain.CategoryPolicy{RefreshRateDays: 30}
	latest := now.AddDate(0, 0, -10)

	if got := Demand(policy, latest, now); got != DemandBlocked {
		t.Fatalf("expected 0.0 for blocked slot, got %v", got)
	}
}

func TestDemandOpeningSoon(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	policy := domain.CategoryPolicy{RefreshRateDays: 30}
	latest := now.AddDate(0, 0, -25) // reopens in 5 days

	if got := Demand(policy, latest, now); got != DemandSoon {
		t.Fatalf("expected 0.5 for slot opening soon, got %v", got)
	}
}

func TestDemandSlotOpen(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	policy := domain.CategoryPolicy{RefreshRateDays: 30}
	latest := now.AddDate(0, 0, -31)

	if got := Demand(policy, latest, now); got != DemandOpen {
		t.Fatalf("expected 1.0 for expired window, got %v", got)
	}

	// Boundary: window elapses exactly now.
	latest = now.AddDate(0, 0, -30)
	if got := Demand(policy, latest, now); got != DemandOpen {
		t.Fatalf("expected 1.0 at exact boundary, got %v", got)
	}
}

func TestLatestInCategory(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.PublicationRecord{
		{ID: "a", Category: "llm-benchmarks", PublishedDate: now.AddDate(0, 0, -40)},
		{ID: "b", Category: "llm-benchmarks", PublishedDate: now.AddDate(0, 0, -10)},
		{ID: "c", Category: "ai-tooling", PublishedDate: now.AddDate(0, 0, -1)},
		{ID: "d", Category: "llm-benchmarks"},
	}

	latest := LatestInCategory(records, "llm-benchmarks")
	if !latest.Equal(now.AddDate(0, 0, -10)) {
		t.Fatalf("unexpected latest date: %v", latest)
	}

	if !LatestInCategory(records, "unknown").IsZero() {
		t.Fatalf("expected zero time for empty category")
	}
}
