package priority

import (
	"time"

	"PubrootReview/internal/domain"
)

// Demand levels for a category slot.
const (
	DemandOpen    = 1.0
	DemandSoon    = 0.5
	DemandBlocked = 0.0
)

// openingSoonWindow is how close the slot-open date must be to count as
// "opening soon" rather than blocked.
const openingSoonWindow = 7 * 24 * time.Hour

// Demand reports how open a category's slot is: 1.0 open, 0.5 opening within
// a week, 0.0 blocked. Missing policy or publication data degrades to open,
// so a data outage can never block a run.
func Demand(policy domain.CategoryPolicy, latestPublication time.Time, now time.Time) float64 {
	if policy.RefreshRateDays <= 0 {
		return DemandOpen
	}
	if latestPublication.IsZero() {
		return DemandOpen
	}

	slotOpens := latestPublication.AddDate(0, 0, policy.RefreshRateDays)
	if !now.Before(slotOpens) {
		return DemandOpen
	}
	if slotOpens.Sub(now) <= openingSoonWindow {
		return DemandSoon
	}
	return DemandBlocked
}

// LatestInCategory finds the most recent publication date for a category.
// Records with zero dates are skipped; an empty result means no prior paper.
func LatestInCategory(records []domain.PublicationRecord, category string) time.Time {
	var latest time.Time
	for _, record := range records {
		if record.Category != category || record.PublishedDate.IsZero() {
			continue
		}
		if record.PublishedDate.After(latest) {
			latest = record.PublishedDate
		}
	}
	return latest
}
