package reputation

import (
	"math"
	"time"

	"PubrootReview/internal/domain"
)

// ApplyDecision folds one review outcome into a contributor record and
// returns the updated copy. Counters only grow; the running averages use
// incremental means so no per-submission history is kept.
func ApplyDecision(record domain.ContributorRecord, score float64, accepted bool, category string, now time.Time) domain.ContributorRecord {
	if record.Categories == nil {
		record.Categories = map[string]domain.CategoryStats{}
	}
	if record.FirstSeen.IsZero() {
		record.FirstSeen = now
	}
	record.LastSubmission = now
	record.TotalSubmissions++
	if accepted {
		record.Accepted++
	} else {
		record.Rejected++
	}

	total := float64(record.TotalSubmissions)
	record.AcceptanceRate = round3(float64(record.Accepted) / total)
	record.AverageScore = round2(record.AverageScore + (score-record.AverageScore)/total)

	stats := record.Categories[category]
	stats.Submissions++
	if accepted {
		stats.Accepted++
	}
	stats.AverageScore = round2(stats.AverageScore + (score-stats.AverageScore)/float64(stats.Submissions))
	record.Categories[category] = stats

	return record
}

// ApplyDecisionAndScore updates the stats and immediately refreshes the
// cached reputation so the record never leaves this package stale.
func (e *Engine) ApplyDecisionAndScore(record domain.ContributorRecord, score float64, accepted bool, category string, now time.Time) domain.ContributorRecord {
	record = ApplyDecision(record, score, accepted, category, now)
	result := e.Compute(record, now)
	record.ReputationScore = result.Score
	record.ReputationTier = result.Tier
	return record
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
