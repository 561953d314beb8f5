package domain

import "time"

// Tier is the discrete trust classification derived from a reputation score.
type Tier string

const (
	TierNew         Tier = "new"
	TierEmerging    Tier = "emerging"
	TierEstablished Tier = "established"
	TierTrusted     Tier = "trusted"
	TierAuthority   Tier = "authority"
	TierSuspended   Tier = "suspended"
)

// Flags counts abuse markers accumulated by a contributor. They are never reset.
type Flags struct {
	SpamSubmissions         int
	PromptInjectionAttempts int
	DMCAStrikes             int
}

// CategoryStats is a contributor's per-category submission breakdown.
type CategoryStats struct {
	Submissions  int
	Accepted     int
	AverageScore float64
}

// ContributorRecord tracks one contributor's full submission history.
// ReputationScore and ReputationTier are cache: always recomputed from the
// other fields, never edited independently.
type ContributorRecord struct {
	Handle           string
	TotalSubmissions int
	Accepted         int
	Rejected         int
	AcceptanceRate   float64
	AverageScore     float64
	Categories       map[string]CategoryStats
	FirstSeen        time.Time
	LastSubmission   time.Time
	Flags            Flags
	ReputationScore  float64
	ReputationTier   Tier
}

// NewContributorRecord initializes the record created on a handle's first submission.
func NewContributorRecord(handle string, now time.Time) ContributorRecord {
	return ContributorRecord{
		Handle:         handle,
		Categories:     map[string]CategoryStats{},
		FirstSeen:      now,
		LastSubmission: now,
		ReputationTier: TierNew,
	}
}

// ScoreResult is the reputation engine's computed value for one record.
type ScoreResult struct {
	Score float64
	Tier  Tier
}
