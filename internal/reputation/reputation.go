package reputation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/ports"
)

// Weights configures the reputation formula. All tuning lives here so the
// scoring control flow never changes when thresholds do.
type Weights struct {
	AcceptanceRate float64 `yaml:"acceptanceRate"`
	AverageScore   float64 `yaml:"averageScore"`
	Consistency    float64 `yaml:"consistency"`
	Recency        float64 `yaml:"recency"`

	SpamPenalty      float64 `yaml:"spamPenalty"`
	InjectionPenalty float64 `yaml:"injectionPenalty"`
	DMCAPenalty      float64 `yaml:"dmcaPenalty"`

	FullRecencyDays  int     `yaml:"fullRecencyDays"`
	ZeroRecencyDays  int     `yaml:"zeroRecencyDays"`
	DecayAfterDays   int     `yaml:"decayAfterDays"`
	DecayPerMonth    float64 `yaml:"decayPerMonth"`
	ConsistencyScale float64 `yaml:"consistencyScale"`

	SuspendSpam      int `yaml:"suspendSpam"`
	SuspendInjection int `yaml:"suspendInjection"`
	SuspendDMCA      int `yaml:"suspendDmca"`
}

// DefaultWeights returns the production scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		AcceptanceRate:   0.40,
		AverageScore:     0.30,
		Consistency:      0.15,
		Recency:          0.15,
		SpamPenalty:      0.10,
		InjectionPenalty: 0.20,
		DMCAPenalty:      0.30,
		FullRecencyDays:  90,
		ZeroRecencyDays:  365,
		DecayAfterDays:   180,
		DecayPerMonth:    0.10,
		ConsistencyScale: 6.0,
		SuspendSpam:      3,
		SuspendInjection: 2,
		SuspendDMCA:      1,
	}
}

// Engine computes trust scores and tiers from contributor history.
type Engine struct {
	weights Weights
	logger  *slog.Logger
}

// NewEngine wires a scoring configuration; zero weights fall back to defaults.
func NewEngine(w Weights, log *slog.Logger) *Engine {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Engine{weights: w, logger: log}
}

// Compute derives the reputation score and tier for one contributor snapshot.
// It is a pure function of the record and now; it never fails for a
// structurally valid record.
func (e *Engine) Compute(record domain.ContributorRecord, now time.Time) domain.ScoreResult {
	w := e.weights

	if record.TotalSubmissions == 0 {
		return domain.ScoreResult{Score: 0.0, Tier: domain.TierNew}
	}

	f := record.Flags
	if f.DMCAStrikes >= w.SuspendDMCA || f.PromptInjectionAttempts >= w.SuspendInjection || f.SpamSubmissions >= w.SuspendSpam {
		return domain.ScoreResult{Score: -1.0, Tier: domain.TierSuspended}
	}

	normalizedScore := math.Min(record.AverageScore/10.0, 1.0)
	consistency := math.Min(math.Log2(float64(record.TotalSubmissions)+1)/w.ConsistencyScale, 1.0)
	recency := e.recencyBonus(record.LastSubmission, now)

	raw := w.AcceptanceRate*record.AcceptanceRate +
		w.AverageScore*normalizedScore +
		w.Consistency*consistency +
		w.Recency*recency

	penalty := w.SpamPenalty*float64(f.SpamSubmissions) +
		w.InjectionPenalty*float64(f.PromptInjectionAttempts) +
		w.DMCAPenalty*float64(f.DMCAStrikes)

	final := clamp(raw-penalty, 0.0, 1.0)

	// Inactivity decay applies after clamping and on top of the recency
	// component: an abandoned account loses both.
	if !record.LastSubmission.IsZero() {
		daysInactive := daysBetween(record.LastSubmission, now)
		if daysInactive > w.DecayAfterDays {
			monthsOver := float64(daysInactive-w.DecayAfterDays) / 30.0
			decay := math.Max(0.0, 1.0-w.DecayPerMonth*monthsOver)
			final *= decay
		}
	}

	final = round3(final)
	return domain.ScoreResult{Score: final, Tier: e.tierFor(final)}
}

// recencyBonus is 1.0 inside the full-recency window, decays linearly to 0.0
// at the zero-recency boundary, and is 0.0 for missing timestamps.
func (e *Engine) recencyBonus(last time.Time, now time.Time) float64 {
	if last.IsZero() {
		return 0.0
	}
	days := daysBetween(last, now)
	w := e.weights
	switch {
	case days <= w.FullRecencyDays:
		return 1.0
	case days <= w.ZeroRecencyDays:
		span := float64(w.ZeroRecencyDays - w.FullRecencyDays)
		return math.Max(0.0, 1.0-float64(days-w.FullRecencyDays)/span)
	default:
		return 0.0
	}
}

func (e *Engine) tierFor(score float64) domain.Tier {
	switch {
	case score >= 0.90:
		return domain.TierAuthority
	case score >= 0.70:
		return domain.TierTrusted
	case score >= 0.40:
		return domain.TierEstablished
	case score > 0.0:
		return domain.TierEmerging
	default:
		return domain.TierNew
	}
}

// UpdateAll recomputes and persists reputation for every stored contributor.
// Running it twice with no elapsed time produces identical records, so it is
// safe to schedule aggressively.
func (e *Engine) UpdateAll(ctx context.Context, store ports.ContributorStore, now time.Time) (int, error) {
	records, err := store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list contributors: %w", err)
	}

	updated := 0
	for _, record := range records {
		result := e.Compute(record, now)
		if record.ReputationScore == result.Score && record.ReputationTier == result.Tier {
			continue
		}
		record.ReputationScore = result.Score
		record.ReputationTier = result.Tier
		if err := store.Put(ctx, record); err != nil {
			return updated, fmt.Errorf("persist contributor %s: %w", record.Handle, err)
		}
		e.debug("reputation refreshed", "handle", record.Handle, "score", result.Score, "tier", result.Tier)
		updated++
	}

	return updated, nil
}

func (e *Engine) debug(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
