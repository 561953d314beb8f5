// Package novelty finds related published work via term-set similarity and
// flags submissions that appear to update an existing paper.
package novelty

import (
	"fmt"
	"sort"
	"strings"

	"PubrootReview/internal/domain"
)

// Thresholds configures candidate filtering and supersession detection.
type Thresholds struct {
	MinOverlapTerms      int     `yaml:"minOverlapTerms"`
	MaxRelated           int     `yaml:"maxRelated"`
	SupersessionMinScore float64 `yaml:"supersessionMinScore"`
}

// DefaultThresholds returns the production matcher configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinOverlapTerms:      3,
		MaxRelated:           5,
		SupersessionMinScore: 0.3,
	}
}

// stopWords are removed from term sets before comparison.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"of": {}, "in": {}, "to": {}, "for": {}, "and": {}, "or": {}, "on": {},
	"with": {}, "as": {}, "by": {}, "this": {}, "that": {}, "it": {},
	"from": {}, "at": {}, "be": {}, "has": {}, "had": {}, "have": {},
}

// Matcher scores submissions against the publication history.
type Matcher struct {
	thresholds Thresholds
}

// NewMatcher wires matcher thresholds; zero thresholds fall back to defaults.
func NewMatcher(t Thresholds) *Matcher {
	if t == (Thresholds{}) {
		t = DefaultThresholds()
	}
	return &Matcher{thresholds: t}
}

type candidate struct {
	record     domain.PublicationRecord
	similarity float64
	order      int
}

// FindRelated ranks the history by Jaccard similarity against the query
// title+abstract and flags at most one supersession candidate. Empty input
// or history yields an empty result, never an error.
func (m *Matcher) FindRelated(title, abstract, category string, history []domain.PublicationRecord) domain.NoveltyResult {
	queryTerms := termSet(title + " " + abstract)
	if len(queryTerms) == 0 || len(history) == 0 {
		return domain.NoveltyResult{}
	}

	var candidates []candidate
	for i, record := range history {
		recordTerms := termSet(record.Title + " " + record.Abstract)
		if len(recordTerms) == 0 {
			continue
		}

		overlap, union := overlapAndUnion(queryTerms, recordTerms)
		// Absolute overlap floor: tiny term sets can share a high ratio by
		// accident, so a ratio alone is not enough.
		if overlap < m.thresholds.MinOverlapTerms {
			continue
		}

		candidates = append(candidates, candidate{
			record:     record,
			similarity: round3(float64(overlap) / float64(union)),
			order:      i,
		})
	}

	// Rank by similarity descending; ties keep input order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})
	if len(candidates) > m.thresholds.MaxRelated {
		candidates = candidates[:m.thresholds.MaxRelated]
	}

	result := domain.NoveltyResult{}
	for _, c := range candidates {
		result.Related = append(result.Related, domain.RankedMatch{
			Publication: c.record,
			Similarity:  c.similarity,
		})

		// First ranked candidate that qualifies wins; later ones never
		// replace it even with equal similarity.
		if result.Supersession == nil &&
			c.similarity > m.thresholds.SupersessionMinScore &&
			c.record.Category == category &&
			c.record.Status != domain.StatusSuperseded {
			result.Supersession = &domain.SupersessionFlag{
				ExistingID:    c.record.ID,
				ExistingTitle: c.record.Title,
				Similarity:    c.similarity,
				Message: fmt.Sprintf(
					"This submission appears to be related to existing paper '%s' (ID: %s). "+
						"The reviewer should determine if this is an update, duplicate, or independent contribution.",
					c.record.Title, c.record.ID),
			}
		}
	}

	return result
}

// termSet lowercases, tokenizes on whitespace, and strips stop words.
func termSet(text string) map[string]struct{} {
	terms := map[string]struct{}{}
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if _, stop := stopWords[token]; stop {
			continue
		}
		terms[token] = struct{}{}
	}
	return terms
}

func overlapAndUnion(a, b map[string]struct{}) (int, int) {
	overlap := 0
	for term := range a {
		if _, ok := b[term]; ok {
			overlap++
		}
	}
	return overlap, len(a) + len(b) - overlap
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
