// Package literature searches external academic databases for work related
// to a submission. Results only enrich the review context; every source
// failure degrades to a warning.
package literature

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/ports"
)

// resultsPerSource keeps the review prompt context manageable.
const resultsPerSource = 5

const maxQueryLength = 500

var markdownChars = regexp.MustCompile("[#*_`\\[\\]()]")

// Search aggregates configured sources behind one call.
type Search struct {
	sources []ports.LiteratureSource
	logger  *slog.Logger
}

// NewSearch wires the registered sources.
func NewSearch(sources []ports.LiteratureSource, log *slog.Logger) *Search {
	return &Search{sources: sources, logger: log}
}

// Run queries every source and collects matches plus per-source warnings.
// A failing source never fails the run.
func (s *Search) Run(ctx context.Context, title, abstract string) ([]domain.LiteratureMatch, []string) {
	query := BuildQuery(title, abstract)
	if query == "" {
		return nil, nil
	}

	var matches []domain.LiteratureMatch
	var warnings []string
	for _, source := range s.sources {
		results, err := source.Search(ctx, query, resultsPerSource)
		if err != nil {
			s.debug("literature source failed", "source", source.Name(), "error", err)
			warnings = append(warnings, fmt.Sprintf("%s search failed: %v", source.Name(), err))
			continue
		}
		s.debug("literature source done", "source", source.Name(), "count", len(results))
		matches = append(matches, results...)
	}

	return matches, warnings
}

// BuildQuery combines the title with the leading abstract words, stripping
// Markdown punctuation and capping the length for API limits.
func BuildQuery(title, abstract string) string {
	cleanTitle := strings.TrimSpace(markdownChars.ReplaceAllString(title, ""))

	abstractWords := strings.Fields(markdownChars.ReplaceAllString(abstract, ""))
	if len(abstractWords) > 50 {
		abstractWords = abstractWords[:50]
	}

	query := strings.TrimSpace(cleanTitle + " " + strings.Join(abstractWords, " "))
	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
	}
	return query
}

func (s *Search) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
