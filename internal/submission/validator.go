package submission

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/priority"
)

// Limits configures the validation gate thresholds.
type Limits struct {
	AbstractMaxWords  int `yaml:"abstractMaxWords"`
	AbstractWarnWords int `yaml:"abstractWarnWords"`
	BodyMinWords      int `yaml:"bodyMinWords"`
	InjectionScanSize int `yaml:"injectionScanSize"`
	LanguageMinWords  int `yaml:"languageMinWords"`
}

// DefaultLimits returns the production gate thresholds.
func DefaultLimits() Limits {
	return Limits{
		AbstractMaxWords:  350,
		AbstractWarnWords: 300,
		BodyMinWords:      200,
		InjectionScanSize: 2000,
		LanguageMinWords:  50,
	}
}

// injectionPatterns are the obvious manipulation phrasings rejected outright.
// Deeper sanitization belongs to the prompt-assembly stage, not this gate.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)ignore\s+the\s+above`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?prior`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an)`),
	regexp.MustCompile(`(?i)new\s+instructions?\s*:`),
	regexp.MustCompile(`(?i)system\s*:\s*you`),
	regexp.MustCompile(`(?i)<\s*system\s*>`),
	regexp.MustCompile(`(?i)override\s+(the\s+)?prompt`),
	regexp.MustCompile(`(?i)forget\s+(everything|all|your)`),
}

var (
	githubRepoPattern = regexp.MustCompile(`^https?://github\.com/[\w.-]+/[\w.-]+/?$`)
	commitSHAPattern  = regexp.MustCompile(`^(?i)[0-9a-f]{7,40}$`)
)

// commonEnglishWords drive the cheap language heuristic.
var commonEnglishWords = []string{"the", "is", "of", "and", "to", "in", "a", "that", "for", "it"}

// Validator applies the full submission gate.
type Validator struct {
	limits Limits
}

// NewValidator wires gate thresholds; zero limits fall back to defaults.
func NewValidator(limits Limits) *Validator {
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	return &Validator{limits: limits}
}

// Validate parses the raw submission and runs every check. Checks never
// short-circuit: all failures are reported together. A nil policies map
// means the registry was unreadable; that is a system warning, not a
// submitter error.
func (v *Validator) Validate(
	raw string,
	author string,
	policies map[string]domain.CategoryPolicy,
	history []domain.PublicationRecord,
	now time.Time,
) domain.ValidationResult {
	parsed := Parse(raw, author)
	var errors, warnings []string

	if parsed.Title == "" {
		errors = append(errors, "Missing required field: Article Title")
	}
	if parsed.Category == "" {
		errors = append(errors, "Missing required field: Category")
	}
	if parsed.Abstract == "" {
		errors = append(errors, "Missing required field: Abstract")
	}
	if parsed.Body == "" {
		errors = append(errors, "Missing required field: Article Body")
	}

	limits := v.limits
	if parsed.WordCountAbstract > limits.AbstractMaxWords {
		errors = append(errors, fmt.Sprintf(
			"Abstract exceeds %d-word limit (%d words). Please condense your abstract.",
			limits.AbstractWarnWords, parsed.WordCountAbstract))
	} else if parsed.WordCountAbstract > limits.AbstractWarnWords {
		warnings = append(warnings, fmt.Sprintf(
			"Abstract is slightly over %d words (%d words). Consider trimming for clarity.",
			limits.AbstractWarnWords, parsed.WordCountAbstract))
	}

	if parsed.WordCountBody < limits.BodyMinWords {
		errors = append(errors, fmt.Sprintf(
			"Article body is too short (%d words, minimum %d). Please provide a more detailed writeup.",
			parsed.WordCountBody, limits.BodyMinWords))
	}

	if policies == nil {
		warnings = append(warnings, "Category registry is unavailable; category checks skipped.")
	} else if parsed.Category != "" {
		policy, known := policies[parsed.Category]
		if !known {
			errors = append(errors, fmt.Sprintf(
				"Invalid category '%s'. Valid categories are: %s",
				parsed.Category, strings.Join(sortedSlugs(policies), ", ")))
		} else if msg := v.slotError(parsed.Category, policy, history, now); msg != "" {
			errors = append(errors, msg)
		}
	}

	if v.looksLikeInjection(parsed) {
		errors = append(errors,
			"Submission flagged for potential prompt injection. "+
				"If this is a false positive, please rephrase the flagged section.")
	}

	if msg := v.languageWarning(parsed); msg != "" {
		warnings = append(warnings, msg)
	}

	if parsed.SupportingRepo != "" && !githubRepoPattern.MatchString(parsed.SupportingRepo) {
		warnings = append(warnings, fmt.Sprintf(
			"Supporting repo URL '%s' doesn't look like a standard GitHub repository URL. "+
				"Expected format: https://github.com/owner/repo", parsed.SupportingRepo))
	}

	if parsed.CommitSHA != "" && !commitSHAPattern.MatchString(parsed.CommitSHA) {
		warnings = append(warnings, fmt.Sprintf(
			"Commit SHA '%s' doesn't look like a valid git SHA. Expected 7-40 character hex string.",
			parsed.CommitSHA))
	}

	return domain.ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
		Parsed:   parsed,
	}
}

// slotError reports a blocked topic slot with a human-readable retry date.
func (v *Validator) slotError(category string, policy domain.CategoryPolicy, history []domain.PublicationRecord, now time.Time) string {
	if policy.RefreshRateDays <= 0 {
		return ""
	}

	latest := priority.LatestInCategory(history, category)
	if latest.IsZero() {
		return ""
	}

	slotOpens := latest.AddDate(0, 0, policy.RefreshRateDays)
	if !now.Before(slotOpens) {
		return ""
	}

	daysRemaining := int(slotOpens.Sub(now).Hours()/24) + 1
	return fmt.Sprintf(
		"Topic slot for '%s' is currently filled. A new article was accepted %d days ago. "+
			"The slot reopens in ~%d days (%s). This category has a %d-day refresh rate.",
		category, int(now.Sub(latest).Hours()/24), daysRemaining,
		slotOpens.Format("2006-01-02"), policy.RefreshRateDays)
}

func (v *Validator) looksLikeInjection(parsed domain.ParsedSubmission) bool {
	body := parsed.Body
	if len(body) > v.limits.InjectionScanSize {
		body = body[:v.limits.InjectionScanSize]
	}
	scanned := parsed.Title + " " + parsed.Abstract + " " + body

	for _, pattern := range injectionPatterns {
		if pattern.MatchString(scanned) {
			return true
		}
	}
	return false
}

// languageWarning flags bodies that barely use common English function words.
func (v *Validator) languageWarning(parsed domain.ParsedSubmission) string {
	if parsed.Body == "" || parsed.WordCountBody < v.limits.LanguageMinWords {
		return ""
	}

	bodyWords := map[string]struct{}{}
	for _, word := range strings.Fields(strings.ToLower(parsed.Body)) {
		bodyWords[word] = struct{}{}
	}

	overlap := 0
	for _, word := range commonEnglishWords {
		if _, ok := bodyWords[word]; ok {
			overlap++
		}
	}
	if overlap >= 3 {
		return ""
	}

	return "The article body may not be in English. Currently only English " +
		"submissions are reviewed. Non-English articles may receive lower scores."
}

func sortedSlugs(policies map[string]domain.CategoryPolicy) []string {
	slugs := make([]string, 0, len(policies))
	for slug := range policies {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
