// Package submission parses raw submission text and gates it before any
// external service is involved.
package submission

import (
	"regexp"
	"strings"

	"PubrootReview/internal/domain"
)

// Field labels in the submission template. The parser matches these exactly;
// changing the template means changing this list.
const (
	labelTitle       = "Article Title"
	labelCategory    = "Category"
	labelAbstract    = "Abstract"
	labelBody        = "Article Body"
	labelRepo        = "Supporting Repository URL"
	labelCommitSHA   = "Commit SHA"
	labelVisibility  = "Repository Visibility"
	labelPaymentCode = "Payment Code (Optional)"
)

// emptyFieldPlaceholder is what the issue form emits for skipped optional fields.
const emptyFieldPlaceholder = "_No response_"

var sectionMarker = regexp.MustCompile(`(?m)^### `)

// Parse splits a submission body into typed fields. Missing fields stay
// empty; the validator decides what is an error.
func Parse(raw string, author string) domain.ParsedSubmission {
	fields := extractFormFields(raw)

	parsed := domain.ParsedSubmission{
		Title:          strings.TrimSpace(fields[labelTitle]),
		Category:       strings.TrimSpace(fields[labelCategory]),
		Abstract:       strings.TrimSpace(fields[labelAbstract]),
		Body:           strings.TrimSpace(fields[labelBody]),
		SupportingRepo: strings.TrimSpace(fields[labelRepo]),
		CommitSHA:      strings.TrimSpace(fields[labelCommitSHA]),
		PaymentCode:    strings.TrimSpace(fields[labelPaymentCode]),
		Author:         author,
	}

	parsed.RepoVisibility = domain.RepoNone
	switch strings.TrimSpace(fields[labelVisibility]) {
	case string(domain.RepoPublic):
		parsed.RepoVisibility = domain.RepoPublic
	case string(domain.RepoPrivate):
		parsed.RepoVisibility = domain.RepoPrivate
	}

	parsed.WordCountAbstract = wordCount(parsed.Abstract)
	parsed.WordCountBody = wordCount(parsed.Body)

	return parsed
}

// extractFormFields parses "### Label\n\nValue" sections into label/value
// pairs. Multi-line values keep their formatting; the preamble before the
// first marker is dropped.
func extractFormFields(raw string) map[string]string {
	fields := map[string]string{}

	sections := sectionMarker.Split(raw, -1)
	for _, section := range sections[1:] {
		label, value, found := strings.Cut(section, "\n")
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if !found {
			fields[label] = ""
			continue
		}
		value = strings.TrimSpace(value)
		if value == emptyFieldPlaceholder {
			value = ""
		}
		fields[label] = value
	}

	return fields
}

func wordCount(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}
