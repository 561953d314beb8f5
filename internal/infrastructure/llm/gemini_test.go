package llm

import (
	"context"
	"strings"
	"testing"

	"PubrootReview/internal/domain"
)

func TestParseReviewPlainJSON(t *testing.T) {
	t.Parallel()

	raw := `{"score": 7.5, "verdict": "ACCEPTED", "summary": "Solid benchmark work.",
             "strengths": ["reproducible"], "weaknesses": ["small sample"]}`

	review, err := ParseReview(raw)
	if err != nil {
		t.Fatalf("ParseReview: %v", err)
	}
	if review.Score != 7.5 || review.Verdict != domain.VerdictAccepted {
		t.Errorf("unexpected review: %+v", review)
	}
	if len(review.Strengths) != 1 || len(review.Weaknesses) != 1 {
		t.Errorf("lists lost: %+v", review)
	}
}

func TestParseReviewFencedJSON(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"score\": 4.0, \"verdict\": \"REJECTED\", \"summary\": \"Derivative.\"}\n```"

	review, err := ParseReview(raw)
	if err != nil {
		t.Fatalf("ParseReview: %v", err)
	}
	if review.Verdict != domain.VerdictRejected || review.Score != 4.0 {
		t.Errorf("unexpected review: %+v", review)
	}
}

func TestParseReviewEmbeddedJSON(t *testing.T) {
	t.Parallel()

	raw := `Here is my assessment: {"score": 6.2, "verdict": "ACCEPTED", "summary": "Borderline."} Hope that helps.`

	review, err := ParseReview(raw)
	if err != nil {
		t.Fatalf("ParseReview: %v", err)
	}
	if review.Score != 6.2 {
		t.Errorf("score = %v", review.Score)
	}
}

func TestParseReviewRejectsBadPayloads(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no json":          "I cannot review this.",
		"missing score":    `{"verdict": "ACCEPTED", "summary": "x"}`,
		"score high":       `{"score": 11, "verdict": "ACCEPTED", "summary": "x"}`,
		"score negative":   `{"score": -1, "verdict": "REJECTED", "summary": "x"}`,
		"bad verdict":      `{"score": 5, "verdict": "MAYBE", "summary": "x"}`,
		"missing summary":  `{"score": 5, "verdict": "REJECTED"}`,
		"summary blank":    `{"score": 5, "verdict": "REJECTED", "summary": "  "}`,
		"score not number": `{"score": "high", "verdict": "ACCEPTED", "summary": "x"}`,
	}

	for name, raw := range cases {
		if _, err := ParseReview(raw); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestBuildPromptWrapsSubmission(t *testing.T) {
	t.Parallel()

	sub := domain.ParsedSubmission{
		Title:    "Benchmarking Tool-Use Agents",
		Category: "llm-benchmarks",
		Abstract: "We measure tool-use accuracy.",
		Body:     "Full article body here.",
	}
	rc := domain.ReviewContext{
		Novelty: domain.NoveltyResult{
			Related: []domain.RankedMatch{{
				Publication: domain.PublicationRecord{Title: "Prior Benchmark", Category: "llm-benchmarks", ReviewScore: 7.0},
				Similarity:  0.42,
			}},
		},
		Literature: []domain.LiteratureMatch{
			{Source: "arxiv", Title: "Agent Evaluation Survey", Published: "2025"},
		},
	}

	prompt := BuildPrompt(sub, rc)

	for _, want := range []string{
		"--- BEGIN SUBMISSION ---",
		"--- END SUBMISSION ---",
		"Benchmarking Tool-Use Agents",
		"Prior Benchmark",
		"Agent Evaluation Survey",
		`"verdict": "<ACCEPTED or REJECTED>"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptTruncatesLongBody(t *testing.T) {
	t.Parallel()

	sub := domain.ParsedSubmission{
		Title: "t",
		Body:  strings.Repeat("a", bodyPromptLimit+500),
	}

	prompt := BuildPrompt(sub, domain.ReviewContext{})
	if !strings.Contains(prompt, "[body truncated]") {
		t.Error("expected truncation marker")
	}
	if len(prompt) > bodyPromptLimit+5000 {
		t.Errorf("prompt not bounded: %d chars", len(prompt))
	}
}

func TestNewGeminiReviewerRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGeminiReviewer(context.Background(), "", "", nil); err == nil {
		t.Fatal("expected error for empty key")
	}
}
