// Package llm implements the grounded review call against the Gemini API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/ports"
)

const defaultModel = "gemini-2.5-flash-lite"

const maxAttempts = 2

// GeminiReviewer sends the assembled review prompt to Gemini with Google
// Search grounding enabled and parses the structured verdict.
type GeminiReviewer struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ ports.Reviewer = (*GeminiReviewer)(nil)

// NewGeminiReviewer creates the API client. The model can be overridden
// for the deep-review paid tier.
func NewGeminiReviewer(ctx context.Context, apiKey, model string, log *slog.Logger) (*GeminiReviewer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiReviewer{client: client, model: model, logger: log}, nil
}

// Review runs one grounded review round trip, retrying once on transient
// failures.
func (r *GeminiReviewer) Review(ctx context.Context, sub domain.ParsedSubmission, rc domain.ReviewContext) (domain.Review, error) {
	prompt := BuildPrompt(sub, rc)

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2),
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return domain.Review{}, ctx.Err()
			case <-time.After(time.Duration(1<<attempt) * time.Second):
			}
		}

		resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), config)
		if err != nil {
			lastErr = fmt.Errorf("generate content: %w", err)
			r.debug("gemini call failed", "attempt", attempt+1, "error", err)
			continue
		}

		raw := resp.Text()
		if raw == "" {
			lastErr = fmt.Errorf("gemini returned an empty response")
			continue
		}

		review, err := ParseReview(raw)
		if err != nil {
			lastErr = err
			r.debug("gemini response rejected", "attempt", attempt+1, "error", err)
			continue
		}

		r.debug("gemini review done", "model", r.model, "score", review.Score, "verdict", review.Verdict)
		return review, nil
	}

	return domain.Review{}, fmt.Errorf("review failed after %d attempts: %w", maxAttempts, lastErr)
}

// ParseReview extracts and validates the review JSON. The model is asked
// for bare JSON but sometimes wraps it in Markdown code fences anyway.
func ParseReview(raw string) (domain.Review, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return domain.Review{}, fmt.Errorf("no JSON object in response")
	}

	var body struct {
		Score      *float64 `json:"score"`
		Verdict    string   `json:"verdict"`
		Summary    string   `json:"summary"`
		Strengths  []string `json:"strengths"`
		Weaknesses []string `json:"weaknesses"`
	}
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		return domain.Review{}, fmt.Errorf("decode review: %w", err)
	}

	if body.Score == nil {
		return domain.Review{}, fmt.Errorf("review missing score")
	}
	if *body.Score < 0 || *body.Score > 10 {
		return domain.Review{}, fmt.Errorf("review score %.2f out of range", *body.Score)
	}
	if body.Verdict != string(domain.VerdictAccepted) && body.Verdict != string(domain.VerdictRejected) {
		return domain.Review{}, fmt.Errorf("review verdict %q invalid", body.Verdict)
	}
	if strings.TrimSpace(body.Summary) == "" {
		return domain.Review{}, fmt.Errorf("review missing summary")
	}

	return domain.Review{
		Score:      *body.Score,
		Verdict:    domain.Verdict(body.Verdict),
		Summary:    body.Summary,
		Strengths:  body.Strengths,
		Weaknesses: body.Weaknesses,
	}, nil
}

// extractJSON tries the raw text, then a fenced block, then the outermost
// brace span.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if json.Valid([]byte(text)) {
		return text
	}

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 2 {
			inner := strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
			if json.Valid([]byte(inner)) {
				return inner
			}
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate
		}
	}

	return ""
}

func (r *GeminiReviewer) debug(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
