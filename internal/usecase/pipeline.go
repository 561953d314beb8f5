// Package usecase orchestrates the review workflow end to end.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/literature"
	"PubrootReview/internal/novelty"
	"PubrootReview/internal/ports"
	"PubrootReview/internal/priority"
	"PubrootReview/internal/reputation"
	"PubrootReview/internal/submission"
)

// defaultAcceptThreshold is the minimum review score for publication.
const defaultAcceptThreshold = 6.0

// PipelineDeps wires engines and driven adapters into the pipeline.
type PipelineDeps struct {
	Validator    *submission.Validator
	Reputation   *reputation.Engine
	Priority     *priority.Engine
	Novelty      *novelty.Matcher
	Literature   *literature.Search
	Contributors ports.ContributorStore
	Publications ports.PublicationIndex
	Registry     ports.CategoryRegistry
	Payments     ports.PaymentValidator
	Reviewer     ports.Reviewer
	Notifier     ports.DecisionNotifier
	Threshold    float64
	Logger       *slog.Logger
}

// ReviewRequest identifies one submission issue to process.
type ReviewRequest struct {
	IssueNumber int
	Author      string
	Body        string
}

// ReviewOutcome is the full result of one pipeline run.
type ReviewOutcome struct {
	Decision      domain.DecisionOutcome
	Validation    domain.ValidationResult
	Priority      domain.PriorityResult
	Novelty       domain.NoveltyResult
	Literature    []domain.LiteratureMatch
	Review        domain.Review
	PublicationID string
}

// Pipeline implements the submission-review workflow.
type Pipeline struct {
	validator    *submission.Validator
	reputation   *reputation.Engine
	priority     *priority.Engine
	novelty      *novelty.Matcher
	literature   *literature.Search
	contributors ports.ContributorStore
	publications ports.PublicationIndex
	registry     ports.CategoryRegistry
	payments     ports.PaymentValidator
	reviewer     ports.Reviewer
	notifier     ports.DecisionNotifier
	threshold    float64
	logger       *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	threshold := deps.Threshold
	if threshold <= 0 {
		threshold = defaultAcceptThreshold
	}

	return &Pipeline{
		validator:    deps.Validator,
		reputation:   deps.Reputation,
		priority:     deps.Priority,
		novelty:      deps.Novelty,
		literature:   deps.Literature,
		contributors: deps.Contributors,
		publications: deps.Publications,
		registry:     deps.Registry,
		payments:     deps.Payments,
		reviewer:     deps.Reviewer,
		notifier:     deps.Notifier,
		threshold:    threshold,
		logger:       deps.Logger,
	}
}

// ProcessSubmission validates, scores, reviews, and decides one submission.
// Review-call failures abort without touching contributor stats; validation
// failures and both verdicts are terminal outcomes, not errors.
func (p *Pipeline) ProcessSubmission(ctx context.Context, req ReviewRequest, now time.Time) (ReviewOutcome, error) {
	var outcome ReviewOutcome

	policies, err := p.loadPolicies(ctx)
	if err != nil {
		p.debug("category registry unavailable", "error", err)
	}

	history, err := p.loadHistory(ctx)
	if err != nil {
		return outcome, fmt.Errorf("load publication index: %w", err)
	}

	outcome.Validation = p.validator.Validate(req.Body, req.Author, policies, history, now)
	if !outcome.Validation.Valid {
		outcome.Decision = domain.OutcomeInvalid
		p.notify(ctx, req.IssueNumber, buildRejectionMessage(outcome.Validation))
		return outcome, nil
	}

	parsed := outcome.Validation.Parsed

	record, found, err := p.contributors.Get(ctx, req.Author)
	if err != nil {
		return outcome, fmt.Errorf("load contributor %s: %w", req.Author, err)
	}
	if !found {
		record = domain.NewContributorRecord(req.Author, now)
	}
	score := p.reputation.Compute(record, now)

	tier := 0
	if p.payments != nil {
		tier, err = p.payments.Tier(ctx, parsed.PaymentCode)
		if err != nil {
			return outcome, fmt.Errorf("resolve payment tier: %w", err)
		}
	}

	demand := priority.Demand(policies[parsed.Category], priority.LatestInCategory(history, parsed.Category), now)
	outcome.Priority = p.priority.Compute(score.Score, tier, demand)
	p.debug("submission queued",
		"author", req.Author,
		"category", parsed.Category,
		"reputation", score.Score,
		"priority", outcome.Priority.Score,
		"label", outcome.Priority.Label)

	outcome.Novelty = p.novelty.FindRelated(parsed.Title, parsed.Abstract, parsed.Category, history)

	if p.literature != nil {
		matches, warnings := p.literature.Run(ctx, parsed.Title, parsed.Abstract)
		outcome.Literature = matches
		outcome.Validation.Warnings = append(outcome.Validation.Warnings, warnings...)
	}

	if p.reviewer == nil {
		outcome.Decision = domain.OutcomeError
		return outcome, fmt.Errorf("no reviewer configured")
	}

	review, err := p.reviewer.Review(ctx, parsed, domain.ReviewContext{
		Novelty:    outcome.Novelty,
		Literature: outcome.Literature,
	})
	if err != nil {
		outcome.Decision = domain.OutcomeError
		p.notify(ctx, req.IssueNumber, buildErrorMessage(err))
		return outcome, fmt.Errorf("grounded review: %w", err)
	}
	outcome.Review = review

	accepted := review.Verdict == domain.VerdictAccepted && review.Score >= p.threshold
	if accepted {
		outcome.Decision = domain.OutcomeAccepted
		publication := domain.PublicationRecord{
			ID:            uuid.NewString(),
			Category:      parsed.Category,
			Title:         parsed.Title,
			Abstract:      parsed.Abstract,
			Author:        req.Author,
			ReviewScore:   review.Score,
			PublishedDate: now,
			Status:        domain.StatusCurrent,
		}
		if err := p.publications.Add(ctx, publication); err != nil {
			return outcome, fmt.Errorf("index publication: %w", err)
		}
		outcome.PublicationID = publication.ID
	} else {
		outcome.Decision = domain.OutcomeRejected
	}

	record = p.reputation.ApplyDecisionAndScore(record, review.Score, accepted, parsed.Category, now)
	if err := p.contributors.Put(ctx, record); err != nil {
		return outcome, fmt.Errorf("persist contributor %s: %w", req.Author, err)
	}

	p.notify(ctx, req.IssueNumber, buildDecisionMessage(outcome))
	p.debug("submission decided",
		"author", req.Author,
		"decision", string(outcome.Decision),
		"score", review.Score)

	return outcome, nil
}

// ValidateSubmission runs only the parse-and-validate stage. Used by the
// dry-run command so authors can check a draft without burning a review.
func (p *Pipeline) ValidateSubmission(ctx context.Context, author, body string, now time.Time) (domain.ValidationResult, error) {
	policies, err := p.loadPolicies(ctx)
	if err != nil {
		p.debug("category registry unavailable", "error", err)
	}

	history, err := p.loadHistory(ctx)
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("load publication index: %w", err)
	}

	return p.validator.Validate(body, author, policies, history, now), nil
}

func (p *Pipeline) loadPolicies(ctx context.Context) (map[string]domain.CategoryPolicy, error) {
	if p.registry == nil {
		return nil, nil
	}
	return p.registry.Policies(ctx)
}

func (p *Pipeline) loadHistory(ctx context.Context) ([]domain.PublicationRecord, error) {
	if p.publications == nil {
		return nil, nil
	}
	return p.publications.List(ctx)
}

func (p *Pipeline) notify(ctx context.Context, issueNumber int, message string) {
	if p.notifier == nil || message == "" {
		return
	}
	if err := p.notifier.PublishDecision(ctx, issueNumber, message); err != nil {
		p.debug("decision notification failed", "issue", issueNumber, "error", err)
	}
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func buildRejectionMessage(result domain.ValidationResult) string {
	var b strings.Builder
	b.WriteString("## Submission rejected before review\n\n")
	for _, e := range result.Errors {
		fmt.Fprintf(&b, "- ❌ %s\n", e)
	}
	if len(result.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- ⚠️ %s\n", w)
		}
	}
	b.WriteString("\nFix the issues above and submit again.\n")
	return b.String()
}

func buildErrorMessage(err error) string {
	return fmt.Sprintf("## Review error\n\nThe automated review could not complete: %v\n\n"+
		"This is a system problem, not a judgement of your article. Please try again later.\n", err)
}

func buildDecisionMessage(outcome ReviewOutcome) string {
	var b strings.Builder
	review := outcome.Review

	if outcome.Decision == domain.OutcomeAccepted {
		b.WriteString("## Accepted 🎉\n\n")
		fmt.Fprintf(&b, "Paper ID: `%s`\n\n", outcome.PublicationID)
	} else {
		b.WriteString("## Rejected\n\n")
	}

	fmt.Fprintf(&b, "**Score:** %.1f/10 — **Verdict:** %s\n\n", review.Score, review.Verdict)
	fmt.Fprintf(&b, "%s\n", review.Summary)

	if len(review.Strengths) > 0 {
		b.WriteString("\n**Strengths**\n")
		for _, s := range review.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(review.Weaknesses) > 0 {
		b.WriteString("\n**Weaknesses**\n")
		for _, w := range review.Weaknesses {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	if outcome.Novelty.Supersession != nil {
		fmt.Fprintf(&b, "\n> %s\n", outcome.Novelty.Supersession.Message)
	}

	return b.String()
}
