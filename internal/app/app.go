// Package app assembles configuration, adapters, and use cases into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"PubrootReview/internal/config"
	"PubrootReview/internal/domain"
	"PubrootReview/internal/infrastructure/github"
	"PubrootReview/internal/infrastructure/llm"
	"PubrootReview/internal/infrastructure/payment"
	"PubrootReview/internal/infrastructure/registry"
	"PubrootReview/internal/infrastructure/scheduler"
	"PubrootReview/internal/infrastructure/storage"
	"PubrootReview/internal/literature"
	"PubrootReview/internal/logging"
	"PubrootReview/internal/novelty"
	"PubrootReview/internal/ports"
	"PubrootReview/internal/priority"
	"PubrootReview/internal/reputation"
	"PubrootReview/internal/submission"
	"PubrootReview/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg          config.Config
	logger       *slog.Logger
	pipeline     *usecase.Pipeline
	maintenance  *usecase.Maintenance
	reputation   *reputation.Engine
	contributors ports.ContributorStore
	db           *sql.DB
}

// New builds a runnable application instance. When no database DSN is
// configured, storage falls back to process memory.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var db *sql.DB
	var contributors ports.ContributorStore
	var publications ports.PublicationIndex
	if cfg.Database.DSN != "" {
		opened, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		contributors = storage.NewPostgresContributors(db)
		publications = storage.NewPostgresPublications(db)
	} else {
		baseLogger.Warn("no database configured, using in-memory storage")
		contributors = storage.NewMemoryContributors()
		publications = storage.NewMemoryPublications()
	}

	var reviewer ports.Reviewer
	if cfg.Review.APIKey != "" {
		built, err := llm.NewGeminiReviewer(ctx, cfg.Review.APIKey, cfg.Review.Model,
			baseLogger.With("component", "reviewer"))
		if err != nil {
			return nil, fmt.Errorf("build reviewer: %w", err)
		}
		reviewer = built
	}

	var notifier ports.DecisionNotifier
	if cfg.GitHub.Token != "" && cfg.GitHub.Repository != "" {
		notifier = github.NewNotifier(cfg.GitHub.APIURL, cfg.GitHub.Repository, cfg.GitHub.Token)
	}

	search := literature.NewSearch([]ports.LiteratureSource{
		literature.NewArxivSource(cfg.Literature.ArxivURL, nil),
		literature.NewS2Source(cfg.Literature.SemanticScholarURL, cfg.Literature.SemanticScholarKey, nil),
	}, baseLogger.With("component", "literature"))

	reputationEngine := reputation.NewEngine(reputation.DefaultWeights(),
		baseLogger.With("component", "reputation"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Validator:    submission.NewValidator(submission.DefaultLimits()),
		Reputation:   reputationEngine,
		Priority:     priority.NewEngine(priority.DefaultWeights()),
		Novelty:      novelty.NewMatcher(novelty.DefaultThresholds()),
		Literature:   search,
		Contributors: contributors,
		Publications: publications,
		Registry:     registry.NewFileRegistry(cfg.Journal.JournalsPath),
		Payments:     payment.NewCodeValidator(cfg.Payment.PremiumCodes),
		Reviewer:     reviewer,
		Notifier:     notifier,
		Threshold:    cfg.Review.AcceptThreshold,
		Logger:       baseLogger.With("component", "pipeline"),
	})

	maintenance := usecase.NewMaintenance(
		scheduler.NewTickerScheduler(cfg.Scheduler.RefreshInterval()),
		reputationEngine,
		contributors,
		baseLogger.With("component", "maintenance"))

	return &Application{
		cfg:          cfg,
		logger:       baseLogger,
		pipeline:     pipeline,
		maintenance:  maintenance,
		reputation:   reputationEngine,
		contributors: contributors,
		db:           db,
	}, nil
}

// ReviewIssue runs the full pipeline for one submission issue.
func (a *Application) ReviewIssue(ctx context.Context, issueNumber int, author, body string) (usecase.ReviewOutcome, error) {
	return a.pipeline.ProcessSubmission(ctx, usecase.ReviewRequest{
		IssueNumber: issueNumber,
		Author:      author,
		Body:        body,
	}, time.Now().UTC())
}

// RefreshReputation recomputes every contributor's cached score once.
func (a *Application) RefreshReputation(ctx context.Context) (int, error) {
	return a.reputation.UpdateAll(ctx, a.contributors, time.Now().UTC())
}

// Serve runs the recurring reputation maintenance until the context ends.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.maintenance.Start(ctx); err != nil {
		return fmt.Errorf("start maintenance: %w", err)
	}
	<-ctx.Done()
	return a.maintenance.Stop(context.Background())
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// ValidateOnly parses and validates a submission without reviewing it.
func (a *Application) ValidateOnly(ctx context.Context, author, body string) (domain.ValidationResult, error) {
	return a.pipeline.ValidateSubmission(ctx, author, body, time.Now().UTC())
}
