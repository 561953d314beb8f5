package ports

import (
	"context"
	"time"

	"PubrootReview/internal/domain"
)

// ContributorStore persists contributor records keyed by handle.
// Callers must guarantee serialized access per handle; the store itself
// implements no locking beyond what the backend provides.
type ContributorStore interface {
	Get(ctx context.Context, handle string) (domain.ContributorRecord, bool, error)
	Put(ctx context.Context, record domain.ContributorRecord) error
	ListAll(ctx context.Context) ([]domain.ContributorRecord, error)
}

// PublicationIndex reads and extends the journal's paper index.
// Status transitions (superseded/expired) happen outside this core.
type PublicationIndex interface {
	List(ctx context.Context) ([]domain.PublicationRecord, error)
	Add(ctx context.Context, record domain.PublicationRecord) error
}

// CategoryRegistry resolves category slugs to their slot policies.
type CategoryRegistry interface {
	Policies(ctx context.Context) (map[string]domain.CategoryPolicy, error)
}

// PaymentValidator resolves a submission's payment code to a tier (0/1/2).
type PaymentValidator interface {
	Tier(ctx context.Context, paymentCode string) (int, error)
}

// Reviewer invokes the external grounded review service.
type Reviewer interface {
	Review(ctx context.Context, sub domain.ParsedSubmission, rc domain.ReviewContext) (domain.Review, error)
}

// LiteratureSource searches one external academic database for related work.
type LiteratureSource interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]domain.LiteratureMatch, error)
}

// DecisionNotifier reports a pipeline outcome back to the submitter.
type DecisionNotifier interface {
	PublishDecision(ctx context.Context, issueNumber int, message string) error
}

// Scheduler controls when recurring maintenance jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
