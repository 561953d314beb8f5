// Package storage provides Postgres and in-memory persistence for
// contributor records and the publication index.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresContributors persists contributor records in Postgres.
// Categories and flags live in jsonb columns; everything the reputation
// engine reads is flattened for querying.
type PostgresContributors struct {
	db *sql.DB
}

var _ ports.ContributorStore = (*PostgresContributors)(nil)

// NewPostgresContributors wires a sql.DB implementation.
func NewPostgresContributors(db *sql.DB) *PostgresContributors {
	return &PostgresContributors{db: db}
}

const contributorColumns = "handle, total_submissions, accepted, rejected, acceptance_rate, " +
	"average_score, categories, first_seen, last_submission, spam_submissions, " +
	"prompt_injection_attempts, dmca_strikes, reputation_score, reputation_tier"

// Get loads one contributor by handle.
func (s *PostgresContributors) Get(ctx context.Context, handle string) (domain.ContributorRecord, bool, error) {
	query, args, err := psql.
		Select(contributorColumns).
		From("contributors").
		Where(sq.Eq{"handle": handle}).
		ToSql()
	if err != nil {
		return domain.ContributorRecord{}, false, fmt.Errorf("build query: %w", err)
	}

	record, err := scanContributor(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return domain.ContributorRecord{}, false, nil
	}
	if err != nil {
		return domain.ContributorRecord{}, false, fmt.Errorf("query contributor: %w", err)
	}

	return record, true, nil
}

// Put upserts the full contributor record.
func (s *PostgresContributors) Put(ctx context.Context, record domain.ContributorRecord) error {
	categories, err := json.Marshal(record.Categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	query, args, err := psql.
		Insert("contributors").
		Columns("handle", "total_submissions", "accepted", "rejected", "acceptance_rate",
			"average_score", "categories", "first_seen", "last_submission", "spam_submissions",
			"prompt_injection_attempts", "dmca_strikes", "reputation_score", "reputation_tier").
		Values(record.Handle, record.TotalSubmissions, record.Accepted, record.Rejected,
			record.AcceptanceRate, record.AverageScore, categories, record.FirstSeen,
			record.LastSubmission, record.Flags.SpamSubmissions, record.Flags.PromptInjectionAttempts,
			record.Flags.DMCAStrikes, record.ReputationScore, string(record.ReputationTier)).
		Suffix(`ON CONFLICT (handle) DO UPDATE SET
            total_submissions = EXCLUDED.total_submissions,
            accepted = EXCLUDED.accepted,
            rejected = EXCLUDED.rejected,
            acceptance_rate = EXCLUDED.acceptance_rate,
            average_score = EXCLUDED.average_score,
            categories = EXCLUDED.categories,
            last_submission = EXCLUDED.last_submission,
            spam_submissions = EXCLUDED.spam_submissions,
            prompt_injection_attempts = EXCLUDED.prompt_injection_attempts,
            dmca_strikes = EXCLUDED.dmca_strikes,
            reputation_score = EXCLUDED.reputation_score,
            reputation_tier = EXCLUDED.reputation_tier,
            updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert contributor: %w", err)
	}

	return nil
}

// ListAll returns every contributor ordered by handle.
func (s *PostgresContributors) ListAll(ctx context.Context) ([]domain.ContributorRecord, error) {
	query, args, err := psql.
		Select(contributorColumns).
		From("contributors").
		OrderBy("handle").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contributors: %w", err)
	}
	defer rows.Close()

	var records []domain.ContributorRecord
	for rows.Next() {
		record, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contributor: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContributor(row rowScanner) (domain.ContributorRecord, error) {
	var record domain.ContributorRecord
	var categories []byte
	var tier string

	err := row.Scan(&record.Handle, &record.TotalSubmissions, &record.Accepted, &record.Rejected,
		&record.AcceptanceRate, &record.AverageScore, &categories, &record.FirstSeen,
		&record.LastSubmission, &record.Flags.SpamSubmissions, &record.Flags.PromptInjectionAttempts,
		&record.Flags.DMCAStrikes, &record.ReputationScore, &tier)
	if err != nil {
		return domain.ContributorRecord{}, err
	}

	record.ReputationTier = domain.Tier(tier)
	record.Categories = map[string]domain.CategoryStats{}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &record.Categories); err != nil {
			return domain.ContributorRecord{}, fmt.Errorf("decode categories: %w", err)
		}
	}

	return record, nil
}

// PostgresPublications stores the accepted-paper index in Postgres.
type PostgresPublications struct {
	db *sql.DB
}

var _ ports.PublicationIndex = (*PostgresPublications)(nil)

// NewPostgresPublications wires a sql.DB implementation.
func NewPostgresPublications(db *sql.DB) *PostgresPublications {
	return &PostgresPublications{db: db}
}

// List returns the full index, newest first.
func (s *PostgresPublications) List(ctx context.Context) ([]domain.PublicationRecord, error) {
	query, args, err := psql.
		Select("id", "category", "title", "abstract", "author", "review_score", "published_date", "status").
		From("publications").
		OrderBy("published_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query publications: %w", err)
	}
	defer rows.Close()

	var records []domain.PublicationRecord
	for rows.Next() {
		var record domain.PublicationRecord
		var status string
		err := rows.Scan(&record.ID, &record.Category, &record.Title, &record.Abstract,
			&record.Author, &record.ReviewScore, &record.PublishedDate, &status)
		if err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		record.Status = domain.PublicationStatus(status)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

// Add inserts one accepted paper.
func (s *PostgresPublications) Add(ctx context.Context, record domain.PublicationRecord) error {
	query, args, err := psql.
		Insert("publications").
		Columns("id", "category", "title", "abstract", "author", "review_score", "published_date", "status").
		Values(record.ID, record.Category, record.Title, record.Abstract, record.Author,
			record.ReviewScore, record.PublishedDate, string(record.Status)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert publication: %w", err)
	}

	return nil
}
