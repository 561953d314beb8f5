package storage

import (
	"context"
	"sort"
	"sync"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/ports"
)

// MemoryContributors keeps contributor records in process memory.
// Used when no database DSN is configured and by the pipeline tests.
type MemoryContributors struct {
	mu      sync.RWMutex
	records map[string]domain.ContributorRecord
}

var _ ports.ContributorStore = (*MemoryContributors)(nil)

// NewMemoryContributors returns an empty store.
func NewMemoryContributors() *MemoryContributors {
	return &MemoryContributors{records: map[string]domain.ContributorRecord{}}
}

// Get returns the record for handle, reporting whether it exists.
func (s *MemoryContributors) Get(_ context.Context, handle string) (domain.ContributorRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[handle]
	return record, ok, nil
}

// Put stores or replaces the record.
func (s *MemoryContributors) Put(_ context.Context, record domain.ContributorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Handle] = record
	return nil
}

// ListAll returns every record ordered by handle.
func (s *MemoryContributors) ListAll(_ context.Context) ([]domain.ContributorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ContributorRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Handle < records[j].Handle })

	return records, nil
}

// MemoryPublications keeps the paper index in process memory.
type MemoryPublications struct {
	mu      sync.RWMutex
	records []domain.PublicationRecord
}

var _ ports.PublicationIndex = (*MemoryPublications)(nil)

// NewMemoryPublications returns an index seeded with the given records.
func NewMemoryPublications(seed ...domain.PublicationRecord) *MemoryPublications {
	return &MemoryPublications{records: append([]domain.PublicationRecord{}, seed...)}
}

// List returns a copy of the index in insertion order.
func (s *MemoryPublications) List(_ context.Context) ([]domain.PublicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.PublicationRecord{}, s.records...), nil
}

// Add appends one record.
func (s *MemoryPublications) Add(_ context.Context, record domain.PublicationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	return nil
}
