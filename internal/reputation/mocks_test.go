package reputation

import (
	"context"
	"sort"

	"PubrootReview/internal/domain"
)

// memoryContributors is a minimal in-process store for engine tests.
type memoryContributors struct {
	records map[string]domain.ContributorRecord
}

func newMemoryContributors() *memoryContributors {
	return &memoryContributors{records: map[string]domain.ContributorRecord{}}
}

func (m *memoryContributors) Get(_ context.Context, handle string) (domain.ContributorRecord, bool, error) {
	record, ok := m.records[handle]
	return record, ok, nil
}

func (m *memoryContributors) Put(_ context.Context, record domain.ContributorRecord) error {
	m.records[record.Handle] = record
	return nil
}

func (m *memoryContributors) ListAll(_ context.Context) ([]domain.ContributorRecord, error) {
	out := make([]domain.ContributorRecord, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out, nil
}
