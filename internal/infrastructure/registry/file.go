// Package registry resolves journal category slugs to slot policies
// from the journal's journals.json document.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/ports"
)

// FileRegistry reads category policies from a journals.json file.
// The file is re-read on every call so journal edits take effect
// without a restart.
type FileRegistry struct {
	path string
}

var _ ports.CategoryRegistry = (*FileRegistry)(nil)

// NewFileRegistry wires the journals.json path.
func NewFileRegistry(path string) *FileRegistry {
	return &FileRegistry{path: path}
}

// Policies loads and decodes the journal catalogue.
func (r *FileRegistry) Policies(ctx context.Context) (map[string]domain.CategoryPolicy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read journals file: %w", err)
	}

	var document struct {
		Journals map[string]struct {
			RefreshRateDays int `json:"refresh_rate_days"`
		} `json:"journals"`
	}
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("decode journals file: %w", err)
	}

	policies := make(map[string]domain.CategoryPolicy, len(document.Journals))
	for slug, journal := range document.Journals {
		policies[slug] = domain.CategoryPolicy{RefreshRateDays: journal.RefreshRateDays}
	}

	return policies, nil
}

// StaticRegistry serves a fixed policy map. Used when policies come from
// the main configuration instead of a journal checkout.
type StaticRegistry struct {
	policies map[string]domain.CategoryPolicy
}

var _ ports.CategoryRegistry = (*StaticRegistry)(nil)

// NewStaticRegistry copies the given policies.
func NewStaticRegistry(policies map[string]domain.CategoryPolicy) *StaticRegistry {
	copied := make(map[string]domain.CategoryPolicy, len(policies))
	for slug, policy := range policies {
		copied[slug] = policy
	}
	return &StaticRegistry{policies: copied}
}

// Policies returns the configured map.
func (r *StaticRegistry) Policies(context.Context) (map[string]domain.CategoryPolicy, error) {
	return r.policies, nil
}
