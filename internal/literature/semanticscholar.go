package literature

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/ports"
)

const defaultS2URL = "https://api.semanticscholar.org/graph/v1/paper/search"

// S2Source queries the Semantic Scholar graph API. Works without a key;
// a free key raises the rate limit.
type S2Source struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ ports.LiteratureSource = (*S2Source)(nil)

// NewS2Source wires endpoint and optional API key.
func NewS2Source(endpoint, apiKey string, client *http.Client) *S2Source {
	if endpoint == "" {
		endpoint = defaultS2URL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &S2Source{endpoint: endpoint, apiKey: apiKey, client: client}
}

// Name identifies the source in warnings and match records.
func (s *S2Source) Name() string {
	return "semantic-scholar"
}

// Search runs one paged paper search.
func (s *S2Source) Search(ctx context.Context, query string, limit int) ([]domain.LiteratureMatch, error) {
	if len(query) > 300 {
		query = query[:300]
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("fields", "title,abstract,citationCount,year,url")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request papers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("semantic scholar error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var body struct {
		Data []struct {
			PaperID       string `json:"paperId"`
			Title         string `json:"title"`
			Abstract      string `json:"abstract"`
			CitationCount int    `json:"citationCount"`
			Year          int    `json:"year"`
			URL           string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	matches := make([]domain.LiteratureMatch, 0, len(body.Data))
	for _, paper := range body.Data {
		abstract := paper.Abstract
		if len(abstract) > 500 {
			abstract = abstract[:500]
		}

		published := ""
		if paper.Year > 0 {
			published = strconv.Itoa(paper.Year)
		}

		matches = append(matches, domain.LiteratureMatch{
			Source:    "semantic-scholar",
			ID:        paper.PaperID,
			Title:     paper.Title,
			Abstract:  abstract,
			Published: published,
			URL:       paper.URL,
			Citations: paper.CitationCount,
		})
	}

	return matches, nil
}
