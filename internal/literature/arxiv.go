package literature

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"PubrootReview/internal/domain"
	"PubrootReview/internal/ports"
)

const defaultArxivSearchURL = "https://arxiv.org/search/"

// ArxivSource queries the arXiv HTML search interface and scrapes the
// result list. arXiv asks for at most ~1 request per second; one submission
// triggers a single request, so no throttling is needed here.
type ArxivSource struct {
	baseURL string
	client  *http.Client
}

var _ ports.LiteratureSource = (*ArxivSource)(nil)

// NewArxivSource wires an HTTP client; baseURL defaults to the public site.
func NewArxivSource(baseURL string, client *http.Client) *ArxivSource {
	if baseURL == "" {
		baseURL = defaultArxivSearchURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ArxivSource{baseURL: baseURL, client: client}
}

// Name identifies the source in warnings and match records.
func (a *ArxivSource) Name() string {
	return "arxiv"
}

// Search fetches one result page and extracts up to limit entries.
func (a *ArxivSource) Search(ctx context.Context, query string, limit int) ([]domain.LiteratureMatch, error) {
	pageURL, err := buildSearchURL(a.baseURL, query, limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "PubrootReview/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	return extractResults(doc, limit), nil
}

func extractResults(doc *goquery.Document, limit int) []domain.LiteratureMatch {
	var matches []domain.LiteratureMatch

	doc.Find("li.arxiv-result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(matches) >= limit {
			return false
		}

		idText := strings.TrimSpace(sel.Find("p.list-title a").First().Text())
		id := strings.TrimPrefix(idText, "arXiv:")

		title := strings.Join(strings.Fields(sel.Find("p.title").First().Text()), " ")

		abstract := sel.Find("span.abstract-full").First().Text()
		if abstract == "" {
			abstract = sel.Find("p.abstract").First().Text()
		}
		abstract = strings.Join(strings.Fields(abstract), " ")
		abstract = strings.TrimSuffix(abstract, "△ Less")
		abstract = strings.TrimSpace(abstract)
		if len(abstract) > 500 {
			abstract = abstract[:500]
		}

		var authors []string
		sel.Find("p.authors a").Each(func(_ int, author *goquery.Selection) {
			if len(authors) < 5 {
				authors = append(authors, strings.TrimSpace(author.Text()))
			}
		})

		published := ""
		if dates := sel.Find("p.is-size-7").First().Text(); dates != "" {
			published = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(dates), "Submitted"))
			if idx := strings.Index(published, ";"); idx >= 0 {
				published = strings.TrimSpace(published[:idx])
			}
		}

		matchURL := ""
		if href, exists := sel.Find("p.list-title a").First().Attr("href"); exists {
			matchURL = href
		} else if id != "" {
			matchURL = "https://arxiv.org/abs/" + id
		}

		if title == "" {
			return true
		}

		matches = append(matches, domain.LiteratureMatch{
			Source:    "arxiv",
			ID:        id,
			Title:     title,
			Abstract:  abstract,
			Authors:   authors,
			Published: published,
			URL:       matchURL,
		})
		return true
	})

	return matches
}

func buildSearchURL(base, query string, limit int) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid search url %s: %w", base, err)
	}

	if len(query) > 300 {
		query = query[:300]
	}

	values := parsed.Query()
	values.Set("query", query)
	values.Set("searchtype", "all")
	values.Set("size", strconv.Itoa(pageSizeFor(limit)))
	parsed.RawQuery = values.Encode()
	return parsed.String(), nil
}

// pageSizeFor maps the limit onto arXiv's accepted page sizes.
func pageSizeFor(limit int) int {
	for _, size := range []int{25, 50, 100, 200} {
		if limit <= size {
			return size
		}
	}
	return 200
}
