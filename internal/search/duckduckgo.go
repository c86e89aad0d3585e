// Package search implements the open-web search capability against the
// DuckDuckGo HTML endpoint. No API key; results are scraped from the
// lightweight HTML page and synthesized into a numbered answer.
package search

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultBaseURL    = "https://html.duckduckgo.com"
	defaultMaxResults = 5
	userAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// ErrNoResults means the search ran but produced nothing usable. Callers
// treat it as a tool failure, never as an empty answer.
var ErrNoResults = errors.New("search returned no results")

var (
	resultPattern  = regexp.MustCompile(`class="result__a" href="([^"]+)"[^>]*>(.*?)</a>`)
	snippetPattern = regexp.MustCompile(`class="result__snippet"[^>]*>(.*?)</a>`)
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
)

type DuckDuckGoClient struct {
	baseURL    string
	maxResults int
	httpClient *http.Client
	logger     *zap.Logger
}

func NewDuckDuckGoClient(baseURL string, logger *zap.Logger) *DuckDuckGoClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &DuckDuckGoClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		maxResults: defaultMaxResults,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		logger:     logger,
	}
}

// Run executes the search and synthesizes a single text answer from the top
// results, each attributed by title.
func (c *DuckDuckGoClient) Run(ctx context.Context, query string) (*domain.SearchResult, error) {
	reqURL := fmt.Sprintf("%s/html/?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	results := parseResults(string(body), c.maxResults)
	if len(results) == 0 {
		c.logger.Warn("search produced no results", zap.String("query", query))
		return nil, ErrNoResults
	}

	c.logger.Info("search succeeded",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)

	var parts []string
	sources := make([]domain.Citation, 0, len(results))
	for i, r := range results {
		parts = append(parts, fmt.Sprintf("%d. **%s**: %s", i+1, r.title, r.snippet))
		sources = append(sources, domain.Citation{
			Title:   r.title,
			URL:     r.href,
			Snippet: r.snippet,
		})
	}

	return &domain.SearchResult{
		Answer:  strings.Join(parts, "\n\n"),
		Sources: sources,
	}, nil
}

type rawResult struct {
	title   string
	href    string
	snippet string
}

func parseResults(page string, max int) []rawResult {
	anchors := resultPattern.FindAllStringSubmatch(page, -1)
	snippets := snippetPattern.FindAllStringSubmatch(page, -1)

	var results []rawResult
	for i, a := range anchors {
		if len(results) >= max {
			break
		}
		title := cleanText(a[2])
		if title == "" {
			continue
		}
		snip := ""
		if i < len(snippets) {
			snip = cleanText(snippets[i][1])
		}
		results = append(results, rawResult{
			title:   title,
			href:    html.UnescapeString(a[1]),
			snippet: snip,
		})
	}
	return results
}

func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
