package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"thriftbot-go/internal/config"
	"thriftbot-go/internal/models"
)

const defaultBaseURL = "https://www.ebay.com"

// Fetcher pulls comparable listings for a search term by fetching and
// parsing marketplace search pages.
type Fetcher interface {
	Search(ctx context.Context, term, category string) ([]models.MarketComparable, error)
}

// Client is the HTTP implementation of Fetcher.
type Client struct {
	client     *resty.Client
	logger     *zap.Logger
	limiter    *rate.Limiter
	maxResults int
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a research client with the configured rate limit. The
// limiter applies per process; marketplaces throttle aggressive scrapers.
func NewClient(cfg *config.Research, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(20*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; thriftbot/1.0)")

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	return &Client{
		client:     client,
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
		maxResults: maxResults,
	}
}

// Search fetches one page of search results for the term and returns parsed
// comparables stamped with the search term and scrape time.
func (c *Client) Search(ctx context.Context, term, category string) ([]models.MarketComparable, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("empty search term")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"_nkw":        term,
			"LH_Complete": "1",
			"LH_Sold":     "1",
		}).
		SetDoNotParseResponse(true).
		Get("/sch/i.html")
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.RawBody().Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status %s", resp.Status())
	}

	comps, err := ParseSearchResults(resp.RawBody())
	if err != nil {
		return nil, err
	}
	if len(comps) > c.maxResults {
		comps = comps[:c.maxResults]
	}

	now := time.Now()
	for i := range comps {
		comps[i].SearchTerm = term
		comps[i].Category = category
		comps[i].ScrapedAt = now
	}

	c.logger.Info("Market research complete",
		zap.String("term", term),
		zap.Int("comparables", len(comps)))
	return comps, nil
}
