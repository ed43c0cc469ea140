// Package ticker looks up Indian-listed equities through the Yahoo Finance
// search endpoint.
package ticker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"go.uber.org/zap"
)

const (
	searchPath = "/v1/finance/search"
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Quote is one search hit as returned upstream.
type Quote struct {
	Symbol    string `json:"symbol"`
	LongName  string `json:"longname"`
	ShortName string `json:"shortname"`
	Exchange  string `json:"exchange"`
	QuoteType string `json:"quoteType"`
}

type searchResponse struct {
	Quotes []Quote `json:"quotes"`
}

// SearchOptions controls a single search call.
type SearchOptions struct {
	QuotesCount int
	Fuzzy       bool
	// Regional restricts results to the Indian region and language.
	Regional bool
}

// ProviderError represents a non-success response from the search provider.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Client calls the search endpoint.
type Client struct {
	BaseURL string
	Client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new search client.
// If baseURL is empty, defaults to the public Yahoo Finance query host.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultTickerBaseURL
	}
	if timeout <= 0 {
		timeout = constants.DefaultTickerTimeoutSeconds * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Search returns the quotes matching query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]Quote, error) {
	u, err := url.Parse(c.BaseURL + searchPath)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("quotesCount", strconv.Itoa(opts.QuotesCount))
	q.Set("newsCount", "0")
	q.Set("enableFuzzyQuery", strconv.FormatBool(opts.Fuzzy))
	q.Set("quotesQueryId", "tss_match_phrase_query")
	if opts.Regional {
		q.Set("region", "IN")
		q.Set("lang", "en-IN")
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("ticker search failed",
			zap.String("op", "ticker.Search"),
			zap.String("query", query),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("ticker search response",
		zap.String("op", "ticker.Search"),
		zap.String("query", query),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("search provider rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("search provider returned status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_RESPONSE",
			Message:    fmt.Sprintf("failed to decode search response: %v", err),
		}
	}
	return body.Quotes, nil
}
