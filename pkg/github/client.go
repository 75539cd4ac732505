// Package github pkg/github/client.go implements the search-provider client:
// paginated repository search with token rotation on rate-limit responses.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.github.com"

	// Provider cap on page size.
	maxPerPage = 100

	// Cool-down before retrying a rate-limited page with the next token.
	defaultCooldown = 2 * time.Second

	// Inter-page pacing; two requests per second stays well under the
	// authenticated search budget of 30 requests per minute.
	defaultPageInterval = 500 * time.Millisecond

	defaultRequestTimeout = 30 * time.Second

	acceptHeader     = "application/vnd.github+json"
	apiVersionHeader = "2022-11-28"
)

// Client is a paginated search-provider client. All waits (pacing and
// rate-limit cool-downs) honor context cancellation.
type Client struct {
	httpClient *http.Client
	tokens     *TokenPool
	limiter    *rate.Limiter
	baseURL    string
	cooldown   time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the provider base URL. Used in tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithCooldown overrides the rate-limit cool-down interval.
func WithCooldown(d time.Duration) ClientOption {
	return func(c *Client) {
		c.cooldown = d
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPageInterval overrides the inter-page pacing interval.
func WithPageInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewClient creates a search client over the given token pool.
func NewClient(tokens *TokenPool, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Every(defaultPageInterval), 1),
		baseURL:    defaultBaseURL,
		cooldown:   defaultCooldown,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchRepositories pages through the search endpoint for one query, sorted
// by stars descending, until maxResults are gathered, a page comes back
// short or empty, or the retry budget for rate-limit responses is spent.
//
// On a rate-limit response the client rotates to the next token, waits the
// cool-down, and retries the same page. Any other failure abandons the query;
// results gathered so far are returned alongside the error so the caller can
// keep them.
func (c *Client) SearchRepositories(ctx context.Context, query string, maxResults, tokenAttempt int) ([]Repo, error) {
	var repos []Repo

	page := 1
	retries := 0
	retryBudget := c.retryBudget()

	for len(repos) < maxResults {
		if err := c.limiter.Wait(ctx); err != nil {
			return repos, fmt.Errorf("%w: %w", ErrRequestFailed, err)
		}

		items, status, err := c.searchPage(ctx, query, page, tokenAttempt)
		if err != nil {
			return repos, err
		}

		if status == http.StatusForbidden || status == http.StatusTooManyRequests {
			retries++
			if retries > retryBudget {
				return repos, fmt.Errorf("%w for query %q", ErrRetriesExhausted, query)
			}

			tokenAttempt++

			log.Printf("Search rate limited (query %q, page %d), rotating token (retry %d/%d)",
				query, page, retries, retryBudget)

			if err := c.waitCooldown(ctx); err != nil {
				return repos, err
			}

			continue
		}

		if status != http.StatusOK {
			return repos, fmt.Errorf("%w: %d for query %q", ErrUnexpectedStatus, status, query)
		}

		if len(items) == 0 {
			break
		}

		repos = append(repos, items...)

		if len(items) < maxPerPage || len(repos) >= maxResults {
			break
		}

		page++
	}

	if len(repos) > maxResults {
		repos = repos[:maxResults]
	}

	return repos, nil
}

// retryBudget bounds rate-limit retries per query: one rotation through the
// pool plus slack, never less than three.
func (c *Client) retryBudget() int {
	size := c.tokens.Size()
	if size < 1 {
		size = 1
	}

	return size + 2
}

func (c *Client) searchPage(ctx context.Context, query string, page, tokenAttempt int) ([]Repo, int, error) {
	u, err := url.Parse(c.baseURL + "/search/repositories")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(maxPerPage))
	params.Set("page", strconv.Itoa(page))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersionHeader)

	if token, ok := c.tokens.Token(tokenAttempt); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Printf("failed to close response body: %v", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, nil
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return body.Items, resp.StatusCode, nil
}

// waitCooldown sleeps the rate-limit cool-down, aborting if the context is
// canceled so a stuck query cannot outlive its caller.
func (c *Client) waitCooldown(ctx context.Context) error {
	timer := time.NewTimer(c.cooldown)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrRequestFailed, ctx.Err())
	}
}
