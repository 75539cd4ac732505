package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastClient(srv *httptest.Server, tokens ...string) *Client {
	return NewClient(NewTokenPool(tokens),
		WithBaseURL(srv.URL),
		WithCooldown(time.Millisecond),
		WithPageInterval(time.Millisecond))
}

func writePage(t *testing.T, w http.ResponseWriter, n int, prefix string) {
	t.Helper()

	items := make([]Repo, n)
	for i := range items {
		items[i] = Repo{
			Name:    fmt.Sprintf("%s-%d", prefix, i),
			HTMLURL: fmt.Sprintf("https://github.test/%s-%d", prefix, i),
		}
	}

	require.NoError(t, json.NewEncoder(w).Encode(searchResponse{Items: items}))
}

func TestSearchRepositoriesPagesUntilShortPage(t *testing.T) {
	var pages []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)

		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		if page == "1" {
			writePage(t, w, maxPerPage, "p1")
			return
		}

		writePage(t, w, 5, "p2")
	}))
	defer srv.Close()

	c := fastClient(srv, "token-a")

	repos, err := c.SearchRepositories(context.Background(), "topic:mcp-server", 500, 0)

	require.NoError(t, err)
	assert.Len(t, repos, maxPerPage+5)
	assert.Equal(t, []string{"1", "2"}, pages)
}

func TestSearchRepositoriesTruncatesAtMax(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writePage(t, w, maxPerPage, "p")
	}))
	defer srv.Close()

	c := fastClient(srv, "token-a")

	repos, err := c.SearchRepositories(context.Background(), "topic:mcp-server", 30, 0)

	require.NoError(t, err)
	assert.Len(t, repos, 30)
}

func TestSearchRepositoriesRotatesTokenOnRateLimit(t *testing.T) {
	var seenAuth []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		seenAuth = append(seenAuth, auth)

		if auth == "Bearer first" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		writePage(t, w, 1, "ok")
	}))
	defer srv.Close()

	c := fastClient(srv, "first", "second")

	repos, err := c.SearchRepositories(context.Background(), "topic:claude-skill", 10, 0)

	require.NoError(t, err)
	assert.Len(t, repos, 1)
	assert.Equal(t, []string{"Bearer first", "Bearer second"}, seenAuth)
}

func TestSearchRepositoriesRetryBudgetExhausted(t *testing.T) {
	var hits int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++

		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	// Pool of two tokens allows size+2 = 4 retries before giving up.
	c := fastClient(srv, "a", "b")

	repos, err := c.SearchRepositories(context.Background(), "q", 10, 0)

	require.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Empty(t, repos)
	assert.Equal(t, 5, hits)
}

func TestSearchRepositoriesKeepsPartialOnUnexpectedStatus(t *testing.T) {
	var page int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		page++
		if page == 1 {
			writePage(t, w, maxPerPage, "p1")
			return
		}

		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := fastClient(srv, "token-a")

	repos, err := c.SearchRepositories(context.Background(), "q", 500, 0)

	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Len(t, repos, maxPerPage)
}

func TestSearchRepositoriesUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))

		writePage(t, w, 1, "anon")
	}))
	defer srv.Close()

	c := fastClient(srv)

	repos, err := c.SearchRepositories(context.Background(), "q", 10, 0)

	require.NoError(t, err)
	assert.Len(t, repos, 1)
}

func TestSearchRepositoriesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := fastClient(srv, "token-a")

	_, err := c.SearchRepositories(context.Background(), "q", 10, 0)

	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestSearchRepositoriesHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(NewTokenPool([]string{"a"}),
		WithBaseURL(srv.URL),
		WithCooldown(time.Minute),
		WithPageInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()

	_, err := c.SearchRepositories(ctx, "q", 10, 0)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "cool-down must abort on cancellation")
}
