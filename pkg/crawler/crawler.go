// Package crawler pkg/crawler/crawler.go discovers tool repositories via the
// search provider, normalizes them into tool records, and syncs them into
// the store.
package crawler

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mcphub/mcphub/pkg/db"
	"github.com/mcphub/mcphub/pkg/github"
	"github.com/mcphub/mcphub/pkg/models"
)

const (
	// Descriptions are truncated to this many runes before storage.
	maxDescriptionLen = 500

	// Pause between the queries of a battery, on top of the client's
	// per-request pacing.
	defaultQueryDelay = time.Second
)

// Crawler runs the discovery and ingestion path for one tool kind at a time.
type Crawler struct {
	searcher   Searcher
	store      db.Service
	chunkSize  int
	queryDelay time.Duration
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithQueryDelay overrides the inter-query pause. Used in tests.
func WithQueryDelay(d time.Duration) Option {
	return func(c *Crawler) {
		c.queryDelay = d
	}
}

// WithChunkSize overrides the upsert chunk size.
func WithChunkSize(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// New creates a Crawler over a searcher and a store.
func New(searcher Searcher, store db.Service, opts ...Option) *Crawler {
	c := &Crawler{
		searcher:   searcher,
		store:      store,
		chunkSize:  defaultChunkSize,
		queryDelay: defaultQueryDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run discovers up to maxResults repositories of one kind and syncs them
// into the store. It never returns an error: a fully failed battery is a
// zero-found run, and degraded dependencies yield a zero-valued summary.
func (c *Crawler) Run(ctx context.Context, kind models.ToolKind, maxResults int) models.CrawlSummary {
	start := time.Now()

	repos := c.discover(ctx, kind, maxResults)

	tools := make([]*models.Tool, 0, len(repos))
	now := time.Now().UTC()

	for _, repo := range repos {
		tools = append(tools, normalizeRepo(repo, kind, now))
	}

	summary := c.sync(tools, kind)
	summary.DurationSec = roundSec(time.Since(start))

	log.Printf("Crawl done (kind=%s): found=%d new=%d updated=%d total=%d (%.2fs)",
		kind, summary.Found, summary.New, summary.Updated, summary.TotalInStore, summary.DurationSec)

	return summary
}

// discover issues the kind's query battery and merges results into a map
// keyed by canonical URL. A URL seen by an earlier query is never
// overwritten by a later query's copy. Query failures abandon that query
// only; partial pages already gathered are kept.
func (c *Crawler) discover(ctx context.Context, kind models.ToolKind, maxResults int) []github.Repo {
	seen := make(map[string]struct{})

	var merged []github.Repo

	for i, query := range queryBatteries[kind] {
		if i > 0 {
			if err := c.waitQueryDelay(ctx); err != nil {
				log.Printf("Crawl aborted between queries: %v", err)
				break
			}
		}

		repos, err := c.searcher.SearchRepositories(ctx, query, maxResults, i)
		if err != nil {
			log.Printf("Query %q abandoned: %v", query, err)
		}

		for _, repo := range repos {
			if repo.HTMLURL == "" {
				continue
			}

			if _, ok := seen[repo.HTMLURL]; ok {
				continue
			}

			seen[repo.HTMLURL] = struct{}{}
			merged = append(merged, repo)
		}

		if len(merged) >= maxResults {
			break
		}
	}

	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}

	return merged
}

func (c *Crawler) waitQueryDelay(ctx context.Context) error {
	timer := time.NewTimer(c.queryDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// normalizeRepo maps a provider search result into a tool record, assigning
// a fresh identity for the insert path. On re-ingestion the store keeps the
// existing id, opt-in flag and score fields.
func normalizeRepo(repo github.Repo, kind models.ToolKind, now time.Time) *models.Tool {
	description := ""
	if repo.Description != nil {
		description = truncateRunes(*repo.Description, maxDescriptionLen)
	}

	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}

	return &models.Tool{
		ID:            uuid.NewString(),
		Name:          repo.Name,
		RepoURL:       repo.HTMLURL,
		Description:   description,
		Category:      classifyRepo(kind, topics, repo.Name, description),
		Kind:          kind,
		Stars:         repo.Stars,
		Forks:         repo.Forks,
		OpenIssues:    repo.OpenIssues,
		Topics:        topics,
		Owner:         repo.Owner.Login,
		IsActive:      !repo.Archived,
		HealthOptIn:   true,
		PushedAt:      repo.PushedAt,
		CreatedAt:     repo.CreatedAt,
		LastCrawledAt: now,
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}

func roundSec(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
