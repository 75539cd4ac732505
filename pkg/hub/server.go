// Package hub pkg/hub/server.go wires the batch subsystems together and
// exposes the three entry points callers (the scheduler, the one-shot CLI,
// an admin trigger) invoke. It also implements lifecycle.Service by running
// the crawl, health and scoring loops on their configured intervals.
package hub

import (
	"context"
	"log"
	"time"

	"github.com/mcphub/mcphub/pkg/config"
	"github.com/mcphub/mcphub/pkg/crawler"
	"github.com/mcphub/mcphub/pkg/db"
	"github.com/mcphub/mcphub/pkg/github"
	"github.com/mcphub/mcphub/pkg/health"
	"github.com/mcphub/mcphub/pkg/models"
	"github.com/mcphub/mcphub/pkg/scoring"
)

// Server owns the batch components over one shared store handle.
type Server struct {
	cfg     *config.HubConfig
	store   db.Service
	crawler *crawler.Crawler
	checker *health.Checker
	updater *scoring.Updater
	done    chan struct{}
}

// NewServer builds the component graph from config: token pool, search
// client, crawler, health checker and score updater, all over the given
// store.
func NewServer(cfg *config.HubConfig, store db.Service) *Server {
	tokens := github.NewTokenPool(cfg.GitHubTokens)
	client := github.NewClient(tokens)

	return &Server{
		cfg:     cfg,
		store:   store,
		crawler: crawler.New(client, store),
		checker: health.New(store,
			health.WithTimeout(time.Duration(cfg.HealthTimeout)),
			health.WithConcurrency(cfg.HealthConcurrency)),
		updater: scoring.NewUpdater(store),
		done:    make(chan struct{}),
	}
}

// DiscoverAndSync crawls the search provider for one tool kind and syncs the
// results into the store.
func (s *Server) DiscoverAndSync(ctx context.Context, kind models.ToolKind, maxResults int) models.CrawlSummary {
	if maxResults <= 0 {
		maxResults = s.cfg.CrawlMaxResults
	}

	return s.crawler.Run(ctx, kind, maxResults)
}

// RunHealthChecks probes the given tool ids, or every active opted-in tool
// when ids is empty.
func (s *Server) RunHealthChecks(ctx context.Context, ids []string) models.HealthSummary {
	return s.checker.Run(ctx, ids)
}

// RecomputeAllScores runs one full scoring pass: scores, ranks, snapshot.
func (s *Server) RecomputeAllScores(ctx context.Context) models.ScoreSummary {
	return s.updater.RecomputeAll(ctx)
}

// CrawlAll runs discovery for both tool kinds back to back.
func (s *Server) CrawlAll(ctx context.Context) {
	for _, kind := range []models.ToolKind{models.KindServer, models.KindSkill} {
		summary := s.DiscoverAndSync(ctx, kind, s.cfg.CrawlMaxResults)
		log.Printf("Crawl %s: %+v", kind, summary)

		if ctx.Err() != nil {
			return
		}
	}
}

// Start runs the periodic loops until the context is canceled or Stop is
// called. Individual run failures are already absorbed by the components;
// the loops never exit early because one run went badly.
func (s *Server) Start(ctx context.Context) error {
	log.Printf("Hub started (crawl=%v health=%v score=%v)",
		time.Duration(s.cfg.CrawlInterval),
		time.Duration(s.cfg.HealthInterval),
		time.Duration(s.cfg.ScoreInterval))

	if s.cfg.CrawlOnStart {
		s.CrawlAll(ctx)
		s.RunHealthChecks(ctx, nil)
	}

	crawlTicker := time.NewTicker(time.Duration(s.cfg.CrawlInterval))
	defer crawlTicker.Stop()

	healthTicker := time.NewTicker(time.Duration(s.cfg.HealthInterval))
	defer healthTicker.Stop()

	scoreTicker := time.NewTicker(time.Duration(s.cfg.ScoreInterval))
	defer scoreTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-crawlTicker.C:
			s.CrawlAll(ctx)
		case <-healthTicker.C:
			s.RunHealthChecks(ctx, nil)
		case <-scoreTicker.C:
			s.RecomputeAllScores(ctx)
		}
	}
}

// Stop signals the loops to exit and closes the store.
func (s *Server) Stop(_ context.Context) error {
	close(s.done)

	return s.store.Close()
}
