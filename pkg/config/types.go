package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	errNoDBPath = errors.New("db_path is required")
)

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// HubConfig represents the configuration for the hub daemon and the batch CLI.
type HubConfig struct {
	DBPath            string   `json:"db_path"`              // e.g. /var/lib/mcphub/hub.db
	GitHubTokens      []string `json:"github_tokens"`        // rotation pool; empty runs unauthenticated
	CrawlMaxResults   int      `json:"crawl_max_results"`    // per tool kind, default 500
	CrawlInterval     Duration `json:"crawl_interval"`       // e.g. "24h"
	HealthInterval    Duration `json:"health_interval"`      // e.g. "1h"
	ScoreInterval     Duration `json:"score_interval"`       // e.g. "24h"
	HealthTimeout     Duration `json:"health_timeout"`       // per-probe timeout, default 10s
	HealthConcurrency int      `json:"health_concurrency"`   // probe fan-out limit, default 20
	CrawlOnStart      bool     `json:"crawl_on_start"`       // run a full crawl when the daemon starts
}

const (
	defaultCrawlMaxResults   = 500
	defaultHealthTimeout     = 10 * time.Second
	defaultHealthConcurrency = 20
	defaultCrawlInterval     = 24 * time.Hour
	defaultHealthInterval    = time.Hour
	defaultScoreInterval     = 24 * time.Hour
)

// Validate checks required fields and fills defaults for everything else.
func (c *HubConfig) Validate() error {
	if c.DBPath == "" {
		return errNoDBPath
	}

	if c.CrawlMaxResults <= 0 {
		c.CrawlMaxResults = defaultCrawlMaxResults
	}

	if c.HealthTimeout == 0 {
		c.HealthTimeout = Duration(defaultHealthTimeout)
	}

	if c.HealthConcurrency <= 0 {
		c.HealthConcurrency = defaultHealthConcurrency
	}

	if c.CrawlInterval == 0 {
		c.CrawlInterval = Duration(defaultCrawlInterval)
	}

	if c.HealthInterval == 0 {
		c.HealthInterval = Duration(defaultHealthInterval)
	}

	if c.ScoreInterval == 0 {
		c.ScoreInterval = Duration(defaultScoreInterval)
	}

	return nil
}
