// Package health pkg/health/checker.go probes tool repositories for
// liveness under a bounded concurrency budget and applies the tri-state
// activation policy.
package health

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mcphub/mcphub/pkg/db"
	"github.com/mcphub/mcphub/pkg/models"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 20

	// Error descriptions are bounded before storage.
	maxErrorLen = 200
)

// Checker runs liveness probes against tool repository URLs.
type Checker struct {
	store       db.Service
	httpClient  *http.Client
	concurrency int
	timeout     time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the per-probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithConcurrency bounds the probe fan-out.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithHTTPClient overrides the probe HTTP client. Used in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) {
		c.httpClient = hc
	}
}

// New creates a Checker over the store.
func New(store db.Service, opts ...Option) *Checker {
	c := &Checker{
		store:       store,
		concurrency: defaultConcurrency,
		timeout:     defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		// Redirect-following is deliberate: repositories commonly move.
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c
}

// Run probes either the explicit id subset (regardless of activation state)
// or every active opted-in tool, records the results as append-only history,
// and flips activation only on a definite up or down. It never returns an
// error; a degraded store yields a zero summary.
func (c *Checker) Run(ctx context.Context, ids []string) models.HealthSummary {
	targets, err := c.store.ListHealthTargets(ids)
	if err != nil {
		log.Printf("Health target query failed: %v", err)
		return models.HealthSummary{}
	}

	if len(targets) == 0 {
		return models.HealthSummary{}
	}

	results := c.probeAll(ctx, targets)

	if len(results) > 0 {
		if err := c.store.InsertHealthChecks(results); err != nil {
			log.Printf("Health check insert failed: %v", err)
		}
	}

	summary := c.applyPolicy(results)

	log.Printf("Health run done: checked=%d up=%d down=%d unknown=%d",
		summary.Checked, summary.Up, summary.Down, summary.Unknown)

	return summary
}

// probeAll fans the targets out over a bounded worker pool and collects the
// valid results after all workers finish. A failing or panicking probe never
// aborts its siblings; it is dropped from aggregation.
func (c *Checker) probeAll(ctx context.Context, targets []db.HealthTarget) []*models.HealthCheck {
	targetChan := make(chan db.HealthTarget, c.concurrency)
	resultChan := make(chan *models.HealthCheck, len(targets))

	var wg sync.WaitGroup

	for i := 0; i < c.concurrency; i++ {
		wg.Add(1)

		go c.runWorker(ctx, &wg, targetChan, resultChan)
	}

	go func() {
		defer close(targetChan)

		for _, t := range targets {
			select {
			case targetChan <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(resultChan)

	results := make([]*models.HealthCheck, 0, len(targets))

	for r := range resultChan {
		if r != nil && r.ToolID != "" {
			results = append(results, r)
		}
	}

	return results
}

func (c *Checker) runWorker(ctx context.Context, wg *sync.WaitGroup, targets <-chan db.HealthTarget, results chan<- *models.HealthCheck) {
	defer wg.Done()

	for {
		select {
		case target, ok := <-targets:
			if !ok {
				return
			}

			results <- c.safeProbe(ctx, target)
		case <-ctx.Done():
			return
		}
	}
}

// safeProbe isolates one probe so a panic produces a dropped result instead
// of taking down the run.
func (c *Checker) safeProbe(ctx context.Context, target db.HealthTarget) (result *models.HealthCheck) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Probe for %s panicked: %v", target.RepoURL, r)

			result = nil
		}
	}()

	return c.probe(ctx, target)
}

// probe issues a single HEAD request against the target's canonical URL and
// classifies the outcome into the tri-state status.
func (c *Checker) probe(ctx context.Context, target db.HealthTarget) *models.HealthCheck {
	check := &models.HealthCheck{
		ToolID:    target.ID,
		CheckedAt: time.Now().UTC(),
	}

	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, target.RepoURL, nil)
	if err != nil {
		check.Status = models.StatusUnknown
		check.ErrorMessage = truncate(err.Error(), maxErrorLen)

		return check
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		check.Status, check.ErrorMessage = classifyError(err)
		return check
	}

	if cerr := resp.Body.Close(); cerr != nil {
		log.Printf("failed to close probe body: %v", cerr)
	}

	elapsed := time.Since(start).Milliseconds()
	check.ResponseTimeMS = &elapsed
	check.HTTPStatus = &resp.StatusCode
	check.Status, check.ErrorMessage = classifyStatus(resp.StatusCode)

	return check
}

// classifyStatus maps a completed exchange's status code to the tri-state
// policy. Anything outside the known shapes is unknown so a flaky edge can
// never delist a tool.
func classifyStatus(code int) (models.HealthStatus, string) {
	switch {
	case code < http.StatusBadRequest:
		return models.StatusUp, ""
	case code == http.StatusNotFound:
		return models.StatusDown, "Repository not found (404)"
	case code == http.StatusUnavailableForLegalReasons:
		return models.StatusDown, "Repository unavailable (451)"
	default:
		return models.StatusUnknown, fmt.Sprintf("Unexpected status: %d", code)
	}
}

// classifyError maps a transport failure: timeouts and refused connections
// are definite downs, everything else is an unknown.
func classifyError(err error) (models.HealthStatus, string) {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.StatusDown, "Timeout"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.StatusDown, "Timeout"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return models.StatusDown, "Connection failed"
	}

	return models.StatusUnknown, truncate(err.Error(), maxErrorLen)
}

// applyPolicy updates activation from definite statuses only: up forces
// active, down forces inactive, unknown leaves the prior state untouched.
func (c *Checker) applyPolicy(results []*models.HealthCheck) models.HealthSummary {
	summary := models.HealthSummary{Checked: len(results)}

	var upIDs, downIDs []string

	for _, r := range results {
		switch r.Status {
		case models.StatusUp:
			summary.Up++

			upIDs = append(upIDs, r.ToolID)
		case models.StatusDown:
			summary.Down++

			downIDs = append(downIDs, r.ToolID)
		case models.StatusUnknown:
			summary.Unknown++
		}
	}

	if len(upIDs) > 0 {
		if err := c.store.SetToolsActive(upIDs, true); err != nil {
			log.Printf("Activation update (up) failed: %v", err)
		}
	}

	if len(downIDs) > 0 {
		if err := c.store.SetToolsActive(downIDs, false); err != nil {
			log.Printf("Activation update (down) failed: %v", err)
		}
	}

	return summary
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
