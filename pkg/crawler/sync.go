package crawler

import (
	"log"

	"github.com/mcphub/mcphub/pkg/models"
)

const defaultChunkSize = 100

// sync bulk-upserts normalized records and derives new/updated counts from
// the before/after row counts for this tool kind. The counts are a
// best-effort approximation, not a per-row diff: concurrent ingestion of the
// other kind can skew them, but they are clamped so they never go negative.
func (c *Crawler) sync(tools []*models.Tool, kind models.ToolKind) models.CrawlSummary {
	if len(tools) == 0 {
		total, err := c.store.CountTools(kind)
		if err != nil {
			log.Printf("Count for kind %s failed: %v", kind, err)
			return models.CrawlSummary{}
		}

		return models.CrawlSummary{TotalInStore: total}
	}

	before, err := c.store.CountTools(kind)
	if err != nil {
		// Store unreachable; report a zero-valued outcome rather than
		// crashing the scheduler.
		log.Printf("Pre-sync count for kind %s failed: %v", kind, err)
		return models.CrawlSummary{}
	}

	// Each chunk stands alone: a failed chunk is logged and skipped while
	// the rest proceed, so partial ingestion is an expected outcome under
	// transient store errors.
	for i := 0; i < len(tools); i += c.chunkSize {
		end := i + c.chunkSize
		if end > len(tools) {
			end = len(tools)
		}

		if err := c.store.UpsertTools(tools[i:end]); err != nil {
			log.Printf("Upsert chunk %d-%d failed: %v", i, end, err)
		}
	}

	after, err := c.store.CountTools(kind)
	if err != nil {
		log.Printf("Post-sync count for kind %s failed: %v", kind, err)

		after = before
	}

	newCount := after - before
	if newCount < 0 {
		newCount = 0
	}

	updated := len(tools) - newCount
	if updated < 0 {
		updated = 0
	}

	return models.CrawlSummary{
		Found:        len(tools),
		New:          newCount,
		Updated:      updated,
		TotalInStore: after,
	}
}
