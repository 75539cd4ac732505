// Package scoring pkg/scoring/updater.go is the daily batch: recompute every
// active tool's score, assign ranks per (category, kind) group, and write a
// periodic history snapshot.
package scoring

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/mcphub/mcphub/pkg/db"
	"github.com/mcphub/mcphub/pkg/models"
)

const (
	defaultChunkSize = 100

	// Snapshots are written at most once per this interval.
	snapshotInterval = 7 * 24 * time.Hour
)

// Updater recomputes scores, ranks and snapshots over the store.
type Updater struct {
	store     db.Service
	chunkSize int
}

// Option configures an Updater.
type Option func(*Updater)

// WithChunkSize overrides the bulk-update chunk size.
func WithChunkSize(n int) Option {
	return func(u *Updater) {
		if n > 0 {
			u.chunkSize = n
		}
	}
}

// NewUpdater creates an Updater over the store.
func NewUpdater(store db.Service, opts ...Option) *Updater {
	u := &Updater{
		store:     store,
		chunkSize: defaultChunkSize,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

// RecomputeAll runs one full scoring pass. It never returns an error: a
// failed initial fetch reports one error and zero updates, and failed write
// chunks are subtracted from the updated count.
func (u *Updater) RecomputeAll(ctx context.Context) models.ScoreSummary {
	start := time.Now()

	rows, err := u.store.ListScoringRows()
	if err != nil {
		log.Printf("Failed to fetch tools for scoring: %v", err)
		return models.ScoreSummary{Errors: 1}
	}

	log.Printf("Scoring %d active tools", len(rows))

	now := time.Now().UTC()
	updates := make([]db.ScoreUpdate, 0, len(rows))

	for _, row := range rows {
		// Star delta since the last scoring pass; the baseline is
		// overwritten below so the next pass measures a fresh window.
		velocity := row.Stars - row.Stars7dAgo
		if velocity < 0 {
			velocity = 0
		}

		contentQuality := 0.0
		if row.ScoreBreakdown != nil {
			contentQuality = row.ScoreBreakdown.ContentQuality
		}

		result := Compute(Input{
			Stars:          row.Stars,
			Forks:          row.Forks,
			OpenIssues:     row.OpenIssues,
			Velocity7d:     velocity,
			PushedAt:       row.PushedAt,
			CreatedAt:      row.CreatedAt,
			ContentQuality: contentQuality,
		}, now)

		updates = append(updates, db.ScoreUpdate{
			ID:             row.ID,
			QualityScore:   result.QualityScore,
			ScoreBreakdown: result.Breakdown,
			Velocity7d:     velocity,
			Stars7dAgo:     row.Stars,
			ScoreUpdatedAt: now,
		})
	}

	updated := len(updates)
	errCount := 0

	for i := 0; i < len(updates); i += u.chunkSize {
		if ctx.Err() != nil {
			log.Printf("Score update aborted: %v", ctx.Err())
			break
		}

		end := i + u.chunkSize
		if end > len(updates) {
			end = len(updates)
		}

		if err := u.store.UpdateToolScores(updates[i:end]); err != nil {
			log.Printf("Score update chunk %d-%d failed: %v", i, end, err)

			errCount += end - i
			updated -= end - i
		}
	}

	u.assignRanks()
	u.snapshotIfDue(now)

	summary := models.ScoreSummary{
		Updated:     updated,
		Errors:      errCount,
		DurationSec: roundSec(time.Since(start)),
	}

	log.Printf("Score update done: updated=%d errors=%d (%.2fs)",
		summary.Updated, summary.Errors, summary.DurationSec)

	return summary
}

type rankGroup struct {
	category models.Category
	kind     models.ToolKind
}

// assignRanks walks the score-descending listing and hands out dense
// 1-based ranks within each (category, kind) group. Ties keep the listing's
// stable order.
func (u *Updater) assignRanks() {
	rows, err := u.store.ListRankingRows()
	if err != nil {
		log.Printf("Rank fetch failed: %v", err)
		return
	}

	counters := make(map[rankGroup]int)
	updates := make([]db.RankUpdate, 0, len(rows))

	for _, row := range rows {
		key := rankGroup{category: row.Category, kind: row.Kind}
		counters[key]++

		updates = append(updates, db.RankUpdate{ID: row.ID, Rank: counters[key]})
	}

	for i := 0; i < len(updates); i += u.chunkSize {
		end := i + u.chunkSize
		if end > len(updates) {
			end = len(updates)
		}

		if err := u.store.UpdateToolRanks(updates[i:end]); err != nil {
			log.Printf("Rank update chunk %d-%d failed: %v", i, end, err)
		}
	}
}

// snapshotIfDue writes one score_history row per active tool unless the most
// recent snapshot is younger than the interval. A failed gate read is
// treated as "no snapshot yet" so history keeps accruing.
func (u *Updater) snapshotIfDue(now time.Time) {
	last, err := u.store.LatestSnapshotTime()
	if err != nil {
		log.Printf("Snapshot gate check failed: %v", err)
	}

	if err == nil && !last.IsZero() && now.Sub(last) < snapshotInterval {
		return
	}

	rows, err := u.store.ListSnapshotRows()
	if err != nil {
		log.Printf("Snapshot fetch failed: %v", err)
		return
	}

	snapshots := make([]*models.ScoreSnapshot, 0, len(rows))

	for _, row := range rows {
		snapshots = append(snapshots, &models.ScoreSnapshot{
			ToolID:         row.ID,
			QualityScore:   row.QualityScore,
			RankInCategory: row.RankInCategory,
			RecordedAt:     now,
		})
	}

	for i := 0; i < len(snapshots); i += u.chunkSize {
		end := i + u.chunkSize
		if end > len(snapshots) {
			end = len(snapshots)
		}

		if err := u.store.InsertScoreSnapshots(snapshots[i:end]); err != nil {
			log.Printf("Snapshot insert chunk %d-%d failed: %v", i, end, err)
		}
	}

	if len(snapshots) > 0 {
		log.Printf("Snapshot saved: %d tools", len(snapshots))
	}
}

func roundSec(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
