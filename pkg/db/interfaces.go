// Package db pkg/db/interfaces.go
package db

import (
	"time"

	"github.com/mcphub/mcphub/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/mcphub/mcphub/pkg/db Service

// Service represents all store operations the batch subsystems need. Bulk
// methods take one caller-sized chunk per call; callers own chunking and the
// methods behave identically regardless of chunk boundaries.
type Service interface {
	Close() error

	// Tool operations.

	UpsertTools(tools []*models.Tool) error
	CountTools(kind models.ToolKind) (int, error)
	GetTool(id string) (*models.Tool, error)
	ListTools(filter ToolFilter) ([]models.Tool, error)
	SetToolsActive(ids []string, active bool) error

	// Health probing reads/writes.

	ListHealthTargets(ids []string) ([]HealthTarget, error)
	InsertHealthChecks(checks []*models.HealthCheck) error
	ListHealthHistory(toolID string, limit int) ([]models.HealthCheck, error)

	// Scoring reads/writes.

	ListScoringRows() ([]ScoringRow, error)
	UpdateToolScores(updates []ScoreUpdate) error
	ListRankingRows() ([]RankingRow, error)
	UpdateToolRanks(ranks []RankUpdate) error

	// Score history.

	LatestSnapshotTime() (time.Time, error)
	ListSnapshotRows() ([]SnapshotRow, error)
	InsertScoreSnapshots(snapshots []*models.ScoreSnapshot) error
}
