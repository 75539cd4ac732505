package db

import (
	"time"

	"github.com/mcphub/mcphub/pkg/models"
)

// HealthTarget is the slice of a tool row the probe engine needs.
type HealthTarget struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RepoURL  string `json:"repo_url"`
	IsActive bool   `json:"is_active"`
}

// ScoringRow carries the raw metrics the score engine reads for one tool.
type ScoringRow struct {
	ID             string                 `json:"id"`
	Stars          int                    `json:"stars"`
	Forks          int                    `json:"forks"`
	OpenIssues     int                    `json:"open_issues"`
	Stars7dAgo     int                    `json:"stars_7d_ago"`
	PushedAt       *time.Time             `json:"pushed_at,omitempty"`
	CreatedAt      *time.Time             `json:"created_at,omitempty"`
	ScoreBreakdown *models.ScoreBreakdown `json:"score_breakdown,omitempty"`
}

// ScoreUpdate is one tool's recomputed score fields.
type ScoreUpdate struct {
	ID             string                `json:"id"`
	QualityScore   float64               `json:"quality_score"`
	ScoreBreakdown models.ScoreBreakdown `json:"score_breakdown"`
	Velocity7d     int                   `json:"velocity_7d"`
	Stars7dAgo     int                   `json:"stars_7d_ago"`
	ScoreUpdatedAt time.Time             `json:"score_updated_at"`
}

// RankingRow is the (category, kind, score) projection the rank assigner
// orders by. Rows are returned sorted by quality_score descending.
type RankingRow struct {
	ID           string          `json:"id"`
	Category     models.Category `json:"category"`
	Kind         models.ToolKind `json:"tool_kind"`
	QualityScore float64         `json:"quality_score"`
}

// RankUpdate is one tool's newly assigned rank within its group.
type RankUpdate struct {
	ID   string `json:"id"`
	Rank int    `json:"rank_in_category"`
}

// SnapshotRow is the projection written into score history.
type SnapshotRow struct {
	ID             string  `json:"id"`
	QualityScore   float64 `json:"quality_score"`
	RankInCategory int     `json:"rank_in_category"`
}

// ToolFilter narrows ListTools. Zero values mean "no constraint"; Limit 0
// means no limit.
type ToolFilter struct {
	Kind       models.ToolKind `json:"tool_kind,omitempty"`
	Category   models.Category `json:"category,omitempty"`
	ActiveOnly bool            `json:"active_only,omitempty"`
	Limit      int             `json:"limit,omitempty"`
	Offset     int             `json:"offset,omitempty"`
}
