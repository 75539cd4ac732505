package models

import "time"

// ScoreBreakdown carries the four scoring dimensions, each on a 0-100 scale.
// ContentQuality is sourced externally and carried through recomputes.
type ScoreBreakdown struct {
	Popularity     float64 `json:"popularity"`
	Velocity       float64 `json:"velocity"`
	Maintenance    float64 `json:"maintenance"`
	ContentQuality float64 `json:"content_quality"`
}

// ScoreSnapshot is one append-only score history row.
type ScoreSnapshot struct {
	ToolID         string    `json:"tool_id"`
	QualityScore   float64   `json:"quality_score"`
	RankInCategory int       `json:"rank_in_category"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// ScoreSummary reports the outcome of one scoring pass.
type ScoreSummary struct {
	Updated     int     `json:"updated"`
	Errors      int     `json:"errors"`
	DurationSec float64 `json:"duration_sec"`
}
