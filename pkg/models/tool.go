// Package models pkg/models/tool.go defines the shared domain types for the
// tool directory.
package models

import "time"

// ToolKind distinguishes the two repository kinds the directory tracks.
type ToolKind string

const (
	// KindServer is an MCP server implementation.
	KindServer ToolKind = "server"

	// KindSkill is a Claude skill package.
	KindSkill ToolKind = "skill"
)

// Category is the coarse functional grouping a tool is ranked within.
type Category string

const (
	CategoryDatabase     Category = "database"
	CategoryBrowser      Category = "browser"
	CategoryFilesystem   Category = "filesystem"
	CategoryCode         Category = "code"
	CategoryProductivity Category = "productivity"
	CategoryAPI          Category = "api"
	CategorySearch       Category = "search"
	CategoryOther        Category = "other"
)

// Tool is one discovered repository. RepoURL is the canonical identity for
// ingestion; ID is the stable record identity everything else references.
type Tool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	RepoURL     string   `json:"repo_url"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Kind        ToolKind `json:"tool_kind"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	OpenIssues  int      `json:"open_issues"`
	Topics      []string `json:"topics"`
	Owner       string   `json:"owner,omitempty"`
	IsActive    bool     `json:"is_active"`
	HealthOptIn bool     `json:"health_check_opt_in"`

	PushedAt      *time.Time `json:"pushed_at,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	LastCrawledAt time.Time  `json:"last_crawled_at"`

	QualityScore   float64         `json:"quality_score"`
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"`
	Velocity7d     int             `json:"velocity_7d"`
	Stars7dAgo     int             `json:"stars_7d_ago"`
	RankInCategory int             `json:"rank_in_category,omitempty"`
	ScoreUpdatedAt *time.Time      `json:"score_updated_at,omitempty"`
}

// CrawlSummary reports the outcome of one discovery run for one kind.
type CrawlSummary struct {
	Found        int     `json:"found"`
	New          int     `json:"new"`
	Updated      int     `json:"updated"`
	TotalInStore int     `json:"total_in_store"`
	DurationSec  float64 `json:"duration_sec"`
}
