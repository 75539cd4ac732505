package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcphub/mcphub/pkg/models"
)

func newTestDB(t *testing.T) Service {
	t.Helper()

	svc, err := New(filepath.Join(t.TempDir(), "hub.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, svc.Close())
	})

	return svc
}

func makeTool(name, repoURL string) *models.Tool {
	now := time.Now().UTC()

	return &models.Tool{
		ID:            uuid.NewString(),
		Name:          name,
		RepoURL:       repoURL,
		Description:   "a test repository",
		Category:      models.CategoryDatabase,
		Kind:          models.KindServer,
		Stars:         10,
		Forks:         2,
		OpenIssues:    1,
		Topics:        []string{"mcp-server"},
		Owner:         "octocat",
		IsActive:      true,
		HealthOptIn:   true,
		PushedAt:      &now,
		CreatedAt:     &now,
		LastCrawledAt: now,
	}
}

func TestUpsertInsertsAndGets(t *testing.T) {
	svc := newTestDB(t)

	tool := makeTool("alpha", "https://github.test/a/alpha")
	require.NoError(t, svc.UpsertTools([]*models.Tool{tool}))

	got, err := svc.GetTool(tool.ID)
	require.NoError(t, err)

	assert.Equal(t, tool.Name, got.Name)
	assert.Equal(t, tool.RepoURL, got.RepoURL)
	assert.Equal(t, tool.Category, got.Category)
	assert.Equal(t, tool.Kind, got.Kind)
	assert.Equal(t, []string{"mcp-server"}, got.Topics)
	assert.True(t, got.IsActive)
	assert.True(t, got.HealthOptIn)
	require.NotNil(t, got.PushedAt)
}

func TestGetToolNotFound(t *testing.T) {
	svc := newTestDB(t)

	_, err := svc.GetTool("missing")
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestUpsertPreservesIdentityAndScores(t *testing.T) {
	svc := newTestDB(t)

	tool := makeTool("alpha", "https://github.test/a/alpha")
	require.NoError(t, svc.UpsertTools([]*models.Tool{tool}))

	scoredAt := time.Now().UTC()
	require.NoError(t, svc.UpdateToolScores([]ScoreUpdate{{
		ID:             tool.ID,
		QualityScore:   77.5,
		ScoreBreakdown: models.ScoreBreakdown{Popularity: 80, Velocity: 70, Maintenance: 90, ContentQuality: 50},
		Velocity7d:     4,
		Stars7dAgo:     6,
		ScoreUpdatedAt: scoredAt,
	}}))

	// Re-ingestion under a fresh record id must update discovery fields in
	// place without touching the row identity or its score fields.
	reingested := makeTool("alpha-renamed", tool.RepoURL)
	reingested.Stars = 42
	require.NoError(t, svc.UpsertTools([]*models.Tool{reingested}))

	count, err := svc.CountTools("")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.GetTool(reingested.ID)
	assert.ErrorIs(t, err, ErrToolNotFound)

	got, err := svc.GetTool(tool.ID)
	require.NoError(t, err)
	assert.Equal(t, "alpha-renamed", got.Name)
	assert.Equal(t, 42, got.Stars)
	assert.InDelta(t, 77.5, got.QualityScore, 0.001)
	assert.Equal(t, 6, got.Stars7dAgo)
	require.NotNil(t, got.ScoreBreakdown)
	assert.InDelta(t, 80, got.ScoreBreakdown.Popularity, 0.001)
}

func TestCountToolsByKind(t *testing.T) {
	svc := newTestDB(t)

	server := makeTool("server", "https://github.test/a/server")

	skill := makeTool("skill", "https://github.test/a/skill")
	skill.Kind = models.KindSkill
	skill.Category = models.CategoryProductivity

	require.NoError(t, svc.UpsertTools([]*models.Tool{server, skill}))

	total, err := svc.CountTools("")
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	servers, err := svc.CountTools(models.KindServer)
	require.NoError(t, err)
	assert.Equal(t, 1, servers)

	skills, err := svc.CountTools(models.KindSkill)
	require.NoError(t, err)
	assert.Equal(t, 1, skills)
}

func TestListToolsFilterAndOrder(t *testing.T) {
	svc := newTestDB(t)

	high := makeTool("high", "https://github.test/a/high")
	low := makeTool("low", "https://github.test/a/low")

	inactive := makeTool("inactive", "https://github.test/a/inactive")
	inactive.IsActive = false

	require.NoError(t, svc.UpsertTools([]*models.Tool{low, high, inactive}))

	now := time.Now().UTC()
	require.NoError(t, svc.UpdateToolScores([]ScoreUpdate{
		{ID: high.ID, QualityScore: 90, ScoreUpdatedAt: now},
		{ID: low.ID, QualityScore: 10, ScoreUpdatedAt: now},
	}))

	tools, err := svc.ListTools(ToolFilter{Kind: models.KindServer, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "high", tools[0].Name)
	assert.Equal(t, "low", tools[1].Name)

	limited, err := svc.ListTools(ToolFilter{ActiveOnly: true, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "low", limited[0].Name)
}

func TestHealthTargetsDefaultAndSubset(t *testing.T) {
	svc := newTestDB(t)

	active := makeTool("active", "https://github.test/a/active")

	inactive := makeTool("inactive", "https://github.test/a/inactive")
	inactive.IsActive = false

	optedOut := makeTool("opted-out", "https://github.test/a/opted-out")
	optedOut.HealthOptIn = false

	require.NoError(t, svc.UpsertTools([]*models.Tool{active, inactive, optedOut}))

	// The default sweep only probes rows that are both active and opted in.
	targets, err := svc.ListHealthTargets(nil)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, active.ID, targets[0].ID)

	// An explicit subset reaches inactive rows so a delisted tool can be
	// re-probed, but never an opted-out one.
	targets, err = svc.ListHealthTargets([]string{inactive.ID, optedOut.ID})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, inactive.ID, targets[0].ID)
	assert.False(t, targets[0].IsActive)
}

func TestSetToolsActive(t *testing.T) {
	svc := newTestDB(t)

	a := makeTool("a", "https://github.test/a/a")
	b := makeTool("b", "https://github.test/a/b")
	require.NoError(t, svc.UpsertTools([]*models.Tool{a, b}))

	require.NoError(t, svc.SetToolsActive([]string{a.ID, b.ID}, false))

	gotA, err := svc.GetTool(a.ID)
	require.NoError(t, err)
	assert.False(t, gotA.IsActive)

	require.NoError(t, svc.SetToolsActive([]string{a.ID}, true))

	gotA, err = svc.GetTool(a.ID)
	require.NoError(t, err)
	assert.True(t, gotA.IsActive)

	gotB, err := svc.GetTool(b.ID)
	require.NoError(t, err)
	assert.False(t, gotB.IsActive)

	// Empty id list is a no-op, not an error.
	require.NoError(t, svc.SetToolsActive(nil, true))
}

func TestHealthHistoryNewestFirst(t *testing.T) {
	svc := newTestDB(t)

	tool := makeTool("alpha", "https://github.test/a/alpha")
	require.NoError(t, svc.UpsertTools([]*models.Tool{tool}))

	base := time.Now().UTC().Truncate(time.Second)
	latency := int64(120)
	status := 200

	checks := []*models.HealthCheck{
		{ToolID: tool.ID, Status: models.StatusUp, ResponseTimeMS: &latency, HTTPStatus: &status, CheckedAt: base.Add(-2 * time.Hour)},
		{ToolID: tool.ID, Status: models.StatusDown, ErrorMessage: "Timeout", CheckedAt: base.Add(-1 * time.Hour)},
		{ToolID: tool.ID, Status: models.StatusUnknown, ErrorMessage: "Unexpected status: 500", CheckedAt: base},
	}
	require.NoError(t, svc.InsertHealthChecks(checks))

	history, err := svc.ListHealthHistory(tool.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, models.StatusUnknown, history[0].Status)
	assert.Equal(t, models.StatusDown, history[1].Status)
	assert.Equal(t, models.StatusUp, history[2].Status)

	require.NotNil(t, history[2].ResponseTimeMS)
	assert.Equal(t, latency, *history[2].ResponseTimeMS)
	require.NotNil(t, history[2].HTTPStatus)
	assert.Equal(t, status, *history[2].HTTPStatus)

	assert.Nil(t, history[1].ResponseTimeMS)
	assert.Nil(t, history[1].HTTPStatus)
	assert.Equal(t, "Timeout", history[1].ErrorMessage)

	limited, err := svc.ListHealthHistory(tool.ID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, models.StatusUnknown, limited[0].Status)
}

func TestScoringRowsRoundtrip(t *testing.T) {
	svc := newTestDB(t)

	tool := makeTool("alpha", "https://github.test/a/alpha")

	inactive := makeTool("off", "https://github.test/a/off")
	inactive.IsActive = false

	require.NoError(t, svc.UpsertTools([]*models.Tool{tool, inactive}))

	rows, err := svc.ListScoringRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tool.ID, rows[0].ID)
	assert.Equal(t, tool.Stars, rows[0].Stars)
	assert.Nil(t, rows[0].ScoreBreakdown)

	breakdown := models.ScoreBreakdown{Popularity: 69.6, Velocity: 24, Maintenance: 50, ContentQuality: 25}
	require.NoError(t, svc.UpdateToolScores([]ScoreUpdate{{
		ID:             tool.ID,
		QualityScore:   42.4,
		ScoreBreakdown: breakdown,
		Velocity7d:     12,
		Stars7dAgo:     88,
		ScoreUpdatedAt: time.Now().UTC(),
	}}))

	rows, err = svc.ListScoringRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 88, rows[0].Stars7dAgo)
	require.NotNil(t, rows[0].ScoreBreakdown)
	assert.InDelta(t, breakdown.ContentQuality, rows[0].ScoreBreakdown.ContentQuality, 0.001)
}

func TestRankingRowsOrderedByScore(t *testing.T) {
	svc := newTestDB(t)

	a := makeTool("a", "https://github.test/a/a")
	b := makeTool("b", "https://github.test/a/b")
	c := makeTool("c", "https://github.test/a/c")
	require.NoError(t, svc.UpsertTools([]*models.Tool{a, b, c}))

	now := time.Now().UTC()
	require.NoError(t, svc.UpdateToolScores([]ScoreUpdate{
		{ID: a.ID, QualityScore: 10, ScoreUpdatedAt: now},
		{ID: b.ID, QualityScore: 90, ScoreUpdatedAt: now},
		{ID: c.ID, QualityScore: 50, ScoreUpdatedAt: now},
	}))

	rows, err := svc.ListRankingRows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, b.ID, rows[0].ID)
	assert.Equal(t, c.ID, rows[1].ID)
	assert.Equal(t, a.ID, rows[2].ID)
	assert.Equal(t, models.CategoryDatabase, rows[0].Category)
	assert.Equal(t, models.KindServer, rows[0].Kind)
}

func TestRanksAndSnapshotRows(t *testing.T) {
	svc := newTestDB(t)

	ranked := makeTool("ranked", "https://github.test/a/ranked")
	unranked := makeTool("unranked", "https://github.test/a/unranked")
	require.NoError(t, svc.UpsertTools([]*models.Tool{ranked, unranked}))

	require.NoError(t, svc.UpdateToolRanks([]RankUpdate{{ID: ranked.ID, Rank: 3}}))

	got, err := svc.GetTool(ranked.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.RankInCategory)

	rows, err := svc.ListSnapshotRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]SnapshotRow{}
	for _, r := range rows {
		byID[r.ID] = r
	}

	assert.Equal(t, 3, byID[ranked.ID].RankInCategory)
	// A never-ranked row snapshots as rank zero rather than NULL.
	assert.Equal(t, 0, byID[unranked.ID].RankInCategory)
}

func TestSnapshotHistory(t *testing.T) {
	svc := newTestDB(t)

	tool := makeTool("alpha", "https://github.test/a/alpha")
	require.NoError(t, svc.UpsertTools([]*models.Tool{tool}))

	latest, err := svc.LatestSnapshotTime()
	require.NoError(t, err)
	assert.True(t, latest.IsZero())

	older := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Second)
	newer := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, svc.InsertScoreSnapshots([]*models.ScoreSnapshot{
		{ToolID: tool.ID, QualityScore: 40, RankInCategory: 1, RecordedAt: older},
		{ToolID: tool.ID, QualityScore: 45, RankInCategory: 1, RecordedAt: newer},
	}))

	latest, err = svc.LatestSnapshotTime()
	require.NoError(t, err)
	assert.WithinDuration(t, newer, latest, time.Second)
}
