// Package db pkg/db/db.go provides SQLite persistence for MCPHub.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/mcphub/mcphub/pkg/models"
)

const (
	// SQL statements for database initialization.
	createTablesSQL = `
	-- Discovered tool repositories, one row per canonical URL
	CREATE TABLE IF NOT EXISTS tools (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		repo_url TEXT NOT NULL UNIQUE,
		description TEXT,
		category TEXT NOT NULL DEFAULT 'other',
		tool_kind TEXT NOT NULL,
		stars INTEGER NOT NULL DEFAULT 0,
		forks INTEGER NOT NULL DEFAULT 0,
		open_issues INTEGER NOT NULL DEFAULT 0,
		topics TEXT NOT NULL DEFAULT '[]',
		owner TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		health_check_opt_in BOOLEAN NOT NULL DEFAULT 1,
		pushed_at TIMESTAMP,
		created_at TIMESTAMP,
		last_crawled_at TIMESTAMP NOT NULL,
		quality_score REAL NOT NULL DEFAULT 0,
		score_breakdown TEXT,
		velocity_7d INTEGER NOT NULL DEFAULT 0,
		stars_7d_ago INTEGER NOT NULL DEFAULT 0,
		rank_in_category INTEGER,
		score_updated_at TIMESTAMP
	);

	-- Append-only probe history
	CREATE TABLE IF NOT EXISTS health_checks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool_id TEXT NOT NULL,
		status TEXT NOT NULL,
		response_time_ms INTEGER,
		http_status INTEGER,
		error_message TEXT,
		checked_at TIMESTAMP NOT NULL,
		FOREIGN KEY (tool_id) REFERENCES tools(id) ON DELETE CASCADE
	);

	-- Append-only score snapshots
	CREATE TABLE IF NOT EXISTS score_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool_id TEXT NOT NULL,
		quality_score REAL NOT NULL,
		rank_in_category INTEGER,
		recorded_at TIMESTAMP NOT NULL,
		FOREIGN KEY (tool_id) REFERENCES tools(id) ON DELETE CASCADE
	);

	-- Indexes for better query performance
	CREATE INDEX IF NOT EXISTS idx_tools_kind_category
		ON tools(tool_kind, category);
	CREATE INDEX IF NOT EXISTS idx_tools_active_score
		ON tools(is_active, quality_score);
	CREATE INDEX IF NOT EXISTS idx_health_checks_tool_time
		ON health_checks(tool_id, checked_at);
	CREATE INDEX IF NOT EXISTS idx_score_history_tool_time
		ON score_history(tool_id, recorded_at);
	CREATE INDEX IF NOT EXISTS idx_score_history_time
		ON score_history(recorded_at);

	PRAGMA foreign_keys=ON;
	`
)

// DB represents the database connection and operations.
type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes the schema.
func New(dbPath string) (Service, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	db := &DB{sqlDB}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return db, nil
}

// initSchema creates the database tables if they don't exist.
func (db *DB) initSchema() error {
	_, err := db.Exec(createTablesSQL)

	return err
}

// UpsertTools inserts or replaces one chunk of tool rows keyed by repo_url.
// Discovery fields are overwritten; identity, opt-in and score fields on an
// existing row are left alone so re-ingestion never clobbers them.
func (db *DB) UpsertTools(tools []*models.Tool) error {
	const upsertSQL = `
		INSERT INTO tools (
			id, name, repo_url, description, category, tool_kind,
			stars, forks, open_issues, topics, owner,
			is_active, health_check_opt_in, pushed_at, created_at, last_crawled_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(repo_url) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			tool_kind = excluded.tool_kind,
			stars = excluded.stars,
			forks = excluded.forks,
			open_issues = excluded.open_issues,
			topics = excluded.topics,
			owner = excluded.owner,
			is_active = excluded.is_active,
			pushed_at = excluded.pushed_at,
			last_crawled_at = excluded.last_crawled_at
	`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}
	defer rollbackOnError(tx, &err)

	for _, t := range tools {
		topics, merr := json.Marshal(t.Topics)
		if merr != nil {
			err = fmt.Errorf("%w topics: %w", ErrFailedToInsert, merr)
			return err
		}

		_, err = tx.Exec(upsertSQL,
			t.ID, t.Name, t.RepoURL, t.Description, string(t.Category), string(t.Kind),
			t.Stars, t.Forks, t.OpenIssues, string(topics), t.Owner,
			t.IsActive, t.HealthOptIn, nullableTime(t.PushedAt), nullableTime(t.CreatedAt), t.LastCrawledAt)
		if err != nil {
			err = fmt.Errorf("%w tool %s: %w", ErrFailedToInsert, t.RepoURL, err)
			return err
		}
	}

	return tx.Commit()
}

// CountTools returns the number of stored tools, optionally filtered to one kind.
func (db *DB) CountTools(kind models.ToolKind) (int, error) {
	var (
		count int
		err   error
	)

	if kind == "" {
		err = db.QueryRow(`SELECT COUNT(*) FROM tools`).Scan(&count)
	} else {
		err = db.QueryRow(`SELECT COUNT(*) FROM tools WHERE tool_kind = ?`, string(kind)).Scan(&count)
	}

	if err != nil {
		return 0, fmt.Errorf("%w tool count: %w", ErrFailedToQuery, err)
	}

	return count, nil
}

const toolColumns = `
	id, name, repo_url, description, category, tool_kind,
	stars, forks, open_issues, topics, owner,
	is_active, health_check_opt_in, pushed_at, created_at, last_crawled_at,
	quality_score, score_breakdown, velocity_7d, stars_7d_ago,
	rank_in_category, score_updated_at
`

// GetTool returns a single tool by id.
func (db *DB) GetTool(id string) (*models.Tool, error) {
	row := db.QueryRow(`SELECT `+toolColumns+` FROM tools WHERE id = ?`, id)

	tool, err := scanTool(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrToolNotFound
		}

		return nil, fmt.Errorf("%w tool: %w", ErrFailedToQuery, err)
	}

	return tool, nil
}

// ListTools returns tool rows matching the filter, ordered by quality score
// descending then stars descending.
func (db *DB) ListTools(filter ToolFilter) ([]models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools`

	var (
		clauses []string
		args    []interface{}
	)

	if filter.Kind != "" {
		clauses = append(clauses, "tool_kind = ?")
		args = append(args, string(filter.Kind))
	}

	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, string(filter.Category))
	}

	if filter.ActiveOnly {
		clauses = append(clauses, "is_active = 1")
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY quality_score DESC, stars DESC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := db.Query(query, args...) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w tools: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var tools []models.Tool

	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("%w tool row: %w", ErrFailedToScan, err)
		}

		tools = append(tools, *tool)
	}

	return tools, rows.Err()
}

// SetToolsActive flips the activation flag for the given tool ids.
func (db *DB) SetToolsActive(ids []string, active bool) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE tools SET is_active = ? WHERE id IN (%s)`, placeholders(len(ids)))

	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, active)

	for _, id := range ids {
		args = append(args, id)
	}

	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("%w is_active: %w", ErrFailedToUpdate, err)
	}

	return nil
}

// ListHealthTargets returns probe targets. With an explicit id subset it
// returns exactly those opted-in rows regardless of activation state;
// otherwise it returns every active opted-in row.
func (db *DB) ListHealthTargets(ids []string) ([]HealthTarget, error) {
	query := `SELECT id, name, repo_url, is_active FROM tools WHERE health_check_opt_in = 1`

	var args []interface{}

	if len(ids) > 0 {
		query += fmt.Sprintf(" AND id IN (%s)", placeholders(len(ids)))

		for _, id := range ids {
			args = append(args, id)
		}
	} else {
		query += " AND is_active = 1"
	}

	rows, err := db.Query(query, args...) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w health targets: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var targets []HealthTarget

	for rows.Next() {
		var t HealthTarget
		if err := rows.Scan(&t.ID, &t.Name, &t.RepoURL, &t.IsActive); err != nil {
			return nil, fmt.Errorf("%w health target: %w", ErrFailedToScan, err)
		}

		targets = append(targets, t)
	}

	return targets, rows.Err()
}

// InsertHealthChecks appends one chunk of probe results to history.
func (db *DB) InsertHealthChecks(checks []*models.HealthCheck) error {
	const insertSQL = `
		INSERT INTO health_checks
			(tool_id, status, response_time_ms, http_status, error_message, checked_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}
	defer rollbackOnError(tx, &err)

	for _, c := range checks {
		_, err = tx.Exec(insertSQL,
			c.ToolID, string(c.Status), nullableInt64(c.ResponseTimeMS),
			nullableInt(c.HTTPStatus), c.ErrorMessage, c.CheckedAt)
		if err != nil {
			err = fmt.Errorf("%w health check: %w", ErrFailedToInsert, err)
			return err
		}
	}

	return tx.Commit()
}

// ListHealthHistory returns the most recent probe results for one tool,
// newest first.
func (db *DB) ListHealthHistory(toolID string, limit int) ([]models.HealthCheck, error) {
	const querySQL = `
		SELECT tool_id, status, response_time_ms, http_status, error_message, checked_at
		FROM health_checks
		WHERE tool_id = ?
		ORDER BY checked_at DESC
		LIMIT ?
	`

	rows, err := db.Query(querySQL, toolID, limit) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w health history: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var history []models.HealthCheck

	for rows.Next() {
		var (
			c        models.HealthCheck
			status   string
			respTime sql.NullInt64
			httpCode sql.NullInt64
			errMsg   sql.NullString
		)

		if err := rows.Scan(&c.ToolID, &status, &respTime, &httpCode, &errMsg, &c.CheckedAt); err != nil {
			return nil, fmt.Errorf("%w health check row: %w", ErrFailedToScan, err)
		}

		c.Status = models.HealthStatus(status)
		c.ErrorMessage = errMsg.String

		if respTime.Valid {
			v := respTime.Int64
			c.ResponseTimeMS = &v
		}

		if httpCode.Valid {
			v := int(httpCode.Int64)
			c.HTTPStatus = &v
		}

		history = append(history, c)
	}

	return history, rows.Err()
}

// ListScoringRows returns the raw metrics for every active tool.
func (db *DB) ListScoringRows() ([]ScoringRow, error) {
	const querySQL = `
		SELECT id, stars, forks, open_issues, stars_7d_ago,
			pushed_at, created_at, score_breakdown
		FROM tools
		WHERE is_active = 1
	`

	rows, err := db.Query(querySQL) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w scoring rows: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var result []ScoringRow

	for rows.Next() {
		var (
			r         ScoringRow
			pushedAt  sql.NullTime
			createdAt sql.NullTime
			breakdown sql.NullString
		)

		if err := rows.Scan(&r.ID, &r.Stars, &r.Forks, &r.OpenIssues, &r.Stars7dAgo,
			&pushedAt, &createdAt, &breakdown); err != nil {
			return nil, fmt.Errorf("%w scoring row: %w", ErrFailedToScan, err)
		}

		if pushedAt.Valid {
			t := pushedAt.Time
			r.PushedAt = &t
		}

		if createdAt.Valid {
			t := createdAt.Time
			r.CreatedAt = &t
		}

		if breakdown.Valid && breakdown.String != "" {
			var b models.ScoreBreakdown
			if err := json.Unmarshal([]byte(breakdown.String), &b); err == nil {
				r.ScoreBreakdown = &b
			}
		}

		result = append(result, r)
	}

	return result, rows.Err()
}

// UpdateToolScores applies one chunk of recomputed score fields.
func (db *DB) UpdateToolScores(updates []ScoreUpdate) error {
	const updateSQL = `
		UPDATE tools SET
			quality_score = ?,
			score_breakdown = ?,
			velocity_7d = ?,
			stars_7d_ago = ?,
			score_updated_at = ?
		WHERE id = ?
	`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}
	defer rollbackOnError(tx, &err)

	for _, u := range updates {
		breakdown, merr := json.Marshal(u.ScoreBreakdown)
		if merr != nil {
			err = fmt.Errorf("%w breakdown: %w", ErrFailedToUpdate, merr)
			return err
		}

		_, err = tx.Exec(updateSQL,
			u.QualityScore, string(breakdown), u.Velocity7d, u.Stars7dAgo, u.ScoreUpdatedAt, u.ID)
		if err != nil {
			err = fmt.Errorf("%w score for %s: %w", ErrFailedToUpdate, u.ID, err)
			return err
		}
	}

	return tx.Commit()
}

// ListRankingRows returns every active tool's (category, kind, score),
// ordered by quality score descending. Order stability is what the rank
// assigner relies on for ties.
func (db *DB) ListRankingRows() ([]RankingRow, error) {
	const querySQL = `
		SELECT id, category, tool_kind, quality_score
		FROM tools
		WHERE is_active = 1
		ORDER BY quality_score DESC, id ASC
	`

	rows, err := db.Query(querySQL) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w ranking rows: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var result []RankingRow

	for rows.Next() {
		var (
			r        RankingRow
			category string
			kind     string
		)

		if err := rows.Scan(&r.ID, &category, &kind, &r.QualityScore); err != nil {
			return nil, fmt.Errorf("%w ranking row: %w", ErrFailedToScan, err)
		}

		r.Category = models.Category(category)
		r.Kind = models.ToolKind(kind)

		result = append(result, r)
	}

	return result, rows.Err()
}

// UpdateToolRanks applies one chunk of rank assignments.
func (db *DB) UpdateToolRanks(ranks []RankUpdate) error {
	const updateSQL = `UPDATE tools SET rank_in_category = ? WHERE id = ?`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}
	defer rollbackOnError(tx, &err)

	for _, r := range ranks {
		if _, err = tx.Exec(updateSQL, r.Rank, r.ID); err != nil {
			err = fmt.Errorf("%w rank for %s: %w", ErrFailedToUpdate, r.ID, err)
			return err
		}
	}

	return tx.Commit()
}

// LatestSnapshotTime returns the newest score_history timestamp across all
// tools, or the zero time when no snapshot exists yet.
func (db *DB) LatestSnapshotTime() (time.Time, error) {
	const querySQL = `
		SELECT recorded_at FROM score_history
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var recorded time.Time

	err := db.QueryRow(querySQL).Scan(&recorded)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}

	if err != nil {
		return time.Time{}, fmt.Errorf("%w latest snapshot: %w", ErrFailedToQuery, err)
	}

	return recorded, nil
}

// ListSnapshotRows returns the score/rank projection of every active tool.
func (db *DB) ListSnapshotRows() ([]SnapshotRow, error) {
	const querySQL = `
		SELECT id, quality_score, COALESCE(rank_in_category, 0)
		FROM tools
		WHERE is_active = 1
	`

	rows, err := db.Query(querySQL) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w snapshot rows: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var result []SnapshotRow

	for rows.Next() {
		var r SnapshotRow
		if err := rows.Scan(&r.ID, &r.QualityScore, &r.RankInCategory); err != nil {
			return nil, fmt.Errorf("%w snapshot row: %w", ErrFailedToScan, err)
		}

		result = append(result, r)
	}

	return result, rows.Err()
}

// InsertScoreSnapshots appends one chunk of snapshot rows to score history.
func (db *DB) InsertScoreSnapshots(snapshots []*models.ScoreSnapshot) error {
	const insertSQL = `
		INSERT INTO score_history (tool_id, quality_score, rank_in_category, recorded_at)
		VALUES (?, ?, ?, ?)
	`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}
	defer rollbackOnError(tx, &err)

	for _, s := range snapshots {
		if _, err = tx.Exec(insertSQL, s.ToolID, s.QualityScore, s.RankInCategory, s.RecordedAt); err != nil {
			err = fmt.Errorf("%w snapshot: %w", ErrFailedToInsert, err)
			return err
		}
	}

	return tx.Commit()
}

func scanTool(row interface{ Scan(...interface{}) error }) (*models.Tool, error) {
	var (
		t              models.Tool
		description    sql.NullString
		category       string
		kind           string
		topics         string
		owner          sql.NullString
		pushedAt       sql.NullTime
		createdAt      sql.NullTime
		breakdown      sql.NullString
		rank           sql.NullInt64
		scoreUpdatedAt sql.NullTime
	)

	err := row.Scan(
		&t.ID, &t.Name, &t.RepoURL, &description, &category, &kind,
		&t.Stars, &t.Forks, &t.OpenIssues, &topics, &owner,
		&t.IsActive, &t.HealthOptIn, &pushedAt, &createdAt, &t.LastCrawledAt,
		&t.QualityScore, &breakdown, &t.Velocity7d, &t.Stars7dAgo,
		&rank, &scoreUpdatedAt)
	if err != nil {
		return nil, err
	}

	t.Description = description.String
	t.Category = models.Category(category)
	t.Kind = models.ToolKind(kind)
	t.Owner = owner.String

	if topics != "" {
		if err := json.Unmarshal([]byte(topics), &t.Topics); err != nil {
			t.Topics = nil
		}
	}

	if pushedAt.Valid {
		v := pushedAt.Time
		t.PushedAt = &v
	}

	if createdAt.Valid {
		v := createdAt.Time
		t.CreatedAt = &v
	}

	if breakdown.Valid && breakdown.String != "" {
		var b models.ScoreBreakdown
		if err := json.Unmarshal([]byte(breakdown.String), &b); err == nil {
			t.ScoreBreakdown = &b
		}
	}

	if rank.Valid {
		t.RankInCategory = int(rank.Int64)
	}

	if scoreUpdatedAt.Valid {
		v := scoreUpdatedAt.Time
		t.ScoreUpdatedAt = &v
	}

	return &t, nil
}

func rollbackOnError(tx *sql.Tx, err *error) {
	if *err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("Error rolling back transaction: %v", rbErr)
		}
	}
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("failed to close rows: %v", err)
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}

	return *t
}

func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}

	return *v
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}

	return *v
}
