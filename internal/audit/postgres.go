package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	"robo-advisor-workers/internal/models"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Repository stores assessment log entries as JSONB rows keyed by session id.
type Repository struct {
	db    *sql.DB
	table string
}

func NewRepository(db *sql.DB, table string) (*Repository, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid audit table name %q", table)
	}
	return &Repository{db: db, table: table}, nil
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			session_id    TEXT PRIMARY KEY,
			logged_at     TIMESTAMPTZ NOT NULL,
			risk_category TEXT NOT NULL DEFAULT '',
			completed     BOOLEAN NOT NULL DEFAULT FALSE,
			payload       JSONB NOT NULL
		)`, r.table))
	if err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	return nil
}

// Insert is idempotent per session id.
func (r *Repository) Insert(ctx context.Context, entry models.AssessmentLogEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}

	_, err = r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (session_id, logged_at, risk_category, completed, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id) DO NOTHING`, r.table),
		entry.SessionID, entry.Timestamp, entry.AssessmentSummary.FinalRiskCategory, entry.Completed, payload)
	if err != nil {
		return fmt.Errorf("insert log entry %s: %w", entry.SessionID, err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.AssessmentLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT payload FROM %s
		ORDER BY logged_at DESC, session_id
		LIMIT $1 OFFSET $2`, r.table), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	entries := []models.AssessmentLogEntry{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		var entry models.AssessmentLogEntry
		if err := json.Unmarshal(payload, &entry); err != nil {
			return nil, fmt.Errorf("decode log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log entries: %w", err)
	}
	return entries, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)).Scan(&total); err != nil {
		return 0, fmt.Errorf("count log entries: %w", err)
	}
	return total, nil
}
