package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS coverage_comparisons (
	comparison_id TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	source        TEXT NOT NULL DEFAULT '',
	points        TEXT NOT NULL DEFAULT '[]',
	revision      INTEGER NOT NULL DEFAULT 1,
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_coverage_comparisons_source ON coverage_comparisons(source);
CREATE INDEX IF NOT EXISTS idx_coverage_comparisons_created_at ON coverage_comparisons(created_at);`

// SQLiteStore persists comparisons in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateComparison(ctx context.Context, c *Comparison) error {
	pointsJSON, err := marshalPoints(c.Points)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	id := uuid.New()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO coverage_comparisons (comparison_id, name, source, points, revision, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)`,
		id.String(), c.Name, c.Source, string(pointsJSON), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert comparison: %w", err)
	}
	c.ID = id
	c.Revision = 1
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) GetComparison(ctx context.Context, id uuid.UUID) (*Comparison, error) {
	c, err := scanSQLiteComparison(s.db.QueryRowContext(ctx, `
		SELECT `+comparisonColumns+`
		FROM coverage_comparisons WHERE comparison_id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get comparison %s: %w", id, err)
	}
	return c, nil
}

func (s *SQLiteStore) ListComparisons(ctx context.Context, filter ComparisonFilter) ([]*Comparison, error) {
	query := `SELECT ` + comparisonColumns + ` FROM coverage_comparisons WHERE 1=1`
	args := []interface{}{}
	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	query += " ORDER BY created_at DESC, comparison_id"
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()

	var out []*Comparison
	for rows.Next() {
		c, err := scanSQLiteComparison(rows)
		if err != nil {
			return nil, fmt.Errorf("list comparisons: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) UpdatePoints(ctx context.Context, id uuid.UUID, points []analysis.Point) (*Comparison, error) {
	pointsJSON, err := marshalPoints(points)
	if err != nil {
		return nil, err
	}

	// Update and read-back run in one transaction.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE coverage_comparisons
		SET points = ?, revision = revision + 1, updated_at = ?
		WHERE comparison_id = ?`,
		string(pointsJSON), time.Now().UTC(), id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("update points: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("update points: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}

	c, err := scanSQLiteComparison(tx.QueryRowContext(ctx, `
		SELECT `+comparisonColumns+`
		FROM coverage_comparisons WHERE comparison_id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read updated comparison: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) DeleteComparison(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM coverage_comparisons WHERE comparison_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete comparison: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comparison: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(json_array_length(points)), 0)
		FROM coverage_comparisons`,
	).Scan(&stats.TotalComparisons, &stats.TotalPoints)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	stats.AvgPoints = avg(stats.TotalPoints, stats.TotalComparisons)
	return stats, nil
}

func scanSQLiteComparison(row rowScanner) (*Comparison, error) {
	c := &Comparison{}
	var id, pointsJSON string
	if err := row.Scan(&id, &c.Name, &c.Source, &pointsJSON, &c.Revision, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("decode comparison id: %w", err)
	}
	points, err := unmarshalPoints([]byte(pointsJSON))
	if err != nil {
		return nil, err
	}
	c.ID = parsed
	c.Points = points
	return c, nil
}
