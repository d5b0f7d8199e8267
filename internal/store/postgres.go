package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS coverage_comparisons (
	comparison_id UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	source        TEXT NOT NULL DEFAULT '',
	points        JSONB NOT NULL DEFAULT '[]',
	revision      INTEGER NOT NULL DEFAULT 1,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_coverage_comparisons_source ON coverage_comparisons(source);
CREATE INDEX IF NOT EXISTS idx_coverage_comparisons_created_at ON coverage_comparisons(created_at);`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const comparisonColumns = `comparison_id, name, source, points, revision, created_at, updated_at`

func (s *PostgresStore) CreateComparison(ctx context.Context, c *Comparison) error {
	pointsJSON, err := marshalPoints(c.Points)
	if err != nil {
		return err
	}
	c.ID = uuid.New()
	err = s.pool.QueryRow(ctx, `
		INSERT INTO coverage_comparisons (comparison_id, name, source, points)
		VALUES ($1, $2, $3, $4)
		RETURNING revision, created_at, updated_at`,
		c.ID, c.Name, c.Source, pointsJSON,
	).Scan(&c.Revision, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comparison: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetComparison(ctx context.Context, id uuid.UUID) (*Comparison, error) {
	c, err := scanComparison(s.pool.QueryRow(ctx, `
		SELECT `+comparisonColumns+`
		FROM coverage_comparisons WHERE comparison_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get comparison %s: %w", id, err)
	}
	return c, nil
}

func (s *PostgresStore) ListComparisons(ctx context.Context, filter ComparisonFilter) ([]*Comparison, error) {
	query := `SELECT ` + comparisonColumns + ` FROM coverage_comparisons WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Source != "" {
		n++
		query += fmt.Sprintf(" AND source = $%d", n)
		args = append(args, filter.Source)
	}
	query += " ORDER BY created_at DESC, comparison_id"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()

	var out []*Comparison
	for rows.Next() {
		c, err := scanComparison(rows)
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

func (s *PostgresStore) UpdatePoints(ctx context.Context, id uuid.UUID, points []analysis.Point) (*Comparison, error) {
	pointsJSON, err := marshalPoints(points)
	if err != nil {
		return nil, err
	}
	c, err := scanComparison(s.pool.QueryRow(ctx, `
		UPDATE coverage_comparisons
		SET points = $2, revision = revision + 1, updated_at = now()
		WHERE comparison_id = $1
		RETURNING `+comparisonColumns, id, pointsJSON))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update points: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) DeleteComparison(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM coverage_comparisons WHERE comparison_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comparison: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(jsonb_array_length(points)), 0)
		FROM coverage_comparisons`,
	).Scan(&stats.TotalComparisons, &stats.TotalPoints)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	stats.AvgPoints = avg(stats.TotalPoints, stats.TotalComparisons)
	return stats, nil
}

// rowScanner is satisfied by pgx.Row, pgx.Rows and *sql.Row(s).
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComparison(row rowScanner) (*Comparison, error) {
	c := &Comparison{}
	var pointsJSON []byte
	if err := row.Scan(&c.ID, &c.Name, &c.Source, &pointsJSON, &c.Revision, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	points, err := unmarshalPoints(pointsJSON)
	if err != nil {
		return nil, err
	}
	c.Points = points
	return c, nil
}

func marshalPoints(points []analysis.Point) ([]byte, error) {
	if points == nil {
		points = []analysis.Point{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("encode points: %w", err)
	}
	return data, nil
}

func unmarshalPoints(data []byte) ([]analysis.Point, error) {
	points := []analysis.Point{}
	if len(data) == 0 {
		return points, nil
	}
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("decode points: %w", err)
	}
	return points, nil
}
