package db

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/NaiduBagana/cam2cart/config"
	_ "github.com/NaiduBagana/cam2cart/internal/db/migrations"
	"github.com/NaiduBagana/cam2cart/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Go migrations register themselves on import; goose only needs an existing
// directory to scan.
const migrationsDir = "."

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var attemptColumns = []string{
	"attempt_id",
	"source",
	"failure_kind",
	"failure_reason",
	"order_id",
	"username",
	"item_count",
	"total",
	"committed",
	"started_at",
	"duration_ms",
}

type Manager struct {
	Db *sql.DB
}

func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set migrations dialect: %w", err)
	}
	if err = goose.UpContext(ctx, db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{Db: db}, nil
}

func (m *Manager) PutLoadAttempt(ctx context.Context, a models.LoadAttempt) error {
	query, args, err := psql.Insert("load_attempts").
		Columns(attemptColumns...).
		Values(
			a.AttemptID,
			a.Source.String(),
			a.FailureKind,
			a.FailureReason,
			a.OrderID,
			a.Username,
			a.ItemCount,
			a.Total,
			a.Committed,
			a.StartedAt,
			a.DurationMs,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err = m.Db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert load attempt: %w", err)
	}

	return nil
}

func (m *Manager) GetLoadAttempts(ctx context.Context, limit int) ([]models.LoadAttempt, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := psql.Select(attemptColumns...).
		From("load_attempts").
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := m.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get load attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]models.LoadAttempt, 0, limit)
	for rows.Next() {
		var a models.LoadAttempt
		var source string
		if err = rows.Scan(
			&a.AttemptID,
			&source,
			&a.FailureKind,
			&a.FailureReason,
			&a.OrderID,
			&a.Username,
			&a.ItemCount,
			&a.Total,
			&a.Committed,
			&a.StartedAt,
			&a.DurationMs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan load attempt: %w", err)
		}
		a.Source = models.Source(source)
		attempts = append(attempts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read load attempts: %w", err)
	}

	return attempts, nil
}

func (m *Manager) Close() error {
	return m.Db.Close()
}
