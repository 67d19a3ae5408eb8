package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpLoadAttemptsTable, DownLoadAttemptsTable)
}

func UpLoadAttemptsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE load_attempts
(
    attempt_id UUID PRIMARY KEY,
    source VARCHAR(16) NOT NULL,
    failure_kind VARCHAR(16) NOT NULL DEFAULT '',
    failure_reason TEXT NOT NULL DEFAULT '',
    order_id VARCHAR(255) NOT NULL DEFAULT '',
    username VARCHAR(255) NOT NULL DEFAULT '',
    item_count INT NOT NULL DEFAULT 0,
    total VARCHAR(64) NOT NULL,
    committed BOOLEAN NOT NULL DEFAULT FALSE,
    started_at TIMESTAMP NOT NULL,
    duration_ms BIGINT NOT NULL DEFAULT 0
);`)
	return err
}

func DownLoadAttemptsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE load_attempts;")
	return err
}
