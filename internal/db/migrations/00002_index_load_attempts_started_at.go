package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpLoadAttemptsStartedAtIndex, DownLoadAttemptsStartedAtIndex)
}

func UpLoadAttemptsStartedAtIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE INDEX load_attempts_started_at_idx ON load_attempts (started_at DESC);`)
	return err
}

func DownLoadAttemptsStartedAtIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP INDEX load_attempts_started_at_idx;")
	return err
}
