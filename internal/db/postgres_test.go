package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NaiduBagana/cam2cart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutLoadAttempt(t *testing.T) {
	mockdb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockdb.Close()

	manager := Manager{Db: mockdb}
	startedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	attempt := models.LoadAttempt{
		AttemptID:     "6f1c2a52-8a5e-4f0a-9d1e-2b8c1c0f7a10",
		Source:        models.SourceFallback,
		FailureKind:   "status",
		FailureReason: "unexpected status code: 500",
		OrderID:       "ORD-2024-001",
		Username:      "saikrishna",
		ItemCount:     3,
		Total:         "179.94",
		Committed:     true,
		StartedAt:     startedAt,
		DurationMs:    12,
	}

	mock.ExpectExec(`INSERT INTO load_attempts \(attempt_id,source,failure_kind,failure_reason,order_id,username,item_count,total,committed,started_at,duration_ms\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9,\$10,\$11\)`).
		WithArgs(attempt.AttemptID, "fallback", "status", attempt.FailureReason, "ORD-2024-001", "saikrishna", 3, "179.94", true, startedAt, int64(12)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, manager.PutLoadAttempt(context.Background(), attempt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutLoadAttempt_Error(t *testing.T) {
	mockdb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockdb.Close()

	manager := Manager{Db: mockdb}

	mock.ExpectExec(`INSERT INTO load_attempts`).
		WillReturnError(errors.New("connection reset"))

	err = manager.PutLoadAttempt(context.Background(), models.LoadAttempt{Source: models.SourceRemote})
	assert.ErrorContains(t, err, "failed to insert load attempt")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLoadAttempts(t *testing.T) {
	mockdb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockdb.Close()

	manager := Manager{Db: mockdb}
	startedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT attempt_id, source, failure_kind, failure_reason, order_id, username, item_count, total, committed, started_at, duration_ms FROM load_attempts ORDER BY started_at DESC LIMIT 5`).
		WillReturnRows(sqlmock.NewRows(attemptColumns).
			AddRow("a-2", "remote", "", "", "ORD-9", "bob", 1, "13.50", true, startedAt.Add(time.Minute), 30).
			AddRow("a-1", "fallback", "transport", "failed to send request: refused", "ORD-2024-001", "saikrishna", 3, "179.94", false, startedAt, 5))

	attempts, err := manager.GetLoadAttempts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, "a-2", attempts[0].AttemptID)
	assert.Equal(t, models.SourceRemote, attempts[0].Source)
	assert.Equal(t, "13.50", attempts[0].Total)
	assert.True(t, attempts[0].Committed)

	assert.Equal(t, models.SourceFallback, attempts[1].Source)
	assert.Equal(t, "transport", attempts[1].FailureKind)
	assert.False(t, attempts[1].Committed)
	assert.Equal(t, int64(5), attempts[1].DurationMs)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLoadAttempts_DefaultLimit(t *testing.T) {
	mockdb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockdb.Close()

	manager := Manager{Db: mockdb}

	mock.ExpectQuery(`FROM load_attempts ORDER BY started_at DESC LIMIT 20`).
		WillReturnRows(sqlmock.NewRows(attemptColumns))

	attempts, err := manager.GetLoadAttempts(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, attempts)
	assert.NotNil(t, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNopJournal(t *testing.T) {
	var j Journal = NopJournal{}

	assert.NoError(t, j.PutLoadAttempt(context.Background(), models.LoadAttempt{}))
	attempts, err := j.GetLoadAttempts(context.Background(), 10)
	assert.NoError(t, err)
	assert.Empty(t, attempts)
	assert.NoError(t, j.Close())
}
