package db

import (
	"context"

	"github.com/NaiduBagana/cam2cart/models"
)

// Journal records load attempts for diagnostics. It is never read back into
// the displayed state.
type Journal interface {
	PutLoadAttempt(ctx context.Context, attempt models.LoadAttempt) error
	GetLoadAttempts(ctx context.Context, limit int) ([]models.LoadAttempt, error)
	Close() error
}

// NopJournal is used when no database is configured.
type NopJournal struct{}

func (NopJournal) PutLoadAttempt(context.Context, models.LoadAttempt) error {
	return nil
}

func (NopJournal) GetLoadAttempts(context.Context, int) ([]models.LoadAttempt, error) {
	return []models.LoadAttempt{}, nil
}

func (NopJournal) Close() error {
	return nil
}
