package refresh

import (
	"context"
	"time"

	"github.com/NaiduBagana/cam2cart/internal/db"
	"github.com/NaiduBagana/cam2cart/internal/loader"
	"github.com/NaiduBagana/cam2cart/internal/metrics"
	"github.com/NaiduBagana/cam2cart/internal/receipt"
	"github.com/NaiduBagana/cam2cart/internal/state"
	"github.com/NaiduBagana/cam2cart/models"
	"go.uber.org/zap"
)

type orderLoader interface {
	Load(ctx context.Context) loader.Result
}

type Manager struct {
	Loader  orderLoader
	Store   *state.Store
	Journal db.Journal
	Metrics *metrics.Registry
	Logger  *zap.SugaredLogger
}

func NewManager(l orderLoader, store *state.Store, journal db.Journal, m *metrics.Registry, logger *zap.SugaredLogger) *Manager {
	if journal == nil {
		journal = db.NopJournal{}
	}
	return &Manager{
		Loader:  l,
		Store:   store,
		Journal: journal,
		Metrics: m,
		Logger:  logger,
	}
}

// Refresh runs one load to completion and offers its result to the store.
// It returns the view built from this load and whether it is now displayed.
func (m *Manager) Refresh(ctx context.Context) (state.View, bool) {
	generation := m.Store.Begin()
	res := m.Loader.Load(ctx)

	view := state.View{
		Receipt:    receipt.Build(res.Order, res.Source),
		Source:     res.Source,
		Generation: generation,
		LoadedAt:   res.StartedAt.Add(res.Duration),
	}
	if res.Failure != nil {
		view.FailureReason = res.Failure.Error()
	}

	committed := m.Store.Commit(generation, view)
	if !committed {
		m.Logger.Infow("load superseded by a later refresh",
			"attempt", res.Attempt.String(),
			"generation", generation,
		)
	}

	m.observe(res, generation, committed)
	m.journal(ctx, res, view, committed)

	return view, committed
}

func (m *Manager) observe(res loader.Result, generation uint64, committed bool) {
	if m.Metrics == nil {
		return
	}
	kind := ""
	if res.Failure != nil {
		kind = string(res.Failure.Kind)
	}
	m.Metrics.ObserveLoad(res.Source, kind, res.Duration.Seconds())
	if committed {
		m.Metrics.Generation.Set(float64(generation))
	} else {
		m.Metrics.Superseded.Inc()
	}
}

func (m *Manager) journal(ctx context.Context, res loader.Result, view state.View, committed bool) {
	attempt := models.LoadAttempt{
		AttemptID:  res.Attempt.String(),
		Source:     res.Source,
		OrderID:    res.Order.OrderID,
		Username:   res.Order.Username,
		ItemCount:  len(res.Order.Items),
		Total:      view.Receipt.Total,
		Committed:  committed,
		StartedAt:  res.StartedAt.UTC(),
		DurationMs: res.Duration.Milliseconds(),
	}
	if res.Failure != nil {
		attempt.FailureKind = string(res.Failure.Kind)
		attempt.FailureReason = res.Failure.Error()
	}

	// The journal must not hold up or alter a load that already finished.
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := m.Journal.PutLoadAttempt(jctx, attempt); err != nil {
		m.Logger.Warnw("failed to journal load attempt", "attempt", attempt.AttemptID, "error", err)
		if m.Metrics != nil {
			m.Metrics.JournalErrs.Inc()
		}
	}
}
