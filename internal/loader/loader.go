package loader

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/NaiduBagana/cam2cart/config"
	"github.com/NaiduBagana/cam2cart/models"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Result is the outcome of one load attempt. Order is always usable: it is
// either the backend's record or the demo record.
type Result struct {
	Attempt   uuid.UUID
	Order     models.OrderRecord
	Source    models.Source
	Failure   *LoadFailure
	StartedAt time.Time
	Duration  time.Duration
}

func (r Result) UsingDemoData() bool {
	return r.Source == models.SourceFallback
}

type Loader struct {
	URL    string
	Client *http.Client
	Logger *zap.SugaredLogger
}

func NewLoader(cfg *config.Config, logger *zap.SugaredLogger) *Loader {
	return &Loader{
		URL:    cfg.OrdersURL,
		Client: &http.Client{Timeout: cfg.OrdersRequestTimeout},
		Logger: logger,
	}
}

// Load fetches the current order. Every failure is absorbed into the
// fallback record; nothing is cached between calls.
func (l *Loader) Load(ctx context.Context) Result {
	result := Result{
		Attempt:   uuid.New(),
		StartedAt: time.Now(),
	}

	ctx, span := otel.Tracer("cam2cart/loader").Start(ctx, "GET orders",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPMethodKey.String(http.MethodGet),
			semconv.HTTPURLKey.String(l.URL),
		),
	)
	defer span.End()

	order, failure := l.getOrder(ctx)
	result.Duration = time.Since(result.StartedAt)

	if failure != nil {
		l.Logger.Warnw("error fetching order, using demo data",
			"attempt", result.Attempt.String(),
			"url", l.URL,
			"kind", failure.Kind,
			"error", failure,
		)
		span.RecordError(failure)
		span.SetStatus(codes.Error, string(failure.Kind))

		result.Order = models.DemoOrder()
		result.Source = models.SourceFallback
		result.Failure = failure
		return result
	}

	l.Logger.Debugw("order fetched",
		"attempt", result.Attempt.String(),
		"order", order.OrderID,
		"items", len(order.Items),
	)
	result.Order = *order
	result.Source = models.SourceRemote
	return result
}

func (l *Loader) getOrder(ctx context.Context) (*models.OrderRecord, *LoadFailure) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, &LoadFailure{Kind: FailureTransport, Err: err}
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadFailure{Kind: FailureTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &LoadFailure{Kind: FailureStatus, StatusCode: resp.StatusCode}
	}

	order, err := decodeOrder(resp.Body)
	if err != nil {
		return nil, &LoadFailure{Kind: FailureDecode, StatusCode: resp.StatusCode, Err: err}
	}

	return order, nil
}

func decodeOrder(body io.Reader) (*models.OrderRecord, error) {
	dec := json.NewDecoder(body)

	var order *models.OrderRecord
	if err := dec.Decode(&order); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errUnexpectedEnd
		}
		return nil, err
	}
	if order == nil {
		return nil, errNullDocument
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return order, nil
}
