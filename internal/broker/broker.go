package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
	"github.com/MikeSquared-Agency/Coverage/internal/config"
	"github.com/MikeSquared-Agency/Coverage/internal/hermes"
	"github.com/MikeSquared-Agency/Coverage/internal/metrics"
	"github.com/MikeSquared-Agency/Coverage/internal/store"
)

// ErrNotFound is returned for operations on unknown comparisons.
var ErrNotFound = store.ErrNotFound

// Broker recomputes analyses whenever a comparison's points change, keeps
// comparisons in the store and announces results on hermes.
type Broker struct {
	store    store.Store
	hermes   hermes.Client
	analyzer *analysis.Analyzer
	cfg      *config.Config
	logger   *slog.Logger

	cron     *cron.Cron
	stopOnce sync.Once
}

func New(s store.Store, h hermes.Client, cfg *config.Config, logger *slog.Logger) *Broker {
	return &Broker{
		store:    s,
		hermes:   h,
		analyzer: analysis.NewAnalyzer(cfg.Analysis.Decimals, cfg.Analysis.MaxPoints, logger),
		cfg:      cfg,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start schedules periodic stats publishing when a schedule is configured.
func (b *Broker) Start(ctx context.Context) error {
	if b.cfg.Stats.Schedule == "" {
		return nil
	}
	_, err := b.cron.AddFunc(b.cfg.Stats.Schedule, func() { b.PublishStats(ctx) })
	if err != nil {
		return fmt.Errorf("schedule stats %q: %w", b.cfg.Stats.Schedule, err)
	}
	b.cron.Start()
	return nil
}

// Stop waits for a running stats job to finish.
func (b *Broker) Stop() {
	b.stopOnce.Do(func() {
		<-b.cron.Stop().Done()
	})
}

// Decimals returns the rounding precision used for analyses.
func (b *Broker) Decimals() int { return b.analyzer.Decimals() }

// Analyze validates points and computes a fresh analysis.
func (b *Broker) Analyze(points []analysis.Point) (*analysis.Result, error) {
	start := time.Now()
	res, err := b.analyzer.Analyze(points)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.AnalysisPoints.Observe(float64(len(points)))
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	metrics.FrontierSize.Observe(float64(len(res.Frontier)))
	return res, nil
}

// CreateComparison validates and stores a new comparison, then publishes its
// creation and first analysis.
func (b *Broker) CreateComparison(ctx context.Context, name, source string, points []analysis.Point) (*store.Comparison, *analysis.Result, error) {
	res, err := b.Analyze(points)
	if err != nil {
		return nil, nil, err
	}
	c := &store.Comparison{Name: name, Source: source, Points: points}
	if err := b.store.CreateComparison(ctx, c); err != nil {
		return nil, nil, fmt.Errorf("create comparison: %w", err)
	}
	b.logger.Info("comparison created", "comparison_id", c.ID, "name", c.Name, "points", len(points), "source", source)

	id := c.ID.String()
	b.publish("created", hermes.SubjectComparisonCreated(id), hermes.ComparisonCreatedEvent{
		ComparisonID: id,
		Name:         c.Name,
		Source:       c.Source,
		Points:       len(c.Points),
	})
	b.publishAnalyzed(c, res)
	return c, res, nil
}

// UpdatePoints replaces a comparison's points and recomputes its analysis.
func (b *Broker) UpdatePoints(ctx context.Context, id uuid.UUID, points []analysis.Point) (*store.Comparison, *analysis.Result, error) {
	res, err := b.Analyze(points)
	if err != nil {
		return nil, nil, err
	}
	c, err := b.store.UpdatePoints(ctx, id, points)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("update points: %w", err)
	}
	b.logger.Info("comparison updated", "comparison_id", c.ID, "revision", c.Revision, "points", len(points))
	b.publishAnalyzed(c, res)
	return c, res, nil
}

// Comparison loads a comparison and recomputes its analysis.
func (b *Broker) Comparison(ctx context.Context, id uuid.UUID) (*store.Comparison, *analysis.Result, error) {
	c, err := b.store.GetComparison(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get comparison: %w", err)
	}
	if c == nil {
		return nil, nil, ErrNotFound
	}
	res, err := b.Analyze(c.Points)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze stored comparison %s: %w", id, err)
	}
	return c, res, nil
}

// DeleteComparison removes a comparison and publishes the deletion.
func (b *Broker) DeleteComparison(ctx context.Context, id uuid.UUID) error {
	if err := b.store.DeleteComparison(ctx, id); err != nil {
		return err
	}
	b.logger.Info("comparison deleted", "comparison_id", id)
	b.publish("deleted", hermes.SubjectComparisonDeleted(id.String()), hermes.ComparisonDeletedEvent{ComparisonID: id.String()})
	return nil
}

// PublishStats records store totals in metrics and on hermes.
func (b *Broker) PublishStats(ctx context.Context) {
	stats, err := b.store.GetStats(ctx)
	if err != nil {
		b.logger.Error("failed to get stats", "error", err)
		return
	}
	metrics.Comparisons.Set(float64(stats.TotalComparisons))
	b.publish("stats", hermes.SubjectStats, hermes.StatsEvent{
		Comparisons: stats.TotalComparisons,
		Points:      stats.TotalPoints,
		AvgPoints:   stats.AvgPoints,
		Timestamp:   time.Now().UTC(),
	})
}

// SetupSubscriptions creates comparisons from hermes requests.
func (b *Broker) SetupSubscriptions() {
	if b.hermes == nil {
		return
	}

	_ = b.hermes.Subscribe(hermes.SubjectComparisonRequest, func(_ string, data []byte) {
		var req hermes.ComparisonRequestEvent
		if err := json.Unmarshal(data, &req); err != nil {
			b.logger.Warn("invalid comparison request event", "error", err)
			return
		}
		if req.Name == "" {
			req.Name = "untitled"
		}
		if req.Source == "" {
			req.Source = "hermes"
		}
		if _, _, err := b.CreateComparison(context.Background(), req.Name, req.Source, req.Points); err != nil {
			b.logger.Warn("failed to create comparison from request", "name", req.Name, "error", err)
		}
	})
}

func (b *Broker) publishAnalyzed(c *store.Comparison, res *analysis.Result) {
	id := c.ID.String()
	b.publish("analyzed", hermes.SubjectComparisonAnalyzed(id), hermes.ComparisonAnalyzedEvent{
		ComparisonID: id,
		Revision:     c.Revision,
		Result:       res,
	})
}

func (b *Broker) publish(kind, subject string, evt interface{}) {
	if b.hermes == nil {
		return
	}
	if err := b.hermes.Publish(subject, evt); err != nil {
		metrics.EventsPublished.WithLabelValues(kind, "error").Inc()
		b.logger.Warn("failed to publish event", "subject", subject, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(kind, "ok").Inc()
}
