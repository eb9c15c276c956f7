package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/dataset"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
	"github.com/couchcryptid/waiola-dashboard/internal/observability"
)

// Source loads the cleaned dataset.
type Source interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// SitePublisher exports per-site averages to a downstream system.
type SitePublisher interface {
	PublishSites(ctx context.Context, sites []domain.SiteAverage) error
}

// FileSource loads a dataset from a CSV, TSV, or XLSX file.
type FileSource struct {
	Path    string
	Options dataset.ReadOptions
}

func (s FileSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataset.Load(s.Path, s.Options)
}

const (
	publishAttempts   = 3
	initialBackoff    = 200 * time.Millisecond
	maxPublishBackoff = 2 * time.Second
)

// Pipeline performs the one-time startup sequence: load, enrich, publish.
// The geocoder and publisher are optional.
type Pipeline struct {
	source    Source
	geocoder  domain.Geocoder
	publisher SitePublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	data      atomic.Pointer[dataset.Dataset]
}

// New creates a Pipeline. Pass nil for a geocoder or publisher to skip that stage.
func New(src Source, geocoder domain.Geocoder, publisher SitePublisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:    src,
		geocoder:  geocoder,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the dataset has been loaded, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// Dataset returns the loaded dataset, or nil before Run has completed.
func (p *Pipeline) Dataset() *dataset.Dataset {
	return p.data.Load()
}

// Run executes the startup sequence once. A load failure is returned; a
// publish failure is logged and the dataset is still served.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("pipeline started")

	ds, err := p.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	p.recordDataset(ds)

	if p.geocoder != nil {
		p.metrics.GeocodeEnabled.Set(1)
		ds = ds.Enrich(ctx, p.geocoder, p.logger)
	}

	if p.publisher != nil {
		p.publish(ctx, ds.Averages())
	}

	p.data.Store(ds)
	p.ready.Store(true)
	p.logger.Info("pipeline complete", "duration", time.Since(start))
	return nil
}

func (p *Pipeline) recordDataset(ds *dataset.Dataset) {
	st := ds.Stats
	p.metrics.DatasetRecords.Set(float64(len(ds.Records())))
	p.metrics.DatasetSites.Set(float64(len(ds.Averages())))
	p.metrics.ImputedValues.Add(float64(st.Imputed))
	p.metrics.UnrepairedValues.Set(float64(st.Unrepaired))

	p.logger.Info("dataset loaded",
		"source", ds.Source,
		"records", len(ds.Records()),
		"sites", len(ds.Averages()),
		"missing", st.Missing,
		"imputed", st.Imputed,
		"unrepaired", st.Unrepaired,
	)
}

// publish writes the site averages, retrying with exponential backoff.
func (p *Pipeline) publish(ctx context.Context, sites []domain.SiteAverage) {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := p.publisher.PublishSites(ctx, sites)
		if err == nil {
			p.metrics.SitesPublished.Add(float64(len(sites)))
			return
		}
		p.metrics.PublishFailures.Inc()
		if attempt == publishAttempts || ctx.Err() != nil {
			p.logger.Error("publish site averages failed", "error", err, "attempts", attempt)
			return
		}
		p.logger.Warn("publish site averages failed, retrying", "error", err, "attempt", attempt, "backoff", backoff)
		if !sleepWithContext(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff, maxPublishBackoff)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
