package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/waiola-dashboard/internal/config"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

const schemaVersion = "site-average.v1"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// SitePublisher writes per-site averages to a Kafka topic, one message per
// site keyed by site name. It implements pipeline.SitePublisher.
type SitePublisher struct {
	writer messageWriter
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewSitePublisher creates a Kafka producer for the configured site topic.
func NewSitePublisher(cfg *config.Config, logger *slog.Logger) *SitePublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSiteTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &SitePublisher{writer: w, clock: clockwork.NewRealClock(), logger: logger}
}

// PublishSites serializes every site and writes them in a single batch.
func (p *SitePublisher) PublishSites(ctx context.Context, sites []domain.SiteAverage) error {
	if len(sites) == 0 {
		return nil
	}
	now := p.clock.Now().UTC()
	msgs := make([]kafkago.Message, len(sites))
	for i := range sites {
		msg, err := serializeToMessage(sites[i], now)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write site averages: %w", err)
	}
	p.logger.Info("site averages published", "count", len(msgs))
	return nil
}

func (p *SitePublisher) Close() error {
	return p.writer.Close()
}

type siteMessage struct {
	Site        string              `json:"site"`
	Lat         *float64            `json:"lat"`
	Lon         *float64            `json:"lon"`
	Count       int                 `json:"count"`
	PlaceName   string              `json:"place_name,omitempty"`
	Averages    map[string]*float64 `json:"averages"`
	PublishedAt time.Time           `json:"published_at"`
}

// serializeToMessage marshals a SiteAverage into a Kafka message. Missing
// averages are encoded as null.
func serializeToMessage(site domain.SiteAverage, publishedAt time.Time) (kafkago.Message, error) {
	m := siteMessage{
		Site:        site.Site,
		Lat:         optional(site.Position.Lat),
		Lon:         optional(site.Position.Long),
		Count:       site.Count,
		PlaceName:   site.PlaceName,
		Averages:    make(map[string]*float64, domain.NumFields),
		PublishedAt: publishedAt,
	}
	for _, f := range domain.Fields() {
		m.Averages[f.Column()] = optional(site.Values[f])
	}

	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize site %q: %w", site.Site, err)
	}
	return kafkago.Message{
		Key:   []byte(site.Site),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "schema", Value: []byte(schemaVersion)},
			{Key: "published_at", Value: []byte(publishedAt.Format(time.RFC3339))},
		},
	}, nil
}

func optional(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
