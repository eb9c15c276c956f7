//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/waiola-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/waiola-dashboard/internal/config"
	"github.com/couchcryptid/waiola-dashboard/internal/observability"
	"github.com/couchcryptid/waiola-dashboard/internal/pipeline"
)

const testSiteTopic = "test-site-averages"

const sampleCSV = `SiteName,Date,Lat,Long,Temp,Salinity,DO,DO_sat,pH,Turbidity,TotalN,TotalP,Entero
Kona Beach,2023-01-10,19.64,-155.99,25.1,34.2,6.5,98,7.1,0.8,120,10,5
Kona Beach,2023-03-15,19.64,-155.99,25.7,34.0,6.7,99,7.3,1.1,110,12,<1
Wailoa Park,2023-01-12,19.72,-155.08,22.0,20.5,7.0,95,7.9,3.2,300,25,
Spencer Beach Park,2023-06-01,20.02,-155.82,25.5,34.6,6.8,100,8.1,0.6,95,9,4
`

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("waiola-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesSiteAverages runs the startup pipeline against a real
// broker and reads back one message per site.
func TestPipelinePublishesSiteAverages(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSiteTopic)

	path := filepath.Join(t.TempDir(), "hwo.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaSiteTopic: testSiteTopic}
	publisher := kafka.NewSitePublisher(cfg, logger)
	defer publisher.Close()

	p := pipeline.New(pipeline.FileSource{Path: path}, nil, publisher, logger, observability.NewMetricsForTesting())
	require.NoError(t, p.Run(ctx))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testSiteTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	got := map[string]map[string]any{}
	for len(got) < 3 {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := reader.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from site topic")

		var body map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &body))
		got[string(msg.Key)] = body

		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "site-average.v1", headers["schema"])
	}

	require.Contains(t, got, "Kona ")
	require.Contains(t, got, "Wailoa ")
	require.Contains(t, got, "Spencer  ")

	kona := got["Kona "]["averages"].(map[string]any)
	assert.InDelta(t, 7.2, kona["pH"], 1e-9)
	assert.Nil(t, got["Wailoa "]["averages"].(map[string]any)["Entero"])
}
