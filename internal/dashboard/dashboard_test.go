package dashboard

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/waiola-dashboard/internal/chart"
	"github.com/couchcryptid/waiola-dashboard/internal/dataset"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

var (
	hilo   = domain.Position{Lat: 19.72, Long: -155.08}
	kona   = domain.Position{Lat: 19.64, Long: -155.99}
	kohala = domain.Position{Lat: 20.02, Long: -155.82}
)

func rec(site string, pos domain.Position, date time.Time, temp float64) domain.Record {
	v := domain.MissingValues()
	for _, f := range domain.Fields() {
		v[f] = temp + float64(f)
	}
	return domain.Record{
		Site:     site,
		RawSite:  site,
		Date:     date,
		Year:     date.Format("2006"),
		Position: pos,
		Values:   v,
	}
}

func day(m time.Month, d int) time.Time { return time.Date(2023, m, d, 0, 0, 0, 0, time.UTC) }

// testData has two Hilo records, two Kona records, and one South Kohala record.
func testData() *dataset.Dataset {
	return dataset.New([]domain.Record{
		rec("Wailoa ", hilo, day(1, 12), 22),
		rec("Kona ", kona, day(3, 15), 25.7),
		rec("Spencer  ", kohala, day(6, 1), 25.5),
		rec("Kona ", kona, day(1, 10), 25.1),
		rec("Wailoa ", hilo, day(2, 12), 22.4),
	})
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return NewController(testData(), "pk.test")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func totalPoints(fig chart.Figure) int {
	n := 0
	for _, tr := range fig.Data {
		n += tr.Points()
	}
	return n
}

func traceNames(fig chart.Figure) []string {
	var names []string
	for _, tr := range fig.Data {
		names = append(names, tr.Name)
	}
	return names
}

func inputs(regions ...string) Inputs {
	in := DefaultInputs()
	in.Regions = append([]string{}, regions...)
	return in
}

func requireScatterPoints(t *testing.T, figs [4]chart.Figure, want int) {
	t.Helper()
	for i, fig := range figs {
		require.Equal(t, want, totalPoints(fig), "scatter plot %d", i+1)
	}
}
