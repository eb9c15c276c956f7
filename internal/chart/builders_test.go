package chart

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(site string, date time.Time, temp, sal float64) domain.Record {
	v := domain.MissingValues()
	v[domain.Temp] = temp
	v[domain.Salinity] = sal
	return domain.Record{
		Site:     site,
		RawSite:  site,
		Date:     date,
		Year:     date.Format("2006"),
		Position: domain.Position{Lat: 19.6, Long: -156},
		Values:   v,
	}
}

func darkTheme(t *testing.T) Theme {
	t.Helper()
	th, err := LookupTheme(DefaultTheme)
	require.NoError(t, err)
	return th
}

func TestScatter_GroupsBySiteInFirstAppearanceOrder(t *testing.T) {
	records := []domain.Record{
		record("Kona ", day(2023, 1, 1), 25, 34),
		record("Wailoa ", day(2023, 1, 2), 22, 20),
		record("Kona ", day(2023, 2, 1), 26, 33),
	}

	fig := Scatter(records, ScatterSpecs[0], ColorBySite, darkTheme(t))

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "Kona ", fig.Data[0].Name)
	assert.Equal(t, "Wailoa ", fig.Data[1].Name)
	assert.Equal(t, []Number{25, 26}, fig.Data[0].X)
	assert.Equal(t, []Number{34, 33}, fig.Data[0].Y)
	assert.Equal(t, G10[0], fig.Data[0].Marker.Color)
	assert.Equal(t, G10[1], fig.Data[1].Marker.Color)
	assert.Equal(t, []any{"Kona ", "2023-02-01"}, fig.Data[0].CustomData[1])

	assert.Equal(t, "Temperature vs Salinity", fig.Layout.Title.Text)
	assert.Equal(t, "Temperature (C)", fig.Layout.XAxis.Title.Text)
	assert.Equal(t, "Salinity (ppt)", fig.Layout.YAxis.Title.Text)
	assert.Equal(t, "SiteName", fig.Layout.Legend.Title.Text)
	require.NotNil(t, fig.Layout.ShowLegend)
	assert.True(t, *fig.Layout.ShowLegend)
	assert.Equal(t, "#111111", fig.Layout.PaperBGColor)
}

func TestScatter_ColorByYear(t *testing.T) {
	records := []domain.Record{
		record("Kona ", day(2022, 12, 1), 25, 34),
		record("Wailoa ", day(2023, 1, 2), 22, 20),
		record("Kona ", day(2023, 2, 1), 26, 33),
	}

	fig := Scatter(records, ScatterSpecs[0], ColorByYear, darkTheme(t))

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "2022", fig.Data[0].Name)
	assert.Equal(t, "2023", fig.Data[1].Name)
	assert.Equal(t, 2, fig.Data[1].Points())
	assert.Equal(t, "Year", fig.Layout.Legend.Title.Text)
}

func TestScatter_EmptyInput(t *testing.T) {
	fig := Scatter(nil, ScatterSpecs[3], ColorBySite, darkTheme(t))

	assert.NotNil(t, fig.Data)
	assert.Empty(t, fig.Data)
	assert.Equal(t, "Turbidity vs Enterococcus", fig.Layout.Title.Text)
}

func TestScatter_MissingValuesEncodeAsNull(t *testing.T) {
	fig := Scatter([]domain.Record{record("Kona ", day(2023, 1, 1), 25, math.NaN())}, ScatterSpecs[0], ColorBySite, darkTheme(t))

	b, err := json.Marshal(fig.Data[0].Y)
	require.NoError(t, err)
	assert.Equal(t, "[null]", string(b))
}

func TestParseColorBy(t *testing.T) {
	c, err := ParseColorBy("Year")
	require.NoError(t, err)
	assert.Equal(t, ColorByYear, c)

	_, err = ParseColorBy("Depth")
	assert.Error(t, err)
}

func average(site string, lat, long, temp float64) domain.SiteAverage {
	v := domain.MissingValues()
	v[domain.Temp] = temp
	return domain.SiteAverage{Site: site, Position: domain.Position{Lat: lat, Long: long}, Values: v, Count: 1}
}

func TestMap_SizingAndCenter(t *testing.T) {
	avgs := []domain.SiteAverage{
		average("Kona ", 19.6, -156.0, 25),
		average("Wailoa ", 19.8, -155.0, 20),
	}
	avgs[0].PlaceName = "Kailua-Kona, Hawaii"

	fig := Map(avgs, domain.Temp, darkTheme(t), "tok")

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "scattermapbox", tr.Type)
	assert.Equal(t, []string{"Kona ", "Wailoa "}, tr.HoverText)
	assert.Equal(t, []Number{25, 20}, tr.Marker.Size)
	assert.InDelta(t, 2*25.0/400, tr.Marker.SizeRef, 1e-12)
	assert.Equal(t, "area", tr.Marker.SizeMode)
	require.Len(t, tr.CustomData[0], domain.NumFields+1)
	assert.Equal(t, "Kailua-Kona, Hawaii", tr.CustomData[0][domain.NumFields])

	want := &Mapbox{Style: "satellite", Zoom: 7, Center: Center{Lat: 19.7, Lon: -155.5}, AccessToken: "tok"}
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
	if diff := cmp.Diff(want, fig.Layout.Mapbox, approx); diff != "" {
		t.Errorf("mapbox layout mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, &Margin{L: 1, R: 1, T: 1, B: 1}, fig.Layout.Margin)
}

func TestMap_AllMissingSizeUsesUnitSizeRef(t *testing.T) {
	fig := Map([]domain.SiteAverage{average("Kona ", 19.6, -156.0, math.NaN())}, domain.Temp, darkTheme(t), "")

	assert.InDelta(t, 1.0, fig.Data[0].Marker.SizeRef, 0)
}

func TestTimeSeries_SortsPointsPerSite(t *testing.T) {
	records := []domain.Record{
		record("Kona ", day(2023, 3, 1), 26, 0),
		record("Wailoa ", day(2023, 1, 5), 22, 0),
		record("Kona ", day(2023, 1, 1), 25, 0),
	}

	fig := TimeSeries(records, domain.Temp, darkTheme(t))

	require.Len(t, fig.Data, 2)
	kona := fig.Data[0]
	assert.Equal(t, "Kona ", kona.Name)
	assert.Equal(t, "lines", kona.Mode)
	assert.Equal(t, []time.Time{day(2023, 1, 1), day(2023, 3, 1)}, kona.XTime)
	assert.Equal(t, []Number{25, 26}, kona.Y)
	assert.Equal(t, Plotly[0], kona.Line.Color)
	assert.Equal(t, Plotly[1], fig.Data[1].Line.Color)

	assert.Equal(t, "Time Series of Temp", fig.Layout.Title.Text)
	assert.Equal(t, "date", fig.Layout.XAxis.Type)
	assert.Equal(t, &Margin{L: 0, R: 170, T: 65, B: 60}, fig.Layout.Margin)

	// input order is untouched
	assert.Equal(t, day(2023, 3, 1), records[0].Date)
}
