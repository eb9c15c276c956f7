package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/waiola-dashboard/internal/observability"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *observability.Metrics) {
	t.Helper()
	m := observability.NewMetricsForTesting()
	return NewDispatcher(newTestController(t), discardLogger(), m), m
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func outputIDs(out Outputs) []string {
	ids := make([]string, 0, len(out))
	for id := range out {
		ids = append(ids, id)
	}
	return ids
}

func TestDispatch_Routing(t *testing.T) {
	scatter := []string{ScatterPlot1, ScatterPlot2, ScatterPlot3, ScatterPlot4}
	mapGroup := []string{MapGraph, TimeSeriesGraph}
	all := append(append([]string{}, scatter...), mapGroup...)

	tests := []struct {
		trigger string
		want    []string
	}{
		{"", all},
		{ThemeSelector, all},
		{LocationChecklist, all},
		{ColorSelector, scatter},
		{ResetButton, scatter},
		{MapGraph, scatter},
		{SizeSelector, mapGroup},
	}
	for _, tt := range tests {
		t.Run("trigger="+tt.trigger, func(t *testing.T) {
			d, _ := newTestDispatcher(t)
			out, err := d.Dispatch(Event{Trigger: tt.trigger, Inputs: DefaultInputs()})
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, outputIDs(out))
		})
	}
}

func TestDispatch_UnknownTrigger(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Trigger: "logo"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDispatch_EmptySelectionSuppressesAll(t *testing.T) {
	d, m := newTestDispatcher(t)

	out, err := d.Dispatch(Event{Trigger: LocationChecklist, Inputs: inputs()})
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.InDelta(t, 1, counterValue(t, m.Callbacks.WithLabelValues(GroupScatter, "suppressed")), 0)
	assert.InDelta(t, 1, counterValue(t, m.Callbacks.WithLabelValues(GroupMap, "suppressed")), 0)
}

func TestDispatch_InvalidInputCountsError(t *testing.T) {
	d, m := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Trigger: ColorSelector, Inputs: Inputs{ColorBy: "Depth"}})
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.InDelta(t, 1, counterValue(t, m.Callbacks.WithLabelValues(GroupScatter, "error")), 0)
}

func TestDispatch_UpdatedMetrics(t *testing.T) {
	d, m := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Inputs: DefaultInputs()})
	require.NoError(t, err)

	assert.InDelta(t, 1, counterValue(t, m.Callbacks.WithLabelValues(GroupScatter, "updated")), 0)
	assert.InDelta(t, 1, counterValue(t, m.Callbacks.WithLabelValues(GroupMap, "updated")), 0)
}

func TestEvent_UnmarshalPagePayload(t *testing.T) {
	body := `{
		"triggered": "map-graph",
		"inputs": {
			"theme-selector": "seaborn",
			"location-checklist": ["Hilo"],
			"color-selector": "Year",
			"size-selector": "TotalN",
			"map-graph": {"points": [{"lat": 19.72, "lon": -155.08, "hovertext": "Wailoa "}]}
		}
	}`

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(body), &ev))

	assert.Equal(t, MapGraph, ev.Trigger)
	assert.Equal(t, "seaborn", ev.Inputs.Theme)
	assert.Equal(t, []string{"Hilo"}, ev.Inputs.Regions)
	pos, ok := ev.Inputs.Click.Position()
	require.True(t, ok)
	assert.Equal(t, hilo, pos)
}

func TestEvent_EmptyChecklistIsNotDefault(t *testing.T) {
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(`{"inputs": {"location-checklist": []}}`), &ev))
	require.NotNil(t, ev.Inputs.Regions)

	d, _ := newTestDispatcher(t)
	out, err := d.Dispatch(ev)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPageOptions(t *testing.T) {
	o := PageOptions()

	assert.Len(t, o.Themes, 7)
	assert.Equal(t, []Option{{"Hilo", "Hilo"}, {"South Kohala", "South Kohala"}, {"Kona", "Kona"}}, o.Regions)
	assert.Equal(t, []Option{{"SiteName", "SiteName"}, {"Year", "Year"}}, o.ColorBy)
	require.Len(t, o.Sizes, 9)
	assert.Equal(t, Option{Label: "Oxygen Saturation (%)", Value: "DO_sat"}, o.Sizes[3])
	assert.Equal(t, "plotly_dark", o.Defaults.Theme)
	assert.Equal(t, []string{"Hilo", "South Kohala", "Kona"}, o.Defaults.Regions)
	assert.Equal(t, "Temp", o.Defaults.Size)
}
