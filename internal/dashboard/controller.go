package dashboard

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/waiola-dashboard/internal/chart"
	"github.com/couchcryptid/waiola-dashboard/internal/dataset"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// ErrNoUpdate means the region selection matched nothing and the charts
// currently on the page should be left as they are.
var ErrNoUpdate = errors.New("no update")

// ErrUnknownOutput is returned by Figure for an ID that is not a chart.
var ErrUnknownOutput = errors.New("unknown output")

// Controller turns control values into figures over an immutable dataset.
// It holds no per-request state and is safe for concurrent use.
type Controller struct {
	data        *dataset.Dataset
	mapboxToken string
}

// NewController creates a Controller. The Mapbox token is passed through to
// the map figure for tile access.
func NewController(data *dataset.Dataset, mapboxToken string) *Controller {
	return &Controller{data: data, mapboxToken: mapboxToken}
}

// UpdateScatter recomputes the four scatter plots. trigger is the ID of the
// component that fired the event, or empty on initial load.
func (c *Controller) UpdateScatter(trigger string, in Inputs) ([4]chart.Figure, error) {
	var figs [4]chart.Figure
	p, err := in.resolve()
	if err != nil {
		return figs, err
	}

	rows := domain.FilterByRegion(c.data.Records(), p.regions)
	if len(rows) == 0 {
		return figs, ErrNoUpdate
	}

	switch trigger {
	case ResetButton:
		rows = c.data.Records()
	case MapGraph:
		if pos, ok := in.Click.Position(); ok {
			rows = domain.FilterByPosition(rows, pos.Lat, pos.Long)
		}
	}

	for i, spec := range chart.ScatterSpecs {
		figs[i] = chart.Scatter(rows, spec, p.colorBy, p.theme)
	}
	return figs, nil
}

// UpdateMapAndTimeSeries recomputes the site map and the time series of the
// selected field for the sites in the selected regions.
func (c *Controller) UpdateMapAndTimeSeries(in Inputs) (mapFig, series chart.Figure, err error) {
	p, err := in.resolve()
	if err != nil {
		return chart.Figure{}, chart.Figure{}, err
	}

	avgs := domain.FilterByRegion(c.data.Averages(), p.regions)
	if len(avgs) == 0 {
		return chart.Figure{}, chart.Figure{}, ErrNoUpdate
	}

	mapFig = chart.Map(avgs, p.size, p.theme, c.mapboxToken)
	series = chart.TimeSeries(c.data.RecordsForSites(avgs), p.size, p.theme)
	return mapFig, series, nil
}

// Figure computes a single chart as it appears on initial load with the
// given inputs.
func (c *Controller) Figure(id string, in Inputs) (chart.Figure, error) {
	for i, out := range ScatterOutputs {
		if out != id {
			continue
		}
		figs, err := c.UpdateScatter("", in)
		if err != nil {
			return chart.Figure{}, err
		}
		return figs[i], nil
	}

	switch id {
	case MapGraph, TimeSeriesGraph:
		m, ts, err := c.UpdateMapAndTimeSeries(in)
		if err != nil {
			return chart.Figure{}, err
		}
		if id == MapGraph {
			return m, nil
		}
		return ts, nil
	default:
		return chart.Figure{}, fmt.Errorf("%w: %q", ErrUnknownOutput, id)
	}
}
