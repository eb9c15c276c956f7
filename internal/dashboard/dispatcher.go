package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/chart"
	"github.com/couchcryptid/waiola-dashboard/internal/observability"
)

// Event is one page interaction: the component that fired and the current
// value of every control.
type Event struct {
	Trigger string `json:"triggered"`
	Inputs  Inputs `json:"inputs"`
}

// Outputs maps a chart component ID to its new figure.
type Outputs map[string]chart.Figure

// Group names, used as metric labels.
const (
	GroupScatter = "scatter"
	GroupMap     = "map"
)

type group struct {
	name   string
	inputs []string
	update func(Event) (Outputs, error)
}

// Dispatcher routes events to the callback groups that listen to the
// triggering component. It is not modified after NewDispatcher and is safe
// for concurrent use.
type Dispatcher struct {
	groups  []group
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewDispatcher registers the scatter and map groups backed by c.
func NewDispatcher(c *Controller, logger *slog.Logger, metrics *observability.Metrics) *Dispatcher {
	d := &Dispatcher{logger: logger, metrics: metrics}

	d.register(GroupScatter,
		[]string{MapGraph, ResetButton, ThemeSelector, LocationChecklist, ColorSelector},
		func(ev Event) (Outputs, error) {
			figs, err := c.UpdateScatter(ev.Trigger, ev.Inputs)
			if err != nil {
				return nil, err
			}
			out := make(Outputs, len(figs))
			for i, id := range ScatterOutputs {
				out[id] = figs[i]
			}
			return out, nil
		})

	d.register(GroupMap,
		[]string{SizeSelector, ThemeSelector, LocationChecklist},
		func(ev Event) (Outputs, error) {
			m, ts, err := c.UpdateMapAndTimeSeries(ev.Inputs)
			if err != nil {
				return nil, err
			}
			return Outputs{MapGraph: m, TimeSeriesGraph: ts}, nil
		})

	return d
}

func (d *Dispatcher) register(name string, inputs []string, update func(Event) (Outputs, error)) {
	d.groups = append(d.groups, group{name: name, inputs: inputs, update: update})
}

// Dispatch runs every group affected by ev and merges their outputs. An
// empty trigger is the initial page load and runs all groups. Groups whose
// selection is empty contribute nothing, so the result may be empty.
func (d *Dispatcher) Dispatch(ev Event) (Outputs, error) {
	out := Outputs{}
	matched := false

	for _, g := range d.groups {
		if ev.Trigger != "" && !slices.Contains(g.inputs, ev.Trigger) {
			continue
		}
		matched = true

		start := time.Now()
		figs, err := g.update(ev)
		d.metrics.CallbackDuration.WithLabelValues(g.name).Observe(time.Since(start).Seconds())

		switch {
		case errors.Is(err, ErrNoUpdate):
			d.metrics.Callbacks.WithLabelValues(g.name, "suppressed").Inc()
			d.logger.Debug("callback suppressed, empty region selection", "group", g.name, "trigger", ev.Trigger)
			continue
		case err != nil:
			d.metrics.Callbacks.WithLabelValues(g.name, "error").Inc()
			return nil, fmt.Errorf("%s callback: %w", g.name, err)
		}

		d.metrics.Callbacks.WithLabelValues(g.name, "updated").Inc()
		for id, fig := range figs {
			out[id] = fig
		}
	}

	if !matched {
		return nil, fmt.Errorf("%w: unknown trigger %q", ErrInvalidInput, ev.Trigger)
	}
	return out, nil
}
