package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNotExportable is returned for figures without a static rendering, such as maps.
	ErrNotExportable = errors.New("chart cannot be exported as an image")
	// ErrNoData is returned when no trace has a plottable point.
	ErrNoData = errors.New("chart has no data to render")
)

// Format is a static image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

const exportWidth = 800

// ParseFormat validates an export format, defaulting to PNG when empty.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("unknown image format %q", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render draws a scatter or line figure as a static image. Points with a
// missing x or y are skipped.
func Render(fig Figure, format Format, w io.Writer) error {
	provider := gochart.PNG
	if format == SVG {
		provider = gochart.SVG
	}

	var (
		series []gochart.Series
		timeX  bool
		xr, yr extent
		points int
	)
	for _, t := range fig.Data {
		if t.Type != "scatter" {
			return fmt.Errorf("%w: trace type %s", ErrNotExportable, t.Type)
		}
		s, n := exportSeries(t, &xr, &yr)
		if t.XTime != nil {
			timeX = true
		}
		points += n
		series = append(series, s)
	}
	if points == 0 {
		return ErrNoData
	}

	l := fig.Layout
	font := parseColor(fontColor(l))
	grid := gochart.Style{Hidden: true}
	if l.XAxis != nil && l.XAxis.GridColor != "" {
		grid = gochart.Style{StrokeColor: parseColor(l.XAxis.GridColor), StrokeWidth: 1}
	}
	axisStyle := gochart.Style{FontColor: font, StrokeColor: font}

	height := l.Height
	if height == 0 {
		height = DefaultHeight
	}

	c := gochart.Chart{
		Width:      exportWidth,
		Height:     height,
		TitleStyle: gochart.Style{FontColor: font},
		Background: gochart.Style{
			FillColor: parseColor(l.PaperBGColor),
			Padding:   gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: gochart.Style{FillColor: parseColor(l.PlotBGColor)},
		XAxis: gochart.XAxis{
			Name:           axisTitle(l.XAxis),
			NameStyle:      axisStyle,
			Style:          axisStyle,
			GridMajorStyle: grid,
			Range:          xr.rangeFor(timeX),
		},
		YAxis: gochart.YAxis{
			Name:           axisTitle(l.YAxis),
			NameStyle:      axisStyle,
			Style:          axisStyle,
			GridMajorStyle: grid,
			Range:          yr.rangeFor(false),
		},
		Series: series,
	}
	if l.Title != nil {
		c.Title = l.Title.Text
	}
	if timeX {
		c.XAxis.ValueFormatter = gochart.TimeValueFormatter
	}
	if l.ShowLegend == nil || *l.ShowLegend {
		c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	}
	return c.Render(provider, w)
}

func exportSeries(t Trace, xr, yr *extent) (gochart.Series, int) {
	style := gochart.Style{StrokeWidth: gochart.Disabled, DotWidth: 4}
	if t.Marker != nil {
		style.DotColor = parseColor(t.Marker.Color)
	}
	if t.Mode == "lines" {
		style = gochart.Style{StrokeWidth: 2}
		if t.Line != nil {
			style.StrokeColor = parseColor(t.Line.Color)
		}
	}

	if t.XTime != nil {
		s := gochart.TimeSeries{Name: t.Name, Style: style}
		for i, x := range t.XTime {
			if i >= len(t.Y) || !t.Y[i].Valid() {
				continue
			}
			s.XValues = append(s.XValues, x)
			s.YValues = append(s.YValues, float64(t.Y[i]))
			xr.add(gochart.TimeToFloat64(x))
			yr.add(float64(t.Y[i]))
		}
		return s, len(s.XValues)
	}

	s := gochart.ContinuousSeries{Name: t.Name, Style: style}
	for i, x := range t.X {
		if i >= len(t.Y) || !x.Valid() || !t.Y[i].Valid() {
			continue
		}
		s.XValues = append(s.XValues, float64(x))
		s.YValues = append(s.YValues, float64(t.Y[i]))
		xr.add(float64(x))
		yr.add(float64(t.Y[i]))
	}
	return s, len(s.XValues)
}

// extent tracks the min and max of plotted values so degenerate ranges can
// be widened; go-chart refuses to draw an axis whose range is zero.
type extent struct {
	min, max float64
	set      bool
}

func (e *extent) add(v float64) {
	if !e.set {
		e.min, e.max, e.set = v, v, true
		return
	}
	e.min = math.Min(e.min, v)
	e.max = math.Max(e.max, v)
}

func (e extent) rangeFor(isTime bool) gochart.Range {
	if !e.set || e.min != e.max {
		return nil
	}
	pad := 1.0
	if isTime {
		pad = float64(24 * time.Hour)
	}
	return &gochart.ContinuousRange{Min: e.min - pad, Max: e.max + pad}
}

func axisTitle(a *Axis) string {
	if a == nil || a.Title == nil {
		return ""
	}
	return a.Title.Text
}

func fontColor(l Layout) string {
	if l.Font == nil {
		return ""
	}
	return l.Font.Color
}

// parseColor converts "#rrggbb" to a drawing color. Empty or named colors
// yield the zero color, which go-chart replaces with its defaults.
func parseColor(s string) drawing.Color {
	if !strings.HasPrefix(s, "#") {
		return drawing.Color{}
	}
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

// RenderPNG is Render with PNG output.
func RenderPNG(fig Figure, w io.Writer) error { return Render(fig, PNG, w) }

// RenderSVG is Render with SVG output.
func RenderSVG(fig Figure, w io.Writer) error { return Render(fig, SVG, w) }
