// Package chart builds Plotly figure specifications for the dashboard and
// renders them to static images.
//
// A Figure marshals to the JSON shape Plotly.js expects from
// Plotly.react(div, fig.data, fig.layout). Missing measurements are encoded as
// null so the browser draws gaps instead of zeros.
package chart

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// DefaultHeight is the pixel height shared by every dashboard chart.
const DefaultHeight = 390

// Number is a float64 that marshals NaN and infinities as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Valid reports whether n holds a finite value.
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Figure is a complete chart: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. X holds numeric x values; XTime, when set,
// takes precedence and is emitted as ISO dates.
type Trace struct {
	Type          string      `json:"type"`
	Mode          string      `json:"mode,omitempty"`
	Name          string      `json:"name,omitempty"`
	LegendGroup   string      `json:"legendgroup,omitempty"`
	ShowLegend    *bool       `json:"showlegend,omitempty"`
	X             []Number    `json:"-"`
	XTime         []time.Time `json:"-"`
	Y             []Number    `json:"y,omitempty"`
	Lat           []Number    `json:"lat,omitempty"`
	Lon           []Number    `json:"lon,omitempty"`
	HoverText     []string    `json:"hovertext,omitempty"`
	CustomData    [][]any     `json:"customdata,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	Marker        *Marker     `json:"marker,omitempty"`
	Line          *Line       `json:"line,omitempty"`
}

func (t Trace) MarshalJSON() ([]byte, error) {
	type alias Trace
	out := struct {
		alias
		X any `json:"x,omitempty"`
	}{alias: alias(t)}

	switch {
	case t.XTime != nil:
		dates := make([]string, len(t.XTime))
		for i, d := range t.XTime {
			dates[i] = d.Format(time.DateOnly)
		}
		out.X = dates
	case t.X != nil:
		out.X = t.X
	}
	return json.Marshal(out)
}

// Points returns the number of data points in the trace.
func (t Trace) Points() int {
	switch {
	case t.Lat != nil:
		return len(t.Lat)
	case t.Y != nil:
		return len(t.Y)
	default:
		return 0
	}
}

type Marker struct {
	Color    string   `json:"color,omitempty"`
	Size     []Number `json:"size,omitempty"`
	SizeRef  float64  `json:"sizeref,omitempty"`
	SizeMode string   `json:"sizemode,omitempty"`
	Opacity  float64  `json:"opacity,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Layout struct {
	Title        *Title  `json:"title,omitempty"`
	Height       int     `json:"height,omitempty"`
	ShowLegend   *bool   `json:"showlegend,omitempty"`
	Legend       *Legend `json:"legend,omitempty"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	Margin       *Margin `json:"margin,omitempty"`
	Mapbox       *Mapbox `json:"mapbox,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor,omitempty"`
	Font         *Font   `json:"font,omitempty"`
	Template     string  `json:"-"`
}

type Title struct {
	Text string `json:"text"`
}

type Legend struct {
	Title *Title `json:"title,omitempty"`
}

type Axis struct {
	Title      *Title `json:"title,omitempty"`
	Type       string `json:"type,omitempty"`
	FixedRange *bool  `json:"fixedrange,omitempty"`
	GridColor  string `json:"gridcolor,omitempty"`
	ShowGrid   *bool  `json:"showgrid,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Mapbox struct {
	Style       string  `json:"style"`
	Zoom        float64 `json:"zoom"`
	Center      Center  `json:"center"`
	AccessToken string  `json:"accesstoken,omitempty"`
}

type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Font struct {
	Color string `json:"color,omitempty"`
}

func title(s string) *Title { return &Title{Text: s} }

func boolPtr(b bool) *bool { return &b }
