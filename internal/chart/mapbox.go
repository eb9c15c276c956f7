package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// Map marker sizing mirrors Plotly Express: marker area is proportional to
// the value and the largest marker is sizeMax pixels across.
const (
	sizeMax    = 20
	mapZoom    = 7
	mapStyle   = "satellite"
	pointColor = "cyan"
)

// Map places one marker per site average, sized by the selected field.
func Map(avgs []domain.SiteAverage, size domain.Field, theme Theme, accessToken string) Figure {
	n := len(avgs)
	t := Trace{
		Type:      "scattermapbox",
		Mode:      "markers",
		Lat:       make([]Number, n),
		Lon:       make([]Number, n),
		HoverText: make([]string, n),
		Marker: &Marker{
			Color:    pointColor,
			Size:     make([]Number, n),
			SizeMode: "area",
		},
		ShowLegend: boolPtr(false),
	}

	fields := domain.Fields()
	var lines []string
	for i, f := range fields {
		lines = append(lines, fmt.Sprintf("%s=%%{customdata[%d]}", f.Column(), i))
	}
	t.HoverTemplate = "<b>%{hovertext}</b><br><br>Lat=%{lat}<br>Long=%{lon}<br>" +
		strings.Join(lines, "<br>") +
		fmt.Sprintf("<br>%%{customdata[%d]}<extra></extra>", len(fields))

	var latMean, lonMean, maxSize float64
	var counted int
	for i, a := range avgs {
		t.Lat[i] = Number(a.Position.Lat)
		t.Lon[i] = Number(a.Position.Long)
		t.HoverText[i] = a.Site
		v := a.Values[size]
		t.Marker.Size[i] = Number(v)
		if !math.IsNaN(v) && v > maxSize {
			maxSize = v
		}

		row := make([]any, 0, len(fields)+1)
		for _, f := range fields {
			row = append(row, Number(a.Values[f]))
		}
		row = append(row, a.PlaceName)
		t.CustomData = append(t.CustomData, row)

		if !math.IsNaN(a.Position.Lat) && !math.IsNaN(a.Position.Long) {
			counted++
			latMean += (a.Position.Lat - latMean) / float64(counted)
			lonMean += (a.Position.Long - lonMean) / float64(counted)
		}
	}

	t.Marker.SizeRef = 1
	if maxSize > 0 {
		t.Marker.SizeRef = 2 * maxSize / (sizeMax * sizeMax)
	}

	layout := Layout{
		Height: DefaultHeight,
		Margin: &Margin{L: 1, R: 1, T: 1, B: 1},
		Mapbox: &Mapbox{
			Style:       mapStyle,
			Zoom:        mapZoom,
			Center:      Center{Lat: latMean, Lon: lonMean},
			AccessToken: accessToken,
		},
	}
	theme.apply(&layout)
	return Figure{Data: []Trace{t}, Layout: layout}
}
