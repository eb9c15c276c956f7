package chart

import (
	"fmt"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// ColorBy selects the column that splits scatter points into colored traces.
type ColorBy string

const (
	ColorBySite ColorBy = "SiteName"
	ColorByYear ColorBy = "Year"
)

// ParseColorBy validates a color-by dropdown value.
func ParseColorBy(s string) (ColorBy, error) {
	switch ColorBy(s) {
	case ColorBySite, ColorByYear:
		return ColorBy(s), nil
	default:
		return "", fmt.Errorf("unknown color field %q", s)
	}
}

func (c ColorBy) key(r domain.Record) string {
	if c == ColorByYear {
		return r.Year
	}
	return r.Site
}

// ScatterSpec describes one of the fixed measurement-pair scatter plots.
type ScatterSpec struct {
	Title string
	X, Y  domain.Field
}

// ScatterSpecs are the four scatter plots in page order.
var ScatterSpecs = [4]ScatterSpec{
	{Title: "Temperature vs Salinity", X: domain.Temp, Y: domain.Salinity},
	{Title: "Dissolved Oxygen vs pH", X: domain.DO, Y: domain.PH},
	{Title: "Nitrogen vs Phosphorus", X: domain.TotalN, Y: domain.TotalP},
	{Title: "Turbidity vs Enterococcus", X: domain.Turbidity, Y: domain.Entero},
}

// Scatter plots spec.Y against spec.X with one trace per distinct color
// value, in order of first appearance. The legend is always shown.
func Scatter(records []domain.Record, spec ScatterSpec, colorBy ColorBy, theme Theme) Figure {
	var traces []Trace
	index := map[string]int{}
	hover := fmt.Sprintf("%s=%%{fullData.name}<br>SiteName=%%{customdata[0]}<br>Date=%%{customdata[1]}<br>%s=%%{x}<br>%s=%%{y}<extra></extra>",
		colorBy, spec.X.Column(), spec.Y.Column())

	for _, r := range records {
		k := colorBy.key(r)
		i, ok := index[k]
		if !ok {
			i = len(traces)
			index[k] = i
			traces = append(traces, Trace{
				Type:          "scatter",
				Mode:          "markers",
				Name:          k,
				LegendGroup:   k,
				X:             []Number{},
				Y:             []Number{},
				HoverTemplate: hover,
				Marker:        &Marker{Color: paletteColor(G10, i)},
			})
		}
		t := &traces[i]
		t.X = append(t.X, Number(r.Values[spec.X]))
		t.Y = append(t.Y, Number(r.Values[spec.Y]))
		t.CustomData = append(t.CustomData, []any{r.Site, r.Date.Format(time.DateOnly)})
	}
	if traces == nil {
		traces = []Trace{}
	}

	layout := Layout{
		Title:      title(spec.Title),
		Height:     DefaultHeight,
		ShowLegend: boolPtr(true),
		Legend:     &Legend{Title: title(string(colorBy))},
		XAxis:      &Axis{Title: title(spec.X.Label())},
		YAxis:      &Axis{Title: title(spec.Y.Label())},
	}
	theme.apply(&layout)
	return Figure{Data: traces, Layout: layout}
}
