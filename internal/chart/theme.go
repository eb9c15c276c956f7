package chart

import "fmt"

// Theme is a named visual template applied to a figure's layout.
type Theme struct {
	Name  string
	Paper string // page background
	Plot  string // plotting area background
	Font  string
	Grid  string // empty hides grid lines
}

// DefaultTheme is the theme selected when the page first loads.
const DefaultTheme = "plotly_dark"

var themes = []Theme{
	{Name: "plotly", Paper: "#ffffff", Plot: "#E5ECF6", Font: "#2a3f5f", Grid: "#ffffff"},
	{Name: "plotly_white", Paper: "#ffffff", Plot: "#ffffff", Font: "#2a3f5f", Grid: "#EBF0F8"},
	{Name: "plotly_dark", Paper: "#111111", Plot: "#111111", Font: "#f2f5fa", Grid: "#283442"},
	{Name: "ggplot2", Paper: "#ffffff", Plot: "#EBEBEB", Font: "#333333", Grid: "#ffffff"},
	{Name: "seaborn", Paper: "#ffffff", Plot: "#EAEAF2", Font: "#242424", Grid: "#ffffff"},
	{Name: "simple_white", Paper: "#ffffff", Plot: "#ffffff", Font: "#242424"},
	{Name: "none"},
}

// Themes returns every available theme in dropdown order.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// LookupTheme finds a theme by name.
func LookupTheme(name string) (Theme, error) {
	for _, t := range themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

// apply copies the theme's colors onto the layout and its axes.
func (t Theme) apply(l *Layout) {
	l.Template = t.Name
	l.PaperBGColor = t.Paper
	l.PlotBGColor = t.Plot
	if t.Font != "" {
		l.Font = &Font{Color: t.Font}
	}
	for _, ax := range []*Axis{l.XAxis, l.YAxis} {
		if ax == nil {
			continue
		}
		if t.Grid == "" {
			ax.ShowGrid = boolPtr(false)
			continue
		}
		ax.GridColor = t.Grid
	}
}

// Qualitative palettes.
var (
	// G10 is the Google Charts palette used for the scatter plots.
	G10 = []string{"#3366CC", "#DC3912", "#FF9900", "#109618", "#990099", "#0099C6", "#DD4477", "#66AA00", "#B82E2E", "#316395"}
	// Plotly is the default Plotly colorway used for the time series.
	Plotly = []string{"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A", "#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52"}
)

func paletteColor(palette []string, i int) string {
	return palette[i%len(palette)]
}
