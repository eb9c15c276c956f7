package chart

import (
	"sort"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// TimeSeries draws one line per site of the raw field values over time.
// Sites appear in order of first appearance; points within a site are
// sorted by date.
func TimeSeries(records []domain.Record, field domain.Field, theme Theme) Figure {
	var order []string
	bySite := map[string][]domain.Record{}
	for _, r := range records {
		if _, ok := bySite[r.Site]; !ok {
			order = append(order, r.Site)
		}
		bySite[r.Site] = append(bySite[r.Site], r)
	}

	traces := make([]Trace, 0, len(order))
	for i, site := range order {
		rows := bySite[site]
		sort.SliceStable(rows, func(a, b int) bool { return rows[a].Date.Before(rows[b].Date) })

		t := Trace{
			Type:          "scatter",
			Mode:          "lines",
			Name:          site,
			LegendGroup:   site,
			XTime:         make([]time.Time, len(rows)),
			Y:             make([]Number, len(rows)),
			HoverTemplate: "SiteName=" + site + "<br>Date=%{x}<br>" + field.Column() + "=%{y}<extra></extra>",
			Line:          &Line{Color: paletteColor(Plotly, i)},
		}
		for j, r := range rows {
			t.XTime[j] = r.Date
			t.Y[j] = Number(r.Values[field])
		}
		traces = append(traces, t)
	}

	layout := Layout{
		Title:  title("Time Series of " + field.Column()),
		Height: DefaultHeight,
		Legend: &Legend{Title: title("SiteName")},
		XAxis:  &Axis{Title: title("Date"), Type: "date", FixedRange: boolPtr(false)},
		YAxis:  &Axis{Title: title(field.Label()), FixedRange: boolPtr(false)},
		Margin: &Margin{L: 0, R: 170, T: 65, B: 60},
	}
	theme.apply(&layout)
	return Figure{Data: traces, Layout: layout}
}
