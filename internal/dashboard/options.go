package dashboard

import (
	"github.com/couchcryptid/waiola-dashboard/internal/chart"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// Option is one dropdown or checklist entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options describes every page control and its initial value.
type Options struct {
	Themes   []Option `json:"themes"`
	Regions  []Option `json:"regions"`
	ColorBy  []Option `json:"colorBy"`
	Sizes    []Option `json:"sizes"`
	Defaults Inputs   `json:"defaults"`
}

// PageOptions returns the control options in display order.
func PageOptions() Options {
	var o Options
	for _, t := range chart.Themes() {
		o.Themes = append(o.Themes, Option{Label: t.Name, Value: t.Name})
	}
	for _, r := range domain.Regions() {
		o.Regions = append(o.Regions, Option{Label: string(r), Value: string(r)})
	}
	for _, c := range []chart.ColorBy{chart.ColorBySite, chart.ColorByYear} {
		o.ColorBy = append(o.ColorBy, Option{Label: string(c), Value: string(c)})
	}
	for _, f := range domain.Fields() {
		o.Sizes = append(o.Sizes, Option{Label: f.Label(), Value: f.Column()})
	}
	o.Defaults = DefaultInputs()
	return o
}
