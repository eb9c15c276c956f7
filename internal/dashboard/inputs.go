package dashboard

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/waiola-dashboard/internal/chart"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// ErrInvalidInput marks an event whose control values cannot be resolved.
var ErrInvalidInput = errors.New("invalid input")

// Inputs are the current values of the page controls, keyed like the page
// components. Empty strings fall back to the page defaults. A nil Regions
// selects every region; an empty non-nil slice selects none.
type Inputs struct {
	Theme   string     `json:"theme-selector,omitempty"`
	Regions []string   `json:"location-checklist"`
	ColorBy string     `json:"color-selector,omitempty"`
	Size    string     `json:"size-selector,omitempty"`
	Click   *ClickData `json:"map-graph,omitempty"`
}

// ClickData is the Plotly click event payload of the map.
type ClickData struct {
	Points []ClickPoint `json:"points"`
}

// ClickPoint is one clicked map marker.
type ClickPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Position returns the first clicked point, if any.
func (c *ClickData) Position() (domain.Position, bool) {
	if c == nil || len(c.Points) == 0 {
		return domain.Position{}, false
	}
	p := c.Points[0]
	return domain.Position{Lat: p.Lat, Long: p.Lon}, true
}

// DefaultInputs returns the control values the page starts with.
func DefaultInputs() Inputs {
	regions := domain.Regions()
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = string(r)
	}
	return Inputs{
		Theme:   chart.DefaultTheme,
		Regions: names,
		ColorBy: string(chart.ColorBySite),
		Size:    domain.Temp.Column(),
	}
}

type params struct {
	theme   chart.Theme
	colorBy chart.ColorBy
	size    domain.Field
	regions domain.RegionSet
}

func (in Inputs) resolve() (params, error) {
	def := DefaultInputs()
	if in.Theme == "" {
		in.Theme = def.Theme
	}
	if in.ColorBy == "" {
		in.ColorBy = def.ColorBy
	}
	if in.Size == "" {
		in.Size = def.Size
	}
	if in.Regions == nil {
		in.Regions = def.Regions
	}

	var (
		p   params
		err error
	)
	if p.theme, err = chart.LookupTheme(in.Theme); err != nil {
		return params{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if p.colorBy, err = chart.ParseColorBy(in.ColorBy); err != nil {
		return params{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if p.size, err = domain.ParseField(in.Size); err != nil {
		return params{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	p.regions = domain.NewRegionSet(in.Regions...)
	return p, nil
}
