package domain

import (
	"math"
	"time"
)

// Position is a WGS-84 latitude/longitude pair.
type Position struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"lon"`
}

// Positioned is anything the region and point filters can evaluate.
type Positioned interface {
	Pos() Position
}

// Values holds one value per measurement field. NaN marks a missing value.
type Values [NumFields]float64

// MissingValues returns a Values with every field missing.
func MissingValues() Values {
	var v Values
	for i := range v {
		v[i] = math.NaN()
	}
	return v
}

// Get returns the value for f and whether it is present.
func (v Values) Get(f Field) (float64, bool) {
	x := v[f]
	return x, !math.IsNaN(x)
}

// Record is one cleaned observation at one site and date.
type Record struct {
	Site     string // display name, see NormalizeSiteName
	RawSite  string
	Date     time.Time
	Year     string
	Position Position
	Values   Values
}

func (r Record) Pos() Position { return r.Position }

// Value is shorthand for r.Values.Get(f).
func (r Record) Value(f Field) (float64, bool) { return r.Values.Get(f) }

// SiteAverage is the per-site mean of every field and of the position.
type SiteAverage struct {
	Site      string
	Position  Position
	Values    Values
	Count     int
	PlaceName string // reverse-geocoded, optional
}

func (s SiteAverage) Pos() Position { return s.Position }

// Value is shorthand for s.Values.Get(f).
func (s SiteAverage) Value(f Field) (float64, bool) { return s.Values.Get(f) }
