package domain

// Region is one of the named coastal areas of Hawai'i Island.
type Region string

const (
	Hilo        Region = "Hilo"
	Kona        Region = "Kona"
	SouthKohala Region = "South Kohala"
)

// Region thresholds in decimal degrees.
const (
	hiloMinLong       = -155.1
	konaMaxLong       = -155.9
	southKohalaMinLat = 19.9
)

// Regions lists the regions in checklist order.
func Regions() []Region { return []Region{Hilo, SouthKohala, Kona} }

// Contains reports whether p satisfies the region's threshold. Unknown
// regions contain nothing.
func (r Region) Contains(p Position) bool {
	switch r {
	case Hilo:
		return p.Long > hiloMinLong
	case Kona:
		return p.Long < konaMaxLong
	case SouthKohala:
		return p.Lat > southKohalaMinLat
	default:
		return false
	}
}

// RegionSet is a set of selected regions.
type RegionSet map[Region]struct{}

// NewRegionSet builds a set from checklist values. Unknown names are kept
// but never match anything.
func NewRegionSet(names ...string) RegionSet {
	s := make(RegionSet, len(names))
	for _, n := range names {
		s[Region(n)] = struct{}{}
	}
	return s
}

// Has reports whether r is selected.
func (s RegionSet) Has(r Region) bool {
	_, ok := s[r]
	return ok
}

// Match reports whether p falls in any selected region.
func (s RegionSet) Match(p Position) bool {
	for r := range s {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// FilterByRegion keeps rows inside at least one selected region, preserving
// order. An empty selection yields an empty result.
func FilterByRegion[T Positioned](rows []T, regions RegionSet) []T {
	out := make([]T, 0, len(rows))
	if len(regions) == 0 {
		return out
	}
	for _, row := range rows {
		if regions.Match(row.Pos()) {
			out = append(out, row)
		}
	}
	return out
}

// FilterByPosition keeps rows located exactly at (lat, long).
func FilterByPosition[T Positioned](rows []T, lat, long float64) []T {
	out := make([]T, 0)
	for _, row := range rows {
		p := row.Pos()
		if p.Lat == lat && p.Long == long {
			out = append(out, row)
		}
	}
	return out
}
