package dataset

import (
	"sort"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// MostRecent returns the latest record per site. Records are stable-sorted by
// date, so among equal dates the one appearing last in the input wins. The
// result is in ascending date order.
func MostRecent(records []domain.Record) []domain.Record {
	sorted := make([]domain.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	last := make(map[string]int, len(sorted))
	for i, r := range sorted {
		last[r.Site] = i
	}

	out := make([]domain.Record, 0, len(last))
	for i, r := range sorted {
		if last[r.Site] == i {
			out = append(out, r)
		}
	}
	return out
}

// Averages returns one SiteAverage per site, sorted by site name. Missing
// values are skipped; a field with no valid values stays missing.
func Averages(records []domain.Record) []domain.SiteAverage {
	type acc struct {
		count     int
		lat, long mean
		values    [domain.NumFields]mean
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		a, ok := groups[r.Site]
		if !ok {
			a = &acc{}
			groups[r.Site] = a
		}
		a.count++
		a.lat.add(r.Position.Lat)
		a.long.add(r.Position.Long)
		for i, v := range r.Values {
			a.values[i].add(v)
		}
	}

	sites := make([]string, 0, len(groups))
	for s := range groups {
		sites = append(sites, s)
	}
	sort.Strings(sites)

	out := make([]domain.SiteAverage, len(sites))
	for i, s := range sites {
		a := groups[s]
		avg := domain.SiteAverage{Site: s, Count: a.count}
		avg.Position.Lat, _ = a.lat.value()
		avg.Position.Long, _ = a.long.value()
		for f := range a.values {
			avg.Values[f], _ = a.values[f].value()
		}
		out[i] = avg
	}
	return out
}
