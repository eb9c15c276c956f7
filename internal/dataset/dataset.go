package dataset

import (
	"fmt"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// Dataset is the cleaned record set and its two derived views. It is built
// once at startup and never modified afterwards; the slices returned by its
// accessors must be treated as read-only.
type Dataset struct {
	Source   string
	LoadedAt time.Time
	Stats    CleanStats

	records    []domain.Record
	mostRecent []domain.Record
	averages   []domain.SiteAverage
}

// New derives the most-recent and average views from cleaned records.
func New(records []domain.Record) *Dataset {
	return &Dataset{
		LoadedAt:   clock.Now(),
		records:    records,
		mostRecent: MostRecent(records),
		averages:   Averages(records),
	}
}

// Load reads, cleans, and aggregates the file at path.
func Load(path string, opt ReadOptions) (*Dataset, error) {
	raw, err := ReadFile(path, opt)
	if err != nil {
		return nil, err
	}
	records, stats, err := Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", raw.Name, err)
	}
	ds := New(records)
	ds.Source = path
	ds.Stats = stats
	return ds, nil
}

// Records returns the full cleaned record set in file order.
func (d *Dataset) Records() []domain.Record { return d.records }

// MostRecent returns the latest record per site in ascending date order.
func (d *Dataset) MostRecent() []domain.Record { return d.mostRecent }

// Averages returns the per-site averages sorted by site name.
func (d *Dataset) Averages() []domain.SiteAverage { return d.averages }

// Sites returns the display names of every site, sorted.
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.averages))
	for i, a := range d.averages {
		out[i] = a.Site
	}
	return out
}

// RecordsForSites returns the records whose site appears in avgs, in file order.
func (d *Dataset) RecordsForSites(avgs []domain.SiteAverage) []domain.Record {
	keep := make(map[string]struct{}, len(avgs))
	for _, a := range avgs {
		keep[a.Site] = struct{}{}
	}
	out := make([]domain.Record, 0, len(d.records))
	for _, r := range d.records {
		if _, ok := keep[r.Site]; ok {
			out = append(out, r)
		}
	}
	return out
}

// withAverages returns a shallow copy of d carrying a replacement average view.
func (d *Dataset) withAverages(avgs []domain.SiteAverage) *Dataset {
	cp := *d
	cp.averages = avgs
	return &cp
}
