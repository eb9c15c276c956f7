// Command validate loads a water-quality dataset through the dashboard's
// cleaner and verifies the integrity of the cleaned table and its derived
// views: imputation coverage, site-name normalization, most-recent
// uniqueness, and average correctness. It exits 1 if any phase fails.
//
// Usage:
//
//	go run ./cmd/validate -data hwo_data_1223.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/dataset"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

const tolerance = 1e-9

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("data", "hwo_data_1223.csv", "dataset file (.csv, .tsv, or .xlsx)")
	sheet := flag.String("sheet", "", "worksheet name for .xlsx input (default first sheet)")
	flag.Parse()

	ds, err := dataset.Load(*path, dataset.ReadOptions{Sheet: *sheet})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		os.Exit(1)
	}
	if code := run(os.Stdout, ds); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, ds *dataset.Dataset) int {
	fmt.Fprintln(w, "=== Water Quality Integrity Validation ===")
	fmt.Fprintln(w)

	phases := []*phase{
		validateImputation(ds.Records()),
		validateSiteNames(ds.Records()),
		validateMostRecent(ds.Records(), ds.MostRecent()),
		validateAverages(ds.Records(), ds.Averages()),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	st := ds.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d, sites: %d, missing: %d, imputed: %d, unrepaired: %d\n",
		len(ds.Records()), len(ds.Averages()), st.Missing, st.Imputed, st.Unrepaired)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// validateImputation checks that within each raw site a field is either
// present on every record or missing on every record. Anything else means a
// gap survived imputation even though the site had values to average.
func validateImputation(records []domain.Record) *phase {
	p := &phase{name: "Imputation coverage"}

	type counts struct{ present, missing int }
	bySite := map[string]*[domain.NumFields]counts{}
	var order []string
	for _, r := range records {
		c, ok := bySite[r.RawSite]
		if !ok {
			c = &[domain.NumFields]counts{}
			bySite[r.RawSite] = c
			order = append(order, r.RawSite)
		}
		for _, f := range domain.Fields() {
			if _, ok := r.Value(f); ok {
				c[f].present++
			} else {
				c[f].missing++
			}
		}
	}

	for _, site := range order {
		for _, f := range domain.Fields() {
			c := bySite[site][f]
			if c.present > 0 && c.missing > 0 {
				p.errorf("%q %s: %d values still missing beside %d present", site, f.Column(), c.missing, c.present)
			}
		}
	}
	return p
}

func validateSiteNames(records []domain.Record) *phase {
	p := &phase{name: "Site name normalization"}
	for i, r := range records {
		if strings.Contains(r.Site, "Beach") || strings.Contains(r.Site, "Park") {
			p.errorf("record %d: cleaned name %q still contains Beach or Park", i, r.Site)
		}
		if want := domain.NormalizeSiteName(r.RawSite); r.Site != want {
			p.errorf("record %d: name %q, want %q from %q", i, r.Site, want, r.RawSite)
		}
	}
	return p
}

func validateMostRecent(records, latest []domain.Record) *phase {
	p := &phase{name: "Most-recent view"}

	maxDate := map[string]time.Time{}
	for _, r := range records {
		if d, ok := maxDate[r.Site]; !ok || r.Date.After(d) {
			maxDate[r.Site] = r.Date
		}
	}

	seen := map[string]bool{}
	for i, r := range latest {
		if seen[r.Site] {
			p.errorf("site %q appears more than once", r.Site)
		}
		seen[r.Site] = true
		if want := maxDate[r.Site]; !r.Date.Equal(want) {
			p.errorf("site %q: most recent date %s, want %s", r.Site, r.Date.Format(time.DateOnly), want.Format(time.DateOnly))
		}
		if i > 0 && r.Date.Before(latest[i-1].Date) {
			p.errorf("site %q out of date order", r.Site)
		}
	}
	if len(seen) != len(maxDate) {
		p.errorf("%d sites in view, want %d", len(seen), len(maxDate))
	}
	return p
}

func validateAverages(records []domain.Record, avgs []domain.SiteAverage) *phase {
	p := &phase{name: "Average view"}

	type sums struct {
		n      int
		sum    [domain.NumFields]float64
		counts [domain.NumFields]int
	}
	bySite := map[string]*sums{}
	for _, r := range records {
		s, ok := bySite[r.Site]
		if !ok {
			s = &sums{}
			bySite[r.Site] = s
		}
		s.n++
		for _, f := range domain.Fields() {
			if v, ok := r.Value(f); ok {
				s.sum[f] += v
				s.counts[f]++
			}
		}
	}

	if len(avgs) != len(bySite) {
		p.errorf("%d averages, want %d", len(avgs), len(bySite))
	}
	for _, a := range avgs {
		s, ok := bySite[a.Site]
		if !ok {
			p.errorf("average for unknown site %q", a.Site)
			continue
		}
		if a.Count != s.n {
			p.errorf("site %q: count %d, want %d", a.Site, a.Count, s.n)
		}
		for _, f := range domain.Fields() {
			got, present := a.Value(f)
			if s.counts[f] == 0 {
				if present {
					p.errorf("site %q %s: average %v, want missing", a.Site, f.Column(), got)
				}
				continue
			}
			want := s.sum[f] / float64(s.counts[f])
			if !present || math.Abs(got-want) > tolerance*math.Max(1, math.Abs(want)) {
				p.errorf("site %q %s: average %v, want %v", a.Site, f.Column(), got, want)
			}
		}
	}
	return p
}
