package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// Column names for the non-measurement fields.
const (
	ColSiteName = "SiteName"
	ColDate     = "Date"
	ColLat      = "Lat"
	ColLong     = "Long"
)

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006/01/02",
	"1/2/06",
	"01-02-06",
	"2-Jan-2006",
	"02-Jan-06",
}

// DateError reports a Date cell that matches none of the accepted layouts.
type DateError struct {
	Row   int // 1-based data row, header excluded
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("row %d: unparseable date %q", e.Row, e.Value)
}

// CleanStats summarizes what cleaning did to the raw values.
type CleanStats struct {
	Rows       int
	Missing    int // values blank or unparseable before imputation
	Imputed    int // missing values replaced by their site mean
	Unrepaired int // missing values whose site had no valid value for the field
}

// numeric column slots: the nine fields followed by Lat and Long.
const (
	slotLat  = domain.NumFields
	slotLong = domain.NumFields + 1
	numSlots = domain.NumFields + 2
)

type row struct {
	rawSite string
	date    time.Time
	nums    [numSlots]float64
}

// Clean converts a raw table into measurement records.
//
// Measurement, Lat and Long cells that do not parse become missing and are
// then replaced by the mean of the same column over the rows sharing the raw
// site name. Site names are normalized after imputation. A date that cannot
// be parsed aborts cleaning with a *DateError.
func Clean(t *RawTable) ([]domain.Record, CleanStats, error) {
	names := []string{ColSiteName, ColDate, ColLat, ColLong}
	for _, f := range domain.Fields() {
		names = append(names, f.Column())
	}
	cols, err := t.columns(names...)
	if err != nil {
		return nil, CleanStats{}, err
	}
	siteCol, dateCol := cols[0], cols[1]
	numCols := make([]int, numSlots)
	for i := range domain.NumFields {
		numCols[i] = cols[4+i]
	}
	numCols[slotLat], numCols[slotLong] = cols[2], cols[3]

	stats := CleanStats{Rows: len(t.Rows)}
	rows := make([]row, len(t.Rows))
	for i, raw := range t.Rows {
		dateStr := cell(raw, dateCol)
		date, ok := parseDate(dateStr)
		if !ok {
			return nil, stats, &DateError{Row: i + 1, Value: dateStr}
		}
		r := row{rawSite: cell(raw, siteCol), date: date}
		for s, c := range numCols {
			v, ok := parseNumber(cell(raw, c))
			if !ok {
				stats.Missing++
			}
			r.nums[s] = v
		}
		rows[i] = r
	}

	impute(rows, &stats)

	out := make([]domain.Record, len(rows))
	for i, r := range rows {
		rec := domain.Record{
			Site:     domain.NormalizeSiteName(r.rawSite),
			RawSite:  r.rawSite,
			Date:     r.date,
			Year:     strconv.Itoa(r.date.Year()),
			Position: domain.Position{Lat: r.nums[slotLat], Long: r.nums[slotLong]},
		}
		copy(rec.Values[:], r.nums[:domain.NumFields])
		out[i] = rec
	}
	return out, stats, nil
}

// impute fills NaN slots with the per-raw-site mean of the slot.
func impute(rows []row, stats *CleanStats) {
	groups := make(map[string][]int)
	for i, r := range rows {
		groups[r.rawSite] = append(groups[r.rawSite], i)
	}

	for _, members := range groups {
		for s := range numSlots {
			var m mean
			for _, i := range members {
				m.add(rows[i].nums[s])
			}
			fill, ok := m.value()
			for _, i := range members {
				if !math.IsNaN(rows[i].nums[s]) {
					continue
				}
				if !ok {
					stats.Unrepaired++
					continue
				}
				rows[i].nums[s] = fill
				stats.Imputed++
			}
		}
	}
}

// parseNumber parses a measurement cell. Blank, textual, and non-finite
// values are reported as missing (NaN, false).
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return math.NaN(), false
	}
	return v, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return wallClock(t), true
		}
	}
	return time.Time{}, false
}

// wallClock keeps the calendar date and time as written and drops any UTC
// offset, so an offset never moves a reading to another day or year.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// mean is a running arithmetic mean that skips NaN. Updating with
// m += (x-m)/n keeps the result bit-identical to x when every input equals x,
// so averaged coordinates still match the rows they came from.
type mean struct {
	n int
	m float64
}

func (a *mean) add(x float64) {
	if math.IsNaN(x) {
		return
	}
	a.n++
	a.m += (x - a.m) / float64(a.n)
}

func (a *mean) value() (float64, bool) {
	if a.n == 0 {
		return math.NaN(), false
	}
	return a.m, true
}
