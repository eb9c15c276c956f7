package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_KonaPHImputation(t *testing.T) {
	in := header + `
Kona Beach,2023-01-01,19.64,-155.99,25,34,6.5,98,7.1,1,100,10,5
Kona Beach,2023-02-01,19.64,-155.99,25,34,6.5,98,7.3,1,100,10,5
Kona Beach,2023-03-01,19.64,-155.99,25,34,6.5,98,,1,100,10,5
`
	tbl, err := ReadDelimited(strings.NewReader(in), ',')
	require.NoError(t, err)

	records, stats, err := Clean(tbl)
	require.NoError(t, err)
	require.Len(t, records, 3)

	ph, ok := records[2].Value(domain.PH)
	require.True(t, ok)
	assert.InDelta(t, 7.2, ph, 1e-9)
	assert.Equal(t, "Kona ", records[2].Site)
	assert.Equal(t, "Kona Beach", records[2].RawSite)
	assert.Equal(t, 1, stats.Missing)
	assert.Equal(t, 1, stats.Imputed)
	assert.Zero(t, stats.Unrepaired)
}

func TestClean_StrayQuotesAreNotFatal(t *testing.T) {
	in := header + `
Kona Beach,2023-01-01,19.64,-155.99,25,34,6.5,98,7.1,1,100,10,5
Kona Beach,2023-02-01,19.64,-155.99,25,34,6.5,98,7.3,1,100,10,5
Kona Beach,2023-03-01,19.64,-155.99,25,34,6.5,98,7.1",1,100,10,5
Kona "Old" Pier,2023-03-01,19.64,-155.99,25,34,6.5,98,7.0,1,100,10,5
`
	tbl, err := ReadDelimited(strings.NewReader(in), ',')
	require.NoError(t, err)

	records, stats, err := Clean(tbl)
	require.NoError(t, err)
	require.Len(t, records, 4)

	ph, ok := records[2].Value(domain.PH)
	require.True(t, ok)
	assert.InDelta(t, 7.2, ph, 1e-9)
	assert.Equal(t, 1, stats.Imputed)
	assert.Equal(t, `Kona "Old" Pier`, records[3].Site)
}

func TestClean_SampleData(t *testing.T) {
	records, stats, err := Clean(sampleTable(t))
	require.NoError(t, err)
	require.Len(t, records, 7)

	t.Run("coerces unparseable values and imputes per site", func(t *testing.T) {
		// Kona Entero: 5, "<1", "NA" -> only 5 is valid.
		for _, r := range records[:3] {
			v, ok := r.Value(domain.Entero)
			require.True(t, ok)
			assert.Equal(t, 5.0, v)
		}
		sal, ok := records[2].Value(domain.Salinity)
		require.True(t, ok)
		assert.InDelta(t, 34.1, sal, 1e-9)
	})

	t.Run("site with no valid values stays missing", func(t *testing.T) {
		for _, r := range records[3:5] {
			_, ok := r.Value(domain.Entero)
			assert.False(t, ok)
		}
		assert.Equal(t, 2, stats.Unrepaired)
	})

	t.Run("missing count is zero unless every value was missing", func(t *testing.T) {
		bySite := map[string][]domain.Record{}
		for _, r := range records {
			bySite[r.Site] = append(bySite[r.Site], r)
		}
		for site, rows := range bySite {
			for _, f := range domain.Fields() {
				missing := 0
				for _, r := range rows {
					if _, ok := r.Value(f); !ok {
						missing++
					}
				}
				if missing != 0 {
					assert.Equal(t, len(rows), missing, "site %q field %s partially missing", site, f)
				}
			}
		}
	})

	t.Run("names drop Beach and Park", func(t *testing.T) {
		for _, r := range records {
			assert.NotContains(t, r.Site, "Beach")
			assert.NotContains(t, r.Site, "Park")
		}
		assert.Equal(t, "Spencer  ", records[5].Site)
		assert.Equal(t, "Wailoa ", records[3].Site)
	})

	t.Run("date and year", func(t *testing.T) {
		assert.Equal(t, time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC), records[5].Date)
		assert.Equal(t, "2022", records[5].Year)
		assert.Equal(t, "2023", records[6].Year)
	})

	assert.Equal(t, 7, stats.Rows)
	assert.Equal(t, 6, stats.Missing)
	assert.Equal(t, 4, stats.Imputed)
}

func TestClean_ImputesByRawSiteName(t *testing.T) {
	// "Kona Beach" and "Kona Park" share the display name "Kona " but are
	// imputed independently.
	in := header + `
Kona Beach,2023-01-01,19.64,-155.99,20,34,6.5,98,7,1,100,10,5
Kona Beach,2023-01-02,19.64,-155.99,,34,6.5,98,7,1,100,10,5
Kona Park,2023-01-03,19.65,-155.98,30,34,6.5,98,7,1,100,10,5
`
	tbl, err := ReadDelimited(strings.NewReader(in), ',')
	require.NoError(t, err)
	records, _, err := Clean(tbl)
	require.NoError(t, err)

	temp, _ := records[1].Value(domain.Temp)
	assert.Equal(t, 20.0, temp)
	assert.Equal(t, records[0].Site, records[2].Site)
}

func TestClean_ImputesPosition(t *testing.T) {
	in := header + `
Hilo Bay,2023-01-01,19.72,-155.08,20,34,6.5,98,7,1,100,10,5
Hilo Bay,2023-01-02,,-155.08,20,34,6.5,98,7,1,100,10,5
`
	tbl, err := ReadDelimited(strings.NewReader(in), ',')
	require.NoError(t, err)
	records, _, err := Clean(tbl)
	require.NoError(t, err)
	assert.Equal(t, 19.72, records[1].Position.Lat)
}

func TestClean_BadDateIsFatal(t *testing.T) {
	in := header + `
Kona Beach,2023-01-01,19.64,-155.99,25,34,6.5,98,7.1,1,100,10,5
Kona Beach,sometime,19.64,-155.99,25,34,6.5,98,7.1,1,100,10,5
`
	tbl, err := ReadDelimited(strings.NewReader(in), ',')
	require.NoError(t, err)

	_, _, err = Clean(tbl)
	require.Error(t, err)

	var dateErr *DateError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, 2, dateErr.Row)
	assert.Equal(t, "sometime", dateErr.Value)
}

func TestClean_MissingColumn(t *testing.T) {
	tbl, err := ReadDelimited(strings.NewReader("SiteName,Date,Lat,Long,Temp\nA,2023-01-01,1,2,3\n"), ',')
	require.NoError(t, err)

	_, _, err = Clean(tbl)
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Salinity")
}

func TestParseDate(t *testing.T) {
	want := time.Date(2023, 4, 7, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2023-04-07", "4/7/2023", "04/07/2023", "2023/04/07", "4/7/23", "7-Apr-2023", " 2023-04-07 "} {
		t.Run(s, func(t *testing.T) {
			got, ok := parseDate(s)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}

	t.Run("offset keeps the written calendar date", func(t *testing.T) {
		got, ok := parseDate("2023-01-01T00:30:00+10:00")
		require.True(t, ok)
		assert.Equal(t, time.Date(2023, 1, 1, 0, 30, 0, 0, time.UTC), got)
	})

	_, ok := parseDate("")
	assert.False(t, ok)
	_, ok = parseDate("2023-13-45")
	assert.False(t, ok)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"7.2", 7.2, true},
		{" 12 ", 12, true},
		{"-155.99", -155.99, true},
		{"", 0, false},
		{"NA", 0, false},
		{"<0.5", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			} else {
				assert.True(t, math.IsNaN(got))
			}
		})
	}
}

func TestMean_IdenticalValuesAreExact(t *testing.T) {
	var m mean
	for range 7 {
		m.add(-155.0832)
	}
	m.add(math.NaN())
	got, ok := m.value()
	require.True(t, ok)
	assert.Equal(t, -155.0832, got)
}
