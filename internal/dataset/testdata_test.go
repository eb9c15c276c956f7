package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const header = "SiteName,Date,Lat,Long,Temp,Salinity,DO,DO_sat,pH,Turbidity,TotalN,TotalP,Entero"

// sampleCSV covers three regions, a missing pH, unparseable lab values, a
// site with no valid Entero readings, and two raw names sharing a display name.
const sampleCSV = header + `
Kona Beach,2023-01-10,19.64,-155.99,25.1,34.2,6.5,98,7.1,0.8,120,10,5
Kona Beach,2023-03-15,19.64,-155.99,25.7,34.0,6.7,99,7.3,1.1,110,12,<1
Kona Beach,2023-02-20,19.64,-155.99,25.3,,6.6,97,,0.9,115,11,NA
Wailoa Park,2023-01-12,19.72,-155.08,22.0,20.5,7.0,95,7.9,3.2,300,25,
Wailoa Park,2023-01-12,19.72,-155.08,22.4,21.5,7.2,96,7.8,3.0,310,24,
Spencer Beach Park,2022-12-01,20.02,-155.82,24.5,34.8,6.9,101,8.0,0.5,90,8,2
Spencer Beach Park,2023-06-01,20.02,-155.82,25.5,34.6,6.8,100,8.1,0.6,95,9,4
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func sampleTable(t *testing.T) *RawTable {
	t.Helper()
	tbl, err := ReadDelimited(strings.NewReader(sampleCSV), ',')
	require.NoError(t, err)
	return tbl
}
