package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

const archiveCSV = "\ufeff# This file was produced by the NASA Exoplanet Archive\n" +
	"# http://exoplanetarchive.ipac.caltech.edu\n" +
	"\n" +
	"toi,pl_orbper,pl_trandurh,pl_trandep,st_tmag\n" +
	"101.01,3.5,2.3,850,11.5\n" +
	"\n" +
	"102.01,10.2,4.1\n"

func TestDecode_CSVArchiveExport(t *testing.T) {
	ds, err := Decode(strings.NewReader(archiveCSV), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"toi", "pl_orbper", "pl_trandurh", "pl_trandep", "st_tmag"}, ds.Headers)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, model.RawRow{"toi": "101.01", "pl_orbper": "3.5", "pl_trandurh": "2.3", "pl_trandep": "850", "st_tmag": "11.5"}, ds.Rows[0])

	_, ok := ds.Rows[1]["st_tmag"]
	assert.False(t, ok, "short rows leave trailing columns absent")
}

func TestDecode_TSV(t *testing.T) {
	ds, err := Decode(strings.NewReader("kepid\tkoi_period\n757450\t8.88\n"), FormatTSV)
	require.NoError(t, err)

	assert.Equal(t, "8.88", ds.Rows[0]["koi_period"])
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(strings.NewReader("# only comments\n\n"), FormatCSV)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestUniqueHeaders(t *testing.T) {
	got := uniqueHeaders([]string{" id ", "mag", "", "mag", "mag.1", "mag"})

	assert.Equal(t, []string{"id", "mag", "Unnamed: 2", "mag.1", "mag.1.1", "mag.2"}, got)
}

func TestDecode_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"kepid", "koi_period", "koi_duration", "koi_depth", "koi_kepmag"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{10797460, 9.488, 2.9575, 0.0008, 15.347}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, err := Decode(buf, FormatXLSX)
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "10797460", ds.Rows[0]["kepid"])
	assert.Equal(t, "0.0008", ds.Rows[0]["koi_depth"])
}

func TestDecode_HTML(t *testing.T) {
	page := `<html><body>
<table><tr><td>layout</td></tr></table>
<table>
  <thead><tr><th>TOI</th><th>Period</th><th>Duration</th><th>Depth</th><th>Tmag</th></tr></thead>
  <tbody>
    <tr><td>101.01</td><td>3.5</td><td>2.3</td><td>850</td><td> 11.5 </td></tr>
  </tbody>
</table></body></html>`

	ds, err := Decode(strings.NewReader(page), FormatHTML)
	require.NoError(t, err)

	assert.Equal(t, []string{"TOI", "Period", "Duration", "Depth", "Tmag"}, ds.Headers)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "11.5", ds.Rows[0]["Tmag"])
}

func TestDecode_HTMLDataTable(t *testing.T) {
	page := `<table>
  <tr><th>TOI</th><th>Period</th></tr>
  <tr><td>101.01</td><td>3.5</td></tr>
  <tr><td>102.01</td><td><table><tr><td>nested</td></tr></table>10.2</td></tr>
</table>`

	ds, err := Decode(strings.NewReader(page), FormatHTML)
	require.NoError(t, err)

	assert.Equal(t, []string{"TOI", "Period"}, ds.Headers)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "3.5", ds.Rows[0]["Period"])
}

func TestDecode_HTMLWithoutTable(t *testing.T) {
	_, err := Decode(strings.NewReader("<p>nothing</p>"), FormatHTML)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toi.csv")
	require.NoError(t, os.WriteFile(path, []byte(archiveCSV), 0o644))

	ds, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "toi.csv", ds.Name)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "legacy.xls"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
