package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

var records = []model.CandidateRecord{
	{ID: "TOI-101.01", Period: 3.5, Duration: 2.3, Depth: 850, StarMag: 11.5, Score: 59.4, Label: model.LabelPC},
	{ID: "TOI-102.01", Period: 45, Duration: 12, Depth: 300, StarMag: 13.2, Score: 15.5, Label: model.LabelAPC},
}

func TestDefaultFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "exoplanet_results_20240309_140507.xlsx", DefaultFileName(now))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	assert.Equal(t,
		"id,period,duration,depth,star_mag,score,label\n"+
			"TOI-101.01,3.5,2.3,850,11.5,59.4,PC\n"+
			"TOI-102.01,45,12,300,13.2,15.5,APC\n",
		buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	stats := model.DatasetStats{Total: 2, Mean: 37.45, Median: 37.45, Std: 21.95}
	require.NoError(t, WriteJSON(&buf, records, stats))

	var got struct {
		Data  []map[string]any `json:"data"`
		Stats map[string]any   `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got.Data, 2)
	assert.Equal(t, "PC", got.Data[0]["label"])
	assert.Equal(t, 11.5, got.Data[0]["star_mag"])
	assert.Equal(t, 37.45, got.Stats["mean"])
	assert.Contains(t, got.Stats, "pass_rate")
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil, model.DatasetStats{}))

	assert.Contains(t, buf.String(), `"data": []`)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "TOI-101.01", rows[1][0])
	assert.Equal(t, "PC", rows[1][6])
}

func TestWriteXLSX_NoRecords(t *testing.T) {
	assert.ErrorIs(t, WriteXLSX(&bytes.Buffer{}, nil), ErrNoRecords)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteFile(filepath.Join(dir, "out.csv"), records, model.DatasetStats{}))
	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "TOI-102.01")

	assert.Error(t, WriteFile(filepath.Join(dir, "out.parquet"), records, model.DatasetStats{}))
	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "empty.xlsx"), nil, model.DatasetStats{}), ErrNoRecords)
}
