package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webitplay/depobill/internal/report"
)

func sampleReport() *report.Yearly {
	return &report.Yearly{
		Year:          2024,
		Invoices:      2,
		TotalHours:    7,
		TotalRevenue:  700,
		TotalExpenses: 50,
		NetIncome:     650,
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := report.ExportCSV(sampleReport(), dir, "report-2024")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report-2024.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "Year,Invoices,TotalHours,Revenue,Expenses,NetIncome\n" +
		"2024,2,7,700.00,50.00,650.00\n"
	assert.Equal(t, want, string(data))
}

func TestExportCSV_FractionalHours(t *testing.T) {
	rep := sampleReport()
	rep.TotalHours = 7.25

	path, err := report.ExportCSV(rep, t.TempDir(), "report")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024,2,7.25,700.00,50.00,650.00")
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()

	path, err := report.ExportJSON(sampleReport(), dir, "report-2024")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report-2024.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got report.Yearly
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *sampleReport(), got)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range []string{"year", "invoices", "totalHours", "totalRevenue", "totalExpenses", "netIncome"} {
		assert.Contains(t, doc, key)
	}
}

func TestExport_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	_, err := report.ExportJSON(sampleReport(), dir, "report")
	require.NoError(t, err)

	_, err = report.ExportCSV(sampleReport(), dir, "report")
	require.NoError(t, err)
}
