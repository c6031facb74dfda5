package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ExportJSON writes the report as an indented JSON document under dir and
// returns the file path.
func ExportJSON(r *Yearly, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}

// ExportCSV writes the single-row report CSV. Monetary columns are fixed to
// two decimal places; hours keep their natural precision.
func ExportCSV(r *Yearly, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, name+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	records := [][]string{
		{"Year", "Invoices", "TotalHours", "Revenue", "Expenses", "NetIncome"},
		{
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Invoices),
			strconv.FormatFloat(r.TotalHours, 'f', -1, 64),
			fmt.Sprintf("%.2f", r.TotalRevenue),
			fmt.Sprintf("%.2f", r.TotalExpenses),
			fmt.Sprintf("%.2f", r.NetIncome),
		},
	}

	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("writing report rows: %w", err)
	}

	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing report: %w", err)
	}

	return path, nil
}
