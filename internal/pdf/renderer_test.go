package pdf_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webitplay/depobill/internal/invoice"
	"github.com/webitplay/depobill/internal/pdf"
	"github.com/webitplay/depobill/internal/settings"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "Invoice-00042.pdf", pdf.Filename(42))
	assert.Equal(t, "Invoice-12345.pdf", pdf.Filename(12345))
}

func TestRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	r := pdf.NewRenderer(dir)

	inv := &invoice.Invoice{
		Number:  7,
		Date:    time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		JobType: invoice.JobTypeInPerson,
		Client: invoice.ClientInfo{
			Name:     "Acme Legal",
			Business: "Acme Legal LLP",
			Address:  "1 Court St",
			Phone:    "555-0100",
			Email:    "billing@acme.test",
		},
		HourlyRate: 150,
		Subtitle:   "Smith v. Jones",
		WorkLogs:   []invoice.WorkLog{{Description: "Total Deposition Time", Hours: 4}},
		Breakdown: &invoice.ServiceBreakdown{
			SetupStart:   "08:00",
			DepoStart:    "09:00",
			DepoEnd:      "12:00",
			BreakdownEnd: "12:30",
			LunchBreak:   0.5,
			TotalHours:   4,
		},
		Expenses: []invoice.Expense{{Description: "Parking", Amount: 25}},
		Notes:    "Net 30",
		Total:    625,
	}

	issuer := settings.Freelancer{
		Name:     "Pat Reporter",
		Business: "Reporter Services LLC",
		Email:    "pat@reporter.test",
		Phone:    "555-0199",
	}

	path, err := r.Render(inv, issuer)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Invoice-00007.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderer_Render_MinimalInvoice(t *testing.T) {
	r := pdf.NewRenderer(t.TempDir())

	inv := &invoice.Invoice{
		Number:     1,
		Date:       time.Now(),
		JobType:    invoice.JobTypeRemote,
		Canceled:   true,
		HourlyRate: 100,
		WorkLogs:   []invoice.WorkLog{{Description: invoice.CancelFeeDescription, Hours: 3}},
		Total:      300,
	}

	path, err := r.Render(inv, settings.Freelancer{Business: "Reporter Services LLC"})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
