package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/webitplay/depobill/internal/invoice"
)

type invoiceResponse struct {
	ID         uuid.UUID                 `json:"id"`
	Number     int                       `json:"number"`
	Date       time.Time                 `json:"date"`
	Client     invoice.ClientInfo        `json:"client"`
	JobType    invoice.JobType           `json:"job_type"`
	Canceled   bool                      `json:"canceled"`
	HourlyRate float64                   `json:"hourly_rate"`
	WorkLogs   []invoice.WorkLog         `json:"work_logs"`
	Breakdown  *invoice.ServiceBreakdown `json:"breakdown,omitempty"`
	Expenses   []invoice.Expense         `json:"expenses"`
	Notes      string                    `json:"notes,omitempty"`
	Subtitle   string                    `json:"subtitle,omitempty"`
	Total      float64                   `json:"total"`
	PDFPath    string                    `json:"pdf_path,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  *time.Time                `json:"updated_at,omitempty"`
}

func toResponse(inv *invoice.Invoice, pdfPath string) invoiceResponse {
	return invoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		Date:       inv.Date,
		Client:     inv.Client,
		JobType:    inv.JobType,
		Canceled:   inv.Canceled,
		HourlyRate: inv.HourlyRate,
		WorkLogs:   inv.WorkLogs,
		Breakdown:  inv.Breakdown,
		Expenses:   inv.Expenses,
		Notes:      inv.Notes,
		Subtitle:   inv.Subtitle,
		Total:      inv.Total,
		PDFPath:    pdfPath,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
}

func toResponseList(invs []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv, "")
	}

	return resp
}
