package report

import (
	"context"
	"fmt"
	"time"

	"github.com/webitplay/depobill/internal/invoice"
)

type Service struct {
	invoices *invoice.Service
}

func NewService(invoices *invoice.Service) *Service {
	return &Service{invoices: invoices}
}

// Yearly aggregates every invoice whose stored date falls inside the
// calendar year, bounds inclusive. An empty year reports zeroes.
func (s *Service) Yearly(ctx context.Context, year int) (*Yearly, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.Local)

	invs, err := s.invoices.List(ctx, invoice.ListFilter{
		StartDate: &start,
		EndDate:   &end,
		SortBy:    invoice.SortByDateAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("listing invoices for %d: %w", year, err)
	}

	r := &Yearly{Year: year, Invoices: len(invs)}

	for _, inv := range invs {
		r.TotalRevenue += inv.Total

		for _, l := range inv.WorkLogs {
			r.TotalHours += l.Hours
		}

		for _, e := range inv.Expenses {
			r.TotalExpenses += e.Amount
		}
	}

	r.NetIncome = r.TotalRevenue - r.TotalExpenses

	return r, nil
}
