package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/webitplay/depobill/internal/invoice"
	"github.com/webitplay/depobill/internal/report"
)

func TestService_Yearly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invs := []*invoice.Invoice{
		{
			Number:   1,
			Total:    450,
			WorkLogs: []invoice.WorkLog{{Description: "Total Deposition Time", Hours: 4}},
			Expenses: []invoice.Expense{{Description: "Parking", Amount: 25}},
		},
		{
			Number:   2,
			Total:    250,
			WorkLogs: []invoice.WorkLog{{Description: "Total Deposition Time", Hours: 3}},
			Expenses: []invoice.Expense{{Description: "Tolls", Amount: 25}},
		},
	}

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		ListInvoices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
			require.NotNil(t, filter.StartDate)
			require.NotNil(t, filter.EndDate)
			assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), *filter.StartDate)
			assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.Local), *filter.EndDate)
			assert.Equal(t, invoice.SortByDateAsc, filter.SortBy)

			return invs, nil
		})

	svc := report.NewService(invoice.NewService(repo))

	got, err := svc.Yearly(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, &report.Yearly{
		Year:          2024,
		Invoices:      2,
		TotalHours:    7,
		TotalRevenue:  700,
		TotalExpenses: 50,
		NetIncome:     650,
	}, got)
}

func TestService_Yearly_EmptyYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		ListInvoices(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	svc := report.NewService(invoice.NewService(repo))

	got, err := svc.Yearly(context.Background(), 1999)
	require.NoError(t, err)

	assert.Equal(t, &report.Yearly{Year: 1999}, got)
}

func TestService_Yearly_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		ListInvoices(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db error"))

	svc := report.NewService(invoice.NewService(repo))

	_, err := svc.Yearly(context.Background(), 2024)
	assert.Error(t, err)
}
