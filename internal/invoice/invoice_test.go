package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webitplay/depobill/internal/invoice"
)

func TestTotal(t *testing.T) {
	logs := []invoice.WorkLog{
		{Description: "Total Deposition Time", Hours: 4},
		{Description: "Transcript Review", Hours: 1.5},
	}
	expenses := []invoice.Expense{
		{Description: "Parking", Amount: 25},
		{Description: "Tolls", Amount: 10.50},
	}

	t.Run("SumsHoursTimesRatePlusExpenses", func(t *testing.T) {
		got := invoice.Total(logs, 100, expenses)
		assert.Equal(t, 5.5*100+35.50, got)
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		reversedLogs := []invoice.WorkLog{logs[1], logs[0]}
		reversedExpenses := []invoice.Expense{expenses[1], expenses[0]}

		assert.Equal(t,
			invoice.Total(logs, 100, expenses),
			invoice.Total(reversedLogs, 100, reversedExpenses),
		)
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := invoice.Total(logs, 100, expenses)
		second := invoice.Total(logs, 100, expenses)

		assert.Equal(t, first, second)
	})

	t.Run("EmptyInputsAreZero", func(t *testing.T) {
		assert.Zero(t, invoice.Total(nil, 100, nil))
	})

	t.Run("ExpensesOnlyIgnoreRate", func(t *testing.T) {
		assert.Equal(t, 35.50, invoice.Total(nil, 100, expenses))
	})
}
