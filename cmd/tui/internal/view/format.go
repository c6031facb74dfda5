package view

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dbTimeout = 5 * time.Second

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a dollar amount with thousands grouping.
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

// FormatHours renders an hour count with its natural precision.
func FormatHours(v float64) string {
	return fmt.Sprintf("%gh", v)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
