package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/webitplay/depobill/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	id, number, date, job_type, canceled, hourly_rate,
	client, work_logs, breakdown, expenses,
	notes, subtitle, total, created_at, updated_at
`

// scanInvoice reads an invoice row. The client snapshot, work logs,
// breakdown and expenses live in JSONB columns; the invoice is one document
// the way the interactive flows use it.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var jobType string

	var clientDoc, logsDoc, expensesDoc []byte

	var breakdownDoc []byte

	if err := s.Scan(
		&inv.ID, &inv.Number, &inv.Date, &jobType, &inv.Canceled, &inv.HourlyRate,
		&clientDoc, &logsDoc, &breakdownDoc, &expensesDoc,
		&inv.Notes, &inv.Subtitle, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.JobType = invoice.JobType(jobType)

	if err := json.Unmarshal(clientDoc, &inv.Client); err != nil {
		return nil, fmt.Errorf("decoding client snapshot: %w", err)
	}

	if err := json.Unmarshal(logsDoc, &inv.WorkLogs); err != nil {
		return nil, fmt.Errorf("decoding work logs: %w", err)
	}

	if err := json.Unmarshal(expensesDoc, &inv.Expenses); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}

	if len(breakdownDoc) > 0 {
		var b invoice.ServiceBreakdown
		if err := json.Unmarshal(breakdownDoc, &b); err != nil {
			return nil, fmt.Errorf("decoding breakdown: %w", err)
		}

		inv.Breakdown = &b
	}

	return &inv, nil
}

func encodeDocs(inv *invoice.Invoice) (client, logs, breakdown, expenses []byte, err error) {
	if client, err = json.Marshal(inv.Client); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encoding client snapshot: %w", err)
	}

	if inv.WorkLogs == nil {
		inv.WorkLogs = []invoice.WorkLog{}
	}

	if logs, err = json.Marshal(inv.WorkLogs); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encoding work logs: %w", err)
	}

	if inv.Breakdown != nil {
		if breakdown, err = json.Marshal(inv.Breakdown); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("encoding breakdown: %w", err)
		}
	}

	if inv.Expenses == nil {
		inv.Expenses = []invoice.Expense{}
	}

	if expenses, err = json.Marshal(inv.Expenses); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encoding expenses: %w", err)
	}

	return client, logs, breakdown, expenses, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	client, logs, breakdown, expenses, err := encodeDocs(inv)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO invoices (number, date, job_type, canceled, hourly_rate,
			client, work_logs, breakdown, expenses, notes, subtitle, total,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		inv.Number,
		inv.Date,
		string(inv.JobType),
		inv.Canceled,
		inv.HourlyRate,
		client,
		logs,
		breakdown,
		expenses,
		inv.Notes,
		inv.Subtitle,
		inv.Total,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	switch filter.SortBy {
	case invoice.SortByDateAsc:
		query += " ORDER BY date ASC"
	default:
		query += " ORDER BY number DESC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invs, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	client, logs, breakdown, expenses, err := encodeDocs(inv)
	if err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET job_type = $1, canceled = $2, hourly_rate = $3, client = $4,
			work_logs = $5, breakdown = $6, expenses = $7, notes = $8,
			subtitle = $9, total = $10, updated_at = NOW()
		WHERE id = $11
	`

	_, err = s.db.ExecContext(ctx, query,
		string(inv.JobType),
		inv.Canceled,
		inv.HourlyRate,
		client,
		logs,
		breakdown,
		expenses,
		inv.Notes,
		inv.Subtitle,
		inv.Total,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}

// NextNumber bumps the named counter and returns the new value. The upsert
// runs as a single statement so concurrent creations cannot hand out the
// same invoice number.
func (s *Store) NextNumber(ctx context.Context, counter string) (int, error) {
	query := `
		INSERT INTO counters (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`

	var value int
	if err := s.db.QueryRowContext(ctx, query, counter).Scan(&value); err != nil {
		return 0, fmt.Errorf("incrementing counter %q: %w", counter, err)
	}

	return value, nil
}
