package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/webitplay/depobill/internal/settings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)

	// NextNumber increments the named counter and returns the new value in
	// one atomic step. Two overlapping callers never see the same number.
	NextNumber(ctx context.Context, counter string) (int, error)
}

type SortBy string

const (
	SortByNumberDesc SortBy = "number_desc"
	SortByDateAsc    SortBy = "date_asc"
)

type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    SortBy
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams carries already-typed field values collected by the caller
// (TUI wizard or API handler); no prompting happens here.
type CreateParams struct {
	Client      ClientInfo
	JobType     JobType
	Canceled    bool
	Description string
	SetupStart  string
	DepoEnd     string
	LunchBreak  float64
	Expenses    []Expense
	Notes       string
	Subtitle    string
}

// Create assembles, numbers, totals and persists a new invoice. Canceled
// jobs bill the flat cancellation-hours allowance; everything else runs the
// deposition time arithmetic. Nothing is persisted when any step fails.
func (s *Service) Create(ctx context.Context, cfg *settings.Settings, params CreateParams) (*Invoice, error) {
	if cfg == nil {
		return nil, settings.ErrNotConfigured
	}

	if err := cfg.ValidateBilling(); err != nil {
		return nil, err
	}

	rate := cfg.HourlyRemote
	if params.JobType == JobTypeInPerson {
		rate = cfg.HourlyInPerson
	}

	for _, e := range params.Expenses {
		if e.Amount < 0 {
			return nil, fmt.Errorf("expense %q: %w", e.Description, ErrNegativeAmount)
		}
	}

	var (
		logs      []WorkLog
		breakdown *ServiceBreakdown
	)

	if params.Canceled {
		if cfg.CancelHours <= 0 {
			return nil, settings.ErrCancelHoursUnset
		}

		logs = []WorkLog{{Description: CancelFeeDescription, Hours: cfg.CancelHours}}
	} else {
		b, err := BuildBreakdown(params.JobType, params.SetupStart, params.DepoEnd, params.LunchBreak)
		if err != nil {
			return nil, err
		}

		breakdown = b
		logs = []WorkLog{{Description: depositionLabel(params.Description), Hours: b.TotalHours}}
	}

	number, err := s.repo.NextNumber(ctx, CounterName)
	if err != nil {
		return nil, fmt.Errorf("assigning invoice number: %w", err)
	}

	inv := &Invoice{
		Number:     number,
		Date:       time.Now(),
		Client:     params.Client,
		JobType:    params.JobType,
		Canceled:   params.Canceled,
		HourlyRate: rate,
		WorkLogs:   logs,
		Breakdown:  breakdown,
		Expenses:   params.Expenses,
		Notes:      params.Notes,
		Subtitle:   params.Subtitle,
	}
	inv.Total = Total(inv.WorkLogs, inv.HourlyRate, inv.Expenses)

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

func depositionLabel(description string) string {
	if description == "" {
		return "Total Deposition Time"
	}

	return "Total Deposition Time - " + description
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

// EditCommand mutates one invoice field. Edit applies the commands in order
// and always finishes with a full total recompute before saving, so a
// command never has to reason about derived state.
type EditCommand interface {
	apply(inv *Invoice) error
}

type SetSubtitle string

func (c SetSubtitle) apply(inv *Invoice) error {
	inv.Subtitle = string(c)
	return nil
}

type SetNotes string

func (c SetNotes) apply(inv *Invoice) error {
	inv.Notes = string(c)
	return nil
}

type SetJobType JobType

func (c SetJobType) apply(inv *Invoice) error {
	jt := JobType(c)
	if jt != JobTypeInPerson && jt != JobTypeRemote {
		return fmt.Errorf("unknown job type %q", string(c))
	}

	inv.JobType = jt

	return nil
}

type SetHourlyRate float64

func (c SetHourlyRate) apply(inv *Invoice) error {
	if c <= 0 {
		return ErrInvalidRate
	}

	inv.HourlyRate = float64(c)

	return nil
}

type SetWorkLogs []WorkLog

func (c SetWorkLogs) apply(inv *Invoice) error {
	for _, l := range c {
		if l.Hours < 0 {
			return fmt.Errorf("work log %q: %w", l.Description, ErrNegativeHours)
		}
	}

	inv.WorkLogs = []WorkLog(c)

	return nil
}

type SetExpenses []Expense

func (c SetExpenses) apply(inv *Invoice) error {
	for _, e := range c {
		if e.Amount < 0 {
			return fmt.Errorf("expense %q: %w", e.Description, ErrNegativeAmount)
		}
	}

	inv.Expenses = []Expense(c)

	return nil
}

// Edit loads the invoice, applies the commands and persists the result with
// a freshly recomputed total. A failing command aborts the whole edit;
// nothing is saved.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, cmds ...EditCommand) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, c := range cmds {
		if err := c.apply(inv); err != nil {
			return nil, err
		}
	}

	inv.Total = Total(inv.WorkLogs, inv.HourlyRate, inv.Expenses)

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("updating invoice: %w", err)
	}

	return inv, nil
}
