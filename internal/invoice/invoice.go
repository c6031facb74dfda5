package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("invoice not found")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrNegativeHours  = errors.New("hours cannot be negative")
	ErrInvalidRate    = errors.New("hourly rate must be greater than zero")
)

// JobType selects which configured hourly rate applies.
type JobType string

const (
	JobTypeInPerson JobType = "In-Person"
	JobTypeRemote   JobType = "Remote"
)

// CancelFeeDescription is the work-log line used when a job is canceled
// and billed at the flat cancellation-hours allowance.
const CancelFeeDescription = "Job Cancelation Fee"

// CounterName is the persisted counter that hands out invoice numbers.
const CounterName = "invoice"

// WorkLog is one billable line of description plus hours.
type WorkLog struct {
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

type Expense struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ServiceBreakdown is the timestamped record of a deposition job's phases.
// Present only on non-canceled, time-tracked invoices.
type ServiceBreakdown struct {
	SetupStart   string  `json:"setupStart"`
	DepoStart    string  `json:"depoStart"`
	DepoEnd      string  `json:"depoEnd"`
	BreakdownEnd string  `json:"breakdownEnd"`
	LunchBreak   float64 `json:"lunchBreak"`
	TotalHours   float64 `json:"totalHours"`
}

// ClientInfo is the billed-to block embedded in an invoice. It is copied
// from the client record at creation time; editing a client afterwards must
// not rewrite past invoices.
type ClientInfo struct {
	Name     string `json:"name"`
	Business string `json:"business"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type Invoice struct {
	ID         uuid.UUID
	Number     int
	Date       time.Time
	Client     ClientInfo
	JobType    JobType
	Canceled   bool
	HourlyRate float64
	WorkLogs   []WorkLog
	Breakdown  *ServiceBreakdown
	Expenses   []Expense
	Notes      string
	Subtitle   string
	Total      float64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Total recomputes the billed amount from scratch: summed work-log hours
// times the hourly rate, plus expenses. Stored totals are always overwritten
// with a full recompute; partial updates drift.
func Total(logs []WorkLog, hourlyRate float64, expenses []Expense) float64 {
	var hours float64
	for _, l := range logs {
		hours += l.Hours
	}

	total := hours * hourlyRate
	for _, e := range expenses {
		total += e.Amount
	}

	return total
}
