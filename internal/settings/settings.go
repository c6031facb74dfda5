package settings

import "errors"

var (
	ErrNotConfigured    = errors.New("settings are not configured")
	ErrRatesUnset       = errors.New("hourly rates are not set")
	ErrCancelHoursUnset = errors.New("cancellation hours are not set")
)

// Freelancer is the issuer profile printed on every invoice.
type Freelancer struct {
	Name     string `json:"name"`
	Business string `json:"business"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Website  string `json:"website"`
}

// Settings is the single process-wide billing configuration, persisted as
// one JSON document.
type Settings struct {
	Freelancer     Freelancer `json:"freelancer"`
	HourlyInPerson float64    `json:"hourlyInPerson"`
	HourlyRemote   float64    `json:"hourlyRemote"`
	CancelHours    float64    `json:"cancelHours"`
	Services       []string   `json:"services"`
}

// ValidateBilling reports whether invoices can be created at all. Both
// hourly rates must be set; an absent rate blocks creation rather than
// silently defaulting.
func (s *Settings) ValidateBilling() error {
	if s.HourlyInPerson <= 0 || s.HourlyRemote <= 0 {
		return ErrRatesUnset
	}

	return nil
}
