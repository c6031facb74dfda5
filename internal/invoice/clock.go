package invoice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrBadClock            = errors.New("invalid time, expected HH:MM")
	ErrNonPositiveDuration = errors.New("total hours must be greater than zero")
)

// Minutes a deposition setup runs before the deposition itself starts.
const (
	setupLeadInPerson = 60
	setupLeadRemote   = 30
	breakdownTail     = 30
)

// ParseClock converts an "HH:MM" wall-clock string into minutes since
// midnight. Both parts must be numeric.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
// Values past midnight wrap modulo 24h.
func FormatClock(mins int) string {
	mins %= 24 * 60
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// BuildBreakdown derives the full deposition schedule from the two
// user-supplied time points. The deposition starts one setup lead after
// setup begins, breakdown runs half an hour past the deposition end, and
// the billed hours span setup start to breakdown end minus the lunch break.
func BuildBreakdown(jobType JobType, setupStart, depoEnd string, lunchBreak float64) (*ServiceBreakdown, error) {
	setup, err := ParseClock(setupStart)
	if err != nil {
		return nil, err
	}

	depo, err := ParseClock(depoEnd)
	if err != nil {
		return nil, err
	}

	if lunchBreak < 0 {
		return nil, fmt.Errorf("lunch break: %w", ErrNegativeHours)
	}

	lead := setupLeadRemote
	if jobType == JobTypeInPerson {
		lead = setupLeadInPerson
	}

	end := depo + breakdownTail

	totalHours := round2(float64(end-setup)/60 - lunchBreak)
	if totalHours <= 0 {
		return nil, ErrNonPositiveDuration
	}

	return &ServiceBreakdown{
		SetupStart:   FormatClock(setup),
		DepoStart:    FormatClock(setup + lead),
		DepoEnd:      FormatClock(depo),
		BreakdownEnd: FormatClock(end),
		LunchBreak:   lunchBreak,
		TotalHours:   totalHours,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
