package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webitplay/depobill/internal/invoice"
)

func TestParseClock(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int
		wantErr bool
	}

	tests := []testCase{
		{name: "MorningStart", input: "08:00", want: 480},
		{name: "Midnight", input: "00:00", want: 0},
		{name: "EndOfDay", input: "23:59", want: 1439},
		{name: "Noon", input: "12:00", want: 720},
		{name: "NoColon", input: "0800", wantErr: true},
		{name: "NonNumericHour", input: "ab:00", wantErr: true},
		{name: "NonNumericMinute", input: "08:xx", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoice.ParseClock(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, invoice.ErrBadClock)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	type testCase struct {
		name string
		mins int
		want string
	}

	tests := []testCase{
		{name: "MorningStart", mins: 480, want: "08:00"},
		{name: "Midnight", mins: 0, want: "00:00"},
		{name: "SingleDigitPadding", mins: 65, want: "01:05"},
		{name: "WrapsPastMidnight", mins: 1500, want: "01:00"},
		{name: "WrapsExactDay", mins: 1440, want: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoice.FormatClock(tt.mins))
		})
	}
}

func TestFormatClock_RoundTrips(t *testing.T) {
	for _, s := range []string{"00:00", "08:30", "12:00", "23:59"} {
		mins, err := invoice.ParseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, invoice.FormatClock(mins))
	}
}

func TestBuildBreakdown(t *testing.T) {
	type args struct {
		jobType    invoice.JobType
		setupStart string
		depoEnd    string
		lunchBreak float64
	}

	type testCase struct {
		name    string
		args    args
		want    *invoice.ServiceBreakdown
		wantErr error
	}

	tests := []testCase{
		{
			name: "InPersonFullDay",
			args: args{
				jobType:    invoice.JobTypeInPerson,
				setupStart: "08:00",
				depoEnd:    "12:00",
				lunchBreak: 0.5,
			},
			want: &invoice.ServiceBreakdown{
				SetupStart:   "08:00",
				DepoStart:    "09:00",
				DepoEnd:      "12:00",
				BreakdownEnd: "12:30",
				LunchBreak:   0.5,
				TotalHours:   4.0,
			},
		},
		{
			name: "RemoteShorterLead",
			args: args{
				jobType:    invoice.JobTypeRemote,
				setupStart: "09:00",
				depoEnd:    "11:00",
				lunchBreak: 0,
			},
			want: &invoice.ServiceBreakdown{
				SetupStart:   "09:00",
				DepoStart:    "09:30",
				DepoEnd:      "11:00",
				BreakdownEnd: "11:30",
				LunchBreak:   0,
				TotalHours:   2.5,
			},
		},
		{
			name: "QuarterHourRounding",
			args: args{
				jobType:    invoice.JobTypeInPerson,
				setupStart: "08:10",
				depoEnd:    "12:00",
				lunchBreak: 0,
			},
			want: &invoice.ServiceBreakdown{
				SetupStart:   "08:10",
				DepoStart:    "09:10",
				DepoEnd:      "12:00",
				BreakdownEnd: "12:30",
				LunchBreak:   0,
				TotalHours:   4.33,
			},
		},
		{
			name: "BadSetupStart",
			args: args{
				jobType:    invoice.JobTypeInPerson,
				setupStart: "morning",
				depoEnd:    "12:00",
			},
			wantErr: invoice.ErrBadClock,
		},
		{
			name: "BadDepoEnd",
			args: args{
				jobType:    invoice.JobTypeInPerson,
				setupStart: "08:00",
				depoEnd:    "noon",
			},
			wantErr: invoice.ErrBadClock,
		},
		{
			name: "NegativeLunch",
			args: args{
				jobType:    invoice.JobTypeInPerson,
				setupStart: "08:00",
				depoEnd:    "12:00",
				lunchBreak: -1,
			},
			wantErr: invoice.ErrNegativeHours,
		},
		{
			name: "EndBeforeStart",
			args: args{
				jobType:    invoice.JobTypeInPerson,
				setupStart: "12:00",
				depoEnd:    "11:00",
			},
			wantErr: invoice.ErrNonPositiveDuration,
		},
		{
			name: "LunchEatsWholeDay",
			args: args{
				jobType:    invoice.JobTypeInPerson,
				setupStart: "08:00",
				depoEnd:    "12:00",
				lunchBreak: 5,
			},
			wantErr: invoice.ErrNonPositiveDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoice.BuildBreakdown(tt.args.jobType, tt.args.setupStart, tt.args.depoEnd, tt.args.lunchBreak)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
