package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/webitplay/depobill/internal/invoice"
	"github.com/webitplay/depobill/internal/settings"
)

func billingSettings() *settings.Settings {
	return &settings.Settings{
		HourlyInPerson: 150,
		HourlyRemote:   100,
		CancelHours:    3,
	}
}

func TestService_Create(t *testing.T) {
	type args struct {
		cfg    *settings.Settings
		params invoice.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *invoice.MockRepository)
		check     func(t *testing.T, inv *invoice.Invoice)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "DepositionJob",
			args: args{
				cfg: billingSettings(),
				params: invoice.CreateParams{
					Client:      invoice.ClientInfo{Name: "Acme Legal", Email: "billing@acme.test"},
					JobType:     invoice.JobTypeInPerson,
					Description: "Smith v. Jones",
					SetupStart:  "08:00",
					DepoEnd:     "12:00",
					LunchBreak:  0.5,
					Expenses:    []invoice.Expense{{Description: "Parking", Amount: 25}},
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					NextNumber(gomock.Any(), invoice.CounterName).
					Return(42, nil)
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						inv.ID = uuid.New()
						inv.CreatedAt = time.Now()
						return nil
					})
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				assert.Equal(t, 42, inv.Number)
				assert.Equal(t, 150.0, inv.HourlyRate)
				require.Len(t, inv.WorkLogs, 1)
				assert.Equal(t, "Total Deposition Time - Smith v. Jones", inv.WorkLogs[0].Description)
				assert.Equal(t, 4.0, inv.WorkLogs[0].Hours)
				require.NotNil(t, inv.Breakdown)
				assert.Equal(t, "09:00", inv.Breakdown.DepoStart)
				assert.Equal(t, "12:30", inv.Breakdown.BreakdownEnd)
				assert.Equal(t, 625.0, inv.Total)
			},
		},
		{
			name: "CanceledJobFlatFee",
			args: args{
				cfg: billingSettings(),
				params: invoice.CreateParams{
					Client:   invoice.ClientInfo{Name: "Acme Legal", Email: "billing@acme.test"},
					JobType:  invoice.JobTypeRemote,
					Canceled: true,
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					NextNumber(gomock.Any(), invoice.CounterName).
					Return(43, nil)
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				require.Len(t, inv.WorkLogs, 1)
				assert.Equal(t, invoice.CancelFeeDescription, inv.WorkLogs[0].Description)
				assert.Equal(t, 3.0, inv.WorkLogs[0].Hours)
				assert.Nil(t, inv.Breakdown)
				assert.Equal(t, 300.0, inv.Total)
			},
		},
		{
			name: "EmptyDescriptionUsesBareLabel",
			args: args{
				cfg: billingSettings(),
				params: invoice.CreateParams{
					JobType:    invoice.JobTypeRemote,
					SetupStart: "09:00",
					DepoEnd:    "11:00",
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					NextNumber(gomock.Any(), invoice.CounterName).
					Return(44, nil)
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				require.Len(t, inv.WorkLogs, 1)
				assert.Equal(t, "Total Deposition Time", inv.WorkLogs[0].Description)
			},
		},
		{
			name:    "NilSettings",
			args:    args{cfg: nil, params: invoice.CreateParams{}},
			wantErr: settings.ErrNotConfigured,
		},
		{
			name: "RatesUnset",
			args: args{
				cfg:    &settings.Settings{CancelHours: 3},
				params: invoice.CreateParams{JobType: invoice.JobTypeRemote},
			},
			wantErr: settings.ErrRatesUnset,
		},
		{
			name: "CanceledWithoutCancelHours",
			args: args{
				cfg: &settings.Settings{HourlyInPerson: 150, HourlyRemote: 100},
				params: invoice.CreateParams{
					JobType:  invoice.JobTypeRemote,
					Canceled: true,
				},
			},
			wantErr: settings.ErrCancelHoursUnset,
		},
		{
			name: "NegativeExpense",
			args: args{
				cfg: billingSettings(),
				params: invoice.CreateParams{
					JobType:    invoice.JobTypeRemote,
					SetupStart: "09:00",
					DepoEnd:    "11:00",
					Expenses:   []invoice.Expense{{Description: "Refund", Amount: -5}},
				},
			},
			wantErr: invoice.ErrNegativeAmount,
		},
		{
			name: "BadClock",
			args: args{
				cfg: billingSettings(),
				params: invoice.CreateParams{
					JobType:    invoice.JobTypeInPerson,
					SetupStart: "eight",
					DepoEnd:    "12:00",
				},
			},
			wantErr: invoice.ErrBadClock,
		},
		{
			name: "NumberingFailure",
			args: args{
				cfg: billingSettings(),
				params: invoice.CreateParams{
					JobType:    invoice.JobTypeRemote,
					SetupStart: "09:00",
					DepoEnd:    "11:00",
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					NextNumber(gomock.Any(), invoice.CounterName).
					Return(0, errors.New("db error"))
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := invoice.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.cfg, tt.args.params)

			if tt.check == nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			tt.check(t, got)
		})
	}
}

func TestService_Edit(t *testing.T) {
	id := uuid.New()

	stored := func() *invoice.Invoice {
		return &invoice.Invoice{
			ID:         id,
			Number:     7,
			JobType:    invoice.JobTypeInPerson,
			HourlyRate: 150,
			WorkLogs:   []invoice.WorkLog{{Description: "Total Deposition Time", Hours: 4}},
			Expenses:   []invoice.Expense{{Description: "Parking", Amount: 25}},
			Total:      625,
		}
	}

	t.Run("RecomputesTotal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), id).Return(stored(), nil)
		repo.EXPECT().
			UpdateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
				assert.Equal(t, 425.0, inv.Total)
				return nil
			})

		svc := invoice.NewService(repo)
		got, err := svc.Edit(context.Background(), id,
			invoice.SetHourlyRate(100),
			invoice.SetSubtitle("Expedited"),
		)

		require.NoError(t, err)
		assert.Equal(t, "Expedited", got.Subtitle)
		assert.Equal(t, 425.0, got.Total)
	})

	t.Run("FailingCommandAborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), id).Return(stored(), nil)

		svc := invoice.NewService(repo)
		got, err := svc.Edit(context.Background(), id,
			invoice.SetNotes("keep me"),
			invoice.SetHourlyRate(0),
		)

		assert.ErrorIs(t, err, invoice.ErrInvalidRate)
		assert.Nil(t, got)
	})

	t.Run("RejectsNegativeWorkLogHours", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), id).Return(stored(), nil)

		svc := invoice.NewService(repo)
		_, err := svc.Edit(context.Background(), id,
			invoice.SetWorkLogs([]invoice.WorkLog{{Description: "Oops", Hours: -1}}),
		)

		assert.ErrorIs(t, err, invoice.ErrNegativeHours)
	})

	t.Run("RejectsUnknownJobType", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), id).Return(stored(), nil)

		svc := invoice.NewService(repo)
		_, err := svc.Edit(context.Background(), id, invoice.SetJobType("Hybrid"))

		assert.Error(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), id).Return(nil, invoice.ErrNotFound)

		svc := invoice.NewService(repo)
		_, err := svc.Edit(context.Background(), id, invoice.SetNotes("n"))

		assert.ErrorIs(t, err, invoice.ErrNotFound)
	})
}
