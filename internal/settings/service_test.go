package settings_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webitplay/depobill/internal/settings"
)

func sample() *settings.Settings {
	return &settings.Settings{
		Freelancer: settings.Freelancer{
			Name:     "Pat Reporter",
			Business: "Reporter Services LLC",
			Email:    "pat@reporter.test",
		},
		HourlyInPerson: 150,
		HourlyRemote:   100,
		CancelHours:    3,
		Services:       []string{"Deposition", "Hearing"},
	}
}

func TestService_Load_Missing(t *testing.T) {
	svc := settings.NewService(filepath.Join(t.TempDir(), "settings.json"))

	cfg, err := svc.Load()

	assert.ErrorIs(t, err, settings.ErrNotConfigured)
	assert.Nil(t, cfg)
}

func TestService_Load_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	svc := settings.NewService(path)

	_, err := svc.Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, settings.ErrNotConfigured)
}

func TestService_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "settings.json")
	svc := settings.NewService(path)

	require.NoError(t, svc.Save(sample()))

	got, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestService_Save_DocumentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	svc := settings.NewService(path)

	require.NoError(t, svc.Save(sample()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range []string{"freelancer", "hourlyInPerson", "hourlyRemote", "cancelHours", "services"} {
		assert.Contains(t, doc, key)
	}
}

func TestService_AddService_AllowsDuplicates(t *testing.T) {
	svc := settings.NewService("")
	cfg := sample()

	svc.AddService(cfg, "Deposition")

	assert.Equal(t, []string{"Deposition", "Hearing", "Deposition"}, cfg.Services)
}

func TestService_RenameService(t *testing.T) {
	svc := settings.NewService("")

	t.Run("FirstMatchOnly", func(t *testing.T) {
		cfg := &settings.Settings{Services: []string{"Deposition", "Hearing", "Deposition"}}

		ok := svc.RenameService(cfg, "Deposition", "Arbitration")

		assert.True(t, ok)
		assert.Equal(t, []string{"Arbitration", "Hearing", "Deposition"}, cfg.Services)
	})

	t.Run("Missing", func(t *testing.T) {
		cfg := sample()

		ok := svc.RenameService(cfg, "Mediation", "Arbitration")

		assert.False(t, ok)
		assert.Equal(t, sample().Services, cfg.Services)
	})
}

func TestService_RemoveService_RemovesAllMatches(t *testing.T) {
	svc := settings.NewService("")
	cfg := &settings.Settings{Services: []string{"Deposition", "Hearing", "Deposition", "Trial"}}

	removed := svc.RemoveService(cfg, "Deposition")

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"Hearing", "Trial"}, cfg.Services)
}

func TestSettings_ValidateBilling(t *testing.T) {
	type testCase struct {
		name    string
		cfg     settings.Settings
		wantErr bool
	}

	tests := []testCase{
		{name: "BothRatesSet", cfg: settings.Settings{HourlyInPerson: 150, HourlyRemote: 100}},
		{name: "InPersonMissing", cfg: settings.Settings{HourlyRemote: 100}, wantErr: true},
		{name: "RemoteMissing", cfg: settings.Settings{HourlyInPerson: 150}, wantErr: true},
		{name: "Empty", cfg: settings.Settings{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateBilling()

			if tt.wantErr {
				assert.ErrorIs(t, err, settings.ErrRatesUnset)
				return
			}

			assert.NoError(t, err)
		})
	}
}
