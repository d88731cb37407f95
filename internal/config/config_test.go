package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgettracker/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, config.BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 5, cfg.List.TodayLimit)
	assert.Equal(t, 3, cfg.List.PastLimit)
	assert.Equal(t, 4, cfg.List.PastDays)
	assert.Equal(t, 10, cfg.List.ExpansionStep)
	assert.Equal(t, 100*time.Millisecond, cfg.List.FocusDelay)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.True(t, cfg.NeedsDatabase())
	assert.Equal(t, "postgres://postgres:@localhost:5432/budgettracker?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("SETTINGS_BACKEND", "file")
	t.Setenv("LIST_EXPAND_IN_PLACE", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.NeedsDatabase())
	assert.True(t, cfg.List.ExpandInPlace)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	type testCase struct {
		name  string
		key   string
		value string
	}

	tests := []testCase{
		{name: "UnknownStore", key: "STORE_BACKEND", value: "sqlite"},
		{name: "UnknownSettings", key: "SETTINGS_BACKEND", value: "etcd"},
		{name: "ZeroStep", key: "LIST_EXPANSION_STEP", value: "0"},
		{name: "NegativeDays", key: "LIST_PAST_DAYS", value: "-1"},
		{name: "BadDuration", key: "UI_FOCUS_DELAY", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
