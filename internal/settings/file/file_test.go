package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgettracker/internal/settings"
	"github.com/MrJamesThe3rd/budgettracker/internal/settings/file"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s := file.New(path)

	_, found, err := s.Get(ctx, settings.KeyExpensesEmpty)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, settings.KeyExpensesEmpty, false))
	require.NoError(t, s.Set(ctx, settings.KeyIncomesEmpty, true))

	v, found, err := file.New(path).Get(ctx, settings.KeyExpensesEmpty)
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "isExpensesEmpty: false")
	assert.Contains(t, string(data), "isIncomesEmpty: true")
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("isExpensesEmpty: [not, a, bool"), 0o600))

	_, _, err := file.New(path).Get(context.Background(), settings.KeyExpensesEmpty)
	assert.Error(t, err)
}
