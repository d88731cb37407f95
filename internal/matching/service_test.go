package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/budgettracker/internal/matching"
	"github.com/MrJamesThe3rd/budgettracker/internal/matching/memory"
)

func TestService_Suggest(t *testing.T) {
	type testCase struct {
		name    string
		setup   func(repo *matching.MockRepository)
		want    string
		wantErr bool
	}

	tests := []testCase{
		{
			name: "Match",
			setup: func(repo *matching.MockRepository) {
				repo.EXPECT().FindMatch(gomock.Any(), "UBER *TRIP HELP").Return("Uber", true, nil)
			},
			want: "Uber",
		},
		{
			name: "NoMatchKeepsRaw",
			setup: func(repo *matching.MockRepository) {
				repo.EXPECT().FindMatch(gomock.Any(), "UBER *TRIP HELP").Return("", false, nil)
			},
			want: "UBER *TRIP HELP",
		},
		{
			name: "StoreError",
			setup: func(repo *matching.MockRepository) {
				repo.EXPECT().FindMatch(gomock.Any(), "UBER *TRIP HELP").Return("", false, errors.New("db down"))
			},
			want:    "UBER *TRIP HELP",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := matching.NewMockRepository(ctrl)
			tt.setup(repo)

			got, err := matching.NewService(repo).Suggest(context.Background(), "UBER *TRIP HELP")
			assert.Equal(t, tt.want, got)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_LearnValidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)

	_, err := matching.NewService(repo).Learn(context.Background(), "  ", "Uber")
	assert.ErrorIs(t, err, matching.ErrInvalidRule)
}

func TestMemoryStore_LongestPatternWins(t *testing.T) {
	ctx := context.Background()
	svc := matching.NewService(memory.New())

	_, err := svc.Learn(ctx, "uber", "Uber")
	require.NoError(t, err)
	_, err = svc.Learn(ctx, "uber   *eats", "Uber Eats")
	require.NoError(t, err)

	got, err := svc.Suggest(ctx, "UBER   *EATS LISBOA")
	require.NoError(t, err)
	assert.Equal(t, "Uber Eats", got)

	got, err = svc.Suggest(ctx, "UBER   *TRIP")
	require.NoError(t, err)
	assert.Equal(t, "Uber", got)

	got, err = svc.Suggest(ctx, "Bolt")
	require.NoError(t, err)
	assert.Equal(t, "Bolt", got)

	rules, err := svc.Rules(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}
