package leaderboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/abezemskiy/immersilearn/internal/repositories/leaderboard"
	"github.com/abezemskiy/immersilearn/internal/repositories/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockLeaderboardKeeper(ctrl)
	ctx := context.Background()
	entries := []leaderboard.Entry{{ID: 1, Username: "Alice", Score: 10}}

	// Test. empty table is seeded--------------------------------
	gomock.InOrder(
		m.EXPECT().CountScores(gomock.Any()).Return(0, nil),
		m.EXPECT().SeedScores(gomock.Any(), leaderboard.DemoEntries()).Return(nil),
		m.EXPECT().TopScores(gomock.Any(), leaderboard.TopSize).Return(entries, nil),
	)
	got, err := leaderboard.Top(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	// Test. table is not empty--------------------------------
	m.EXPECT().CountScores(gomock.Any()).Return(3, nil)
	m.EXPECT().TopScores(gomock.Any(), leaderboard.TopSize).Return(entries, nil)
	got, err = leaderboard.Top(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	// Test. count error--------------------------------
	m.EXPECT().CountScores(gomock.Any()).Return(0, errors.New("some error"))
	_, err = leaderboard.Top(ctx, m)
	require.Error(t, err)

	// Test. seed error--------------------------------
	m.EXPECT().CountScores(gomock.Any()).Return(0, nil)
	m.EXPECT().SeedScores(gomock.Any(), gomock.Any()).Return(errors.New("some error"))
	_, err = leaderboard.Top(ctx, m)
	require.Error(t, err)
}

func TestDemoEntries(t *testing.T) {
	entries := leaderboard.DemoEntries()
	require.Len(t, entries, leaderboard.TopSize)
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i-1].Score, entries[i].Score)
	}
}
