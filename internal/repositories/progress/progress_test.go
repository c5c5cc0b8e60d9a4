package progress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apply - применяет начисление и проверяет отсутствие ошибки.
func apply(t *testing.T, p Progress, earned int) Progress {
	t.Helper()
	next, err := AddPoints(earned)(p)
	require.NoError(t, err)
	return next
}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		points int
		level  int
	}{
		{points: 0, level: 1},
		{points: 99, level: 1},
		{points: 100, level: 2},
		{points: 499, level: 2},
		{points: 500, level: 3},
		{points: 999, level: 3},
		{points: 1000, level: 4},
		{points: 50000, level: 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, CalculateLevel(tt.points), "points %d", tt.points)
	}
}

func TestAddPoints(t *testing.T) {
	p := New()
	assert.Equal(t, 1, p.Level)

	// очков недостаточно для награды
	p = apply(t, p, 50)
	assert.Equal(t, 50, p.Points)
	assert.Equal(t, 1, p.Level)
	assert.Empty(t, p.Rewards)

	// второй уровень
	p = apply(t, p, 60)
	assert.Equal(t, 110, p.Points)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, []string{"Congrats! You unlocked Level 2!"}, p.Rewards)

	// награда не выдается повторно
	p = apply(t, p, 10)
	assert.Len(t, p.Rewards, 1)

	// сразу на третий уровень
	p = apply(t, p, 400)
	assert.Equal(t, 520, p.Points)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, []string{"Congrats! You unlocked Level 2!", "Congrats! You unlocked Level 3!"}, p.Rewards)
}

func TestAddPointsDoesNotMutate(t *testing.T) {
	orig := Progress{Level: 1, Points: 90, Rewards: []string{}}
	_ = apply(t, orig, 20)
	assert.Equal(t, 90, orig.Points)
	assert.Empty(t, orig.Rewards)

	// nil награды превращаются в пустой список
	p := apply(t, Progress{}, 1)
	assert.NotNil(t, p.Rewards)
}

func TestAddPointsLimit(t *testing.T) {
	p := Progress{Level: 4, Points: 1000, Rewards: []string{}}

	tests := []struct {
		name   string
		earned int
	}{
		{name: "max int", earned: math.MaxInt},
		{name: "sum above max points", earned: MaxPoints - 999},
		{name: "negative", earned: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddPoints(tt.earned)(p)
			require.ErrorIs(t, err, ErrPointsLimit)
		})
	}

	// ровно до предела начислить можно
	next, err := AddPoints(MaxPoints - 1000)(p)
	require.NoError(t, err)
	assert.Equal(t, MaxPoints, next.Points)
	assert.Equal(t, 4, next.Level)
}
