package progress

import (
	"context"
	"errors"
	"math"
	"slices"
)

// MaxPoints - предельное количество очков пользователя, совпадает с диапазоном колонки INT.
const MaxPoints = math.MaxInt32

// ErrPointsLimit - начисление выводит количество очков за допустимый предел.
var ErrPointsLimit = errors.New("points limit exceeded")

// Progress - прогресс обучения пользователя.
type Progress struct {
	Level   int      `json:"level"`
	Points  int      `json:"points"`
	Rewards []string `json:"rewards"`
}

// Keeper - интерфейс для хранения прогресса пользователей.
type Keeper interface {
	// GetProgress - возвращает прогресс пользователя. Если пользователь не найден, возвращается false.
	GetProgress(ctx context.Context, userID string) (Progress, bool, error)
	// UpdateProgress - атомарно применяет update к прогрессу пользователя.
	// Если update вернул ошибку, прогресс не изменяется и ошибка возвращается вызывающему.
	UpdateProgress(ctx context.Context, userID string, update func(Progress) (Progress, error)) (Progress, bool, error)
}

// пороги уровней и награды за их достижение
var rewards = []struct {
	points int
	reward string
}{
	{points: 100, reward: "Congrats! You unlocked Level 2!"},
	{points: 500, reward: "Congrats! You unlocked Level 3!"},
}

// New - прогресс нового пользователя.
func New() Progress {
	return Progress{Level: 1, Points: 0, Rewards: []string{}}
}

// CalculateLevel - уровень по количеству очков.
func CalculateLevel(points int) int {
	switch {
	case points < 100:
		return 1
	case points < 500:
		return 2
	case points < 1000:
		return 3
	}
	return 4
}

// AddPoints - возвращает функцию обновления, которая начисляет очки, пересчитывает уровень и выдает награды.
// Каждая награда выдается не более одного раза. Отрицательное начисление или сумма больше MaxPoints
// приводят к ErrPointsLimit.
func AddPoints(earned int) func(Progress) (Progress, error) {
	return func(p Progress) (Progress, error) {
		if earned < 0 || earned > MaxPoints-p.Points {
			return Progress{}, ErrPointsLimit
		}
		next := Progress{
			Points:  p.Points + earned,
			Rewards: slices.Clone(p.Rewards),
		}
		if next.Rewards == nil {
			next.Rewards = []string{}
		}
		next.Level = CalculateLevel(next.Points)
		for _, r := range rewards {
			if next.Points >= r.points && !slices.Contains(next.Rewards, r.reward) {
				next.Rewards = append(next.Rewards, r.reward)
			}
		}
		return next, nil
	}
}
