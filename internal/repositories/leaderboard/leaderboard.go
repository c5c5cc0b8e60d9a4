package leaderboard

import (
	"context"
	"math"
	"time"
)

// TopSize - количество записей в таблице лидеров.
const TopSize = 10

// MaxScore - предельный результат, совпадает с диапазоном колонки INT.
const MaxScore = math.MaxInt32

// Entry - запись таблицы лидеров.
type Entry struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Score    int       `json:"score"`
	Date     time.Time `json:"date"`
}

// Keeper - интерфейс для хранения результатов таблицы лидеров.
type Keeper interface {
	AddScore(ctx context.Context, username string, score int) error // Добавляет новый результат
	TopScores(ctx context.Context, limit int) ([]Entry, error)      // Лучшие результаты по убыванию
	CountScores(ctx context.Context) (int, error)                   // Количество сохраненных результатов
	// SeedScores - заполняет таблицу начальными данными, только если она пуста.
	// Проверка и вставка выполняются атомарно, поэтому параллельные вызовы заполняют таблицу один раз.
	SeedScores(ctx context.Context, entries []Entry) error
}

// DemoEntries - начальные данные, которыми заполняется пустая таблица лидеров.
func DemoEntries() []Entry {
	return []Entry{
		{Username: "John Doe", Score: 100},
		{Username: "Jane Smith", Score: 90},
		{Username: "Alice Johnson", Score: 85},
		{Username: "Bob Brown", Score: 80},
		{Username: "Charlie Davis", Score: 75},
		{Username: "David Evans", Score: 70},
		{Username: "Eve Green", Score: 65},
		{Username: "Frank Harris", Score: 60},
		{Username: "Grace King", Score: 55},
		{Username: "Hannah Lee", Score: 50},
	}
}

// Top - возвращает лучшие результаты. Если таблица пуста, предварительно заполняет ее начальными данными.
func Top(ctx context.Context, keeper Keeper) ([]Entry, error) {
	count, err := keeper.CountScores(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := keeper.SeedScores(ctx, DemoEntries()); err != nil {
			return nil, err
		}
	}
	return keeper.TopScores(ctx, TopSize)
}
