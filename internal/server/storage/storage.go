package storage

import (
	"context"

	"github.com/abezemskiy/immersilearn/internal/repositories/identity"
	"github.com/abezemskiy/immersilearn/internal/repositories/leaderboard"
	"github.com/abezemskiy/immersilearn/internal/repositories/progress"
)

type (
	// Pinger - интерфейс для проверки доступности хранилища.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// IServerStorage - интерфейс хранилища сервера: учетные записи, таблица лидеров и прогресс пользователей.
	IServerStorage interface {
		identity.Store
		leaderboard.Keeper
		progress.Keeper
		Pinger
	}
)
