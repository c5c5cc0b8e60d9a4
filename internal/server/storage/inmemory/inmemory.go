package inmemory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/abezemskiy/immersilearn/internal/repositories/identity"
	"github.com/abezemskiy/immersilearn/internal/repositories/leaderboard"
	"github.com/abezemskiy/immersilearn/internal/repositories/progress"
)

// Store - потокобезопасное хранилище сервера в оперативной памяти.
// Реализует интерфейс storage.IServerStorage с той же семантикой, что и PostgreSQL-хранилище.
type Store struct {
	mu         sync.RWMutex
	identities map[string]identity.Identity // учетные записи по id
	emails     map[string]string            // общий реестр email в нижнем регистре -> id
	progress   map[string]progress.Progress // прогресс обычных пользователей по id
	scores     []leaderboard.Entry
	lastScore  int64
	now        func() time.Time
}

// NewStore - возвращает пустое хранилище.
func NewStore() *Store {
	return &Store{
		identities: make(map[string]identity.Identity),
		emails:     make(map[string]string),
		progress:   make(map[string]progress.Progress),
		now:        time.Now,
	}
}

// Ping - хранилище в памяти всегда доступно.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Create - сохраняет новую учетную запись. Проверка email и вставка выполняются под одной блокировкой.
func (s *Store) Create(ctx context.Context, ident identity.Identity) (identity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return identity.Identity{}, err
	}
	if !ident.Kind.Valid() {
		return identity.Identity{}, fmt.Errorf("unknown identity kind %q", ident.Kind)
	}
	if ident.CreatedAt.IsZero() {
		ident.CreatedAt = s.now().UTC()
	}
	key := strings.ToLower(ident.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[key]; ok {
		return identity.Identity{}, identity.ErrDuplicateEmail
	}
	if _, ok := s.identities[ident.ID]; ok {
		return identity.Identity{}, fmt.Errorf("identity with id %s already exists", ident.ID)
	}
	s.emails[key] = ident.ID
	s.identities[ident.ID] = ident
	if ident.Kind == identity.KindUser {
		s.progress[ident.ID] = progress.New()
	}
	return ident, nil
}

// FindByEmail - поиск учетной записи по email без учета регистра.
func (s *Store) FindByEmail(ctx context.Context, email string, kinds ...identity.Kind) (identity.Identity, bool, error) {
	if err := ctx.Err(); err != nil {
		return identity.Identity{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return identity.Identity{}, false, nil
	}
	ident := s.identities[id]
	if len(kinds) > 0 && !slices.Contains(kinds, ident.Kind) {
		return identity.Identity{}, false, nil
	}
	return ident, true, nil
}

// FindByID - поиск учетной записи по идентификатору.
func (s *Store) FindByID(ctx context.Context, id string) (identity.Identity, bool, error) {
	if err := ctx.Err(); err != nil {
		return identity.Identity{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ident, ok := s.identities[id]
	return ident, ok, nil
}

// AddScore - добавляет результат в таблицу лидеров.
func (s *Store) AddScore(ctx context.Context, username string, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addScore(username, score)
	return nil
}

func (s *Store) addScore(username string, score int) {
	s.lastScore++
	s.scores = append(s.scores, leaderboard.Entry{
		ID:       s.lastScore,
		Username: username,
		Score:    score,
		Date:     s.now().UTC(),
	})
}

// TopScores - возвращает limit лучших результатов по убыванию.
func (s *Store) TopScores(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	sorted := slices.Clone(s.scores)
	s.mu.RUnlock()

	// при равенстве очков выше та запись, что добавлена раньше
	slices.SortFunc(sorted, func(a, b leaderboard.Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		sorted = []leaderboard.Entry{}
	}
	return sorted, nil
}

// CountScores - количество результатов в таблице лидеров.
func (s *Store) CountScores(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scores), nil
}

// SeedScores - заполняет пустую таблицу лидеров начальными данными.
func (s *Store) SeedScores(ctx context.Context, entries []leaderboard.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scores) > 0 {
		return nil
	}
	for _, e := range entries {
		s.addScore(e.Username, e.Score)
	}
	return nil
}

// GetProgress - возвращает прогресс пользователя.
func (s *Store) GetProgress(ctx context.Context, userID string) (progress.Progress, bool, error) {
	if err := ctx.Err(); err != nil {
		return progress.Progress{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.progress[userID]
	if !ok {
		return progress.Progress{}, false, nil
	}
	p.Rewards = slices.Clone(p.Rewards)
	return p, true, nil
}

// UpdateProgress - применяет update к прогрессу пользователя под блокировкой.
func (s *Store) UpdateProgress(ctx context.Context, userID string,
	update func(progress.Progress) (progress.Progress, error)) (progress.Progress, bool, error) {
	if err := ctx.Err(); err != nil {
		return progress.Progress{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.progress[userID]
	if !ok {
		return progress.Progress{}, false, nil
	}
	next, err := update(current)
	if err != nil {
		return progress.Progress{}, false, err
	}
	s.progress[userID] = next

	next.Rewards = slices.Clone(next.Rewards)
	return next, true, nil
}
