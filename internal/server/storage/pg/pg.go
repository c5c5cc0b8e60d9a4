package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/abezemskiy/immersilearn/internal/repositories/identity"
	"github.com/abezemskiy/immersilearn/internal/repositories/leaderboard"
	"github.com/abezemskiy/immersilearn/internal/repositories/progress"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Store - реализует интерфейс storage.IServerStorage и позволяет взаимодествовать с СУБД PostgreSQL.
type Store struct {
	// Поле conn содержит объект соединения с СУБД
	conn *sql.DB
}

// NewStore - применяет миграции и возвращает новый экземпляр PostgreSQL-хранилища.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run DB migrations: %w", err)
	}

	// Подключение к базе данных
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connection to database: %w", err)
	}

	// Проверка соединения с БД
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error checking connection with database: %w", err)
	}

	return &Store{
		conn: db,
	}, nil
}

//go:embed migrations/*.sql
var migrationsDir embed.FS

func runMigrations(dsn string) error {
	d, err := iofs.New(migrationsDir, "migrations")
	if err != nil {
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dsn)
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations to the DB: %w", err)
		}
	}
	return nil
}

// isUniqueViolation - проверяет, что ошибка вызвана нарушением уникального индекса.
// Проверяются ошибки обоих драйверов: pgx и lib/pq.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgerrcode.UniqueViolation
	}
	return false
}

// Ping - проверяет соединение с БД.
func (s Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close - закрывает соединение с БД.
func (s Store) Close() error {
	return s.conn.Close()
}

// Disable - очищает БД, удаляя записи из таблиц.
// Метод необходим для тестирования, чтобы в процессе удалять тестовые записи.
func (s Store) Disable(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, `
		TRUNCATE TABLE leaderboard, user_progress, identity_emails, professors, standard_users RESTART IDENTITY CASCADE
	`)
	if err != nil {
		return fmt.Errorf("truncate tables error, %w", err)
	}
	return nil
}

// Create - сохраняет новую учетную запись.
// Email резервируется в общей таблице identity_emails в той же транзакции, что и сама запись,
// поэтому одновременная регистрация с одним адресом завершится ошибкой identity.ErrDuplicateEmail.
func (s Store) Create(ctx context.Context, ident identity.Identity) (identity.Identity, error) {
	if !ident.Kind.Valid() {
		return identity.Identity{}, fmt.Errorf("unknown identity kind %q", ident.Kind)
	}
	if ident.CreatedAt.IsZero() {
		ident.CreatedAt = time.Now().UTC()
	}

	// запускаю транзакцию
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("begin transaction error, %w", err)
	}
	// откат транзакции в случае ошибки
	defer tx.Rollback()

	// резервирую email
	_, err = tx.ExecContext(ctx, `
		INSERT INTO identity_emails (email, kind, identity_id)
		VALUES (lower($1), $2, $3)
	`, ident.Email, string(ident.Kind), ident.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return identity.Identity{}, identity.ErrDuplicateEmail
		}
		return identity.Identity{}, fmt.Errorf("reserve email error, %w", err)
	}

	switch ident.Kind {
	case identity.KindUser:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO standard_users (id, name, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, ident.ID, ident.Name, ident.Email, ident.PasswordHash, ident.CreatedAt)
		if err == nil {
			// у нового пользователя сразу появляется прогресс обучения
			initial := progress.New()
			_, err = tx.ExecContext(ctx, `
				INSERT INTO user_progress (user_id, points, level, rewards)
				VALUES ($1, $2, $3, $4::text[])
			`, ident.ID, initial.Points, initial.Level, pq.Array(initial.Rewards))
		}
	case identity.KindProfessor:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO professors (id, name, email, password_hash, institution, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, ident.ID, ident.Name, ident.Email, ident.PasswordHash, ident.Institution, ident.CreatedAt)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return identity.Identity{}, identity.ErrDuplicateEmail
		}
		return identity.Identity{}, fmt.Errorf("insert identity error, %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return identity.Identity{}, identity.ErrDuplicateEmail
		}
		return identity.Identity{}, fmt.Errorf("commit transaction error, %w", err)
	}
	return ident, nil
}

// FindByEmail - поиск учетной записи по email без учета регистра.
// Если kinds не переданы, поиск ведется среди учетных записей всех видов.
func (s Store) FindByEmail(ctx context.Context, email string, kinds ...identity.Kind) (identity.Identity, bool, error) {
	if len(kinds) == 0 {
		kinds = []identity.Kind{identity.KindUser, identity.KindProfessor}
	}
	kindNames := make([]string, 0, len(kinds))
	for _, k := range kinds {
		kindNames = append(kindNames, string(k))
	}

	row := s.conn.QueryRowContext(ctx, `
		SELECT id, kind, name, email, password_hash, institution, created_at
		FROM identities
		WHERE lower(email) = lower($1) AND kind = ANY($2::text[])
		LIMIT 1
	`, email, pq.Array(kindNames))
	return scanIdentity(row)
}

// FindByID - поиск учетной записи по идентификатору.
func (s Store) FindByID(ctx context.Context, id string) (identity.Identity, bool, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, kind, name, email, password_hash, institution, created_at
		FROM identities
		WHERE id = $1
		LIMIT 1
	`, id)
	return scanIdentity(row)
}

func scanIdentity(row *sql.Row) (identity.Identity, bool, error) {
	var (
		ident identity.Identity
		kind  string
	)
	err := row.Scan(&ident.ID, &kind, &ident.Name, &ident.Email, &ident.PasswordHash, &ident.Institution, &ident.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// учетная запись не найдена
			return identity.Identity{}, false, nil
		}
		return identity.Identity{}, false, fmt.Errorf("scan identity error, %w", err)
	}
	ident.Kind = identity.Kind(kind)
	ident.CreatedAt = ident.CreatedAt.UTC()
	return ident, true, nil
}

// AddScore - добавляет результат в таблицу лидеров.
func (s Store) AddScore(ctx context.Context, username string, score int) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO leaderboard (username, score)
		VALUES ($1, $2)
	`, username, score)
	if err != nil {
		return fmt.Errorf("query execution error, %w", err)
	}
	return nil
}

// TopScores - возвращает limit лучших результатов по убыванию.
func (s Store) TopScores(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, username, score, created_at
		FROM leaderboard
		ORDER BY score DESC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query execution error, %w", err)
	}
	defer rows.Close()

	result := make([]leaderboard.Entry, 0, limit)
	for rows.Next() {
		var e leaderboard.Entry
		if err := rows.Scan(&e.ID, &e.Username, &e.Score, &e.Date); err != nil {
			return nil, fmt.Errorf("scan error, %w", err)
		}
		e.Date = e.Date.UTC()
		result = append(result, e)
	}
	// проверяем на ошибки
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountScores - количество результатов в таблице лидеров.
func (s Store) CountScores(ctx context.Context) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx, `SELECT count(*) FROM leaderboard`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count scores error, %w", err)
	}
	return count, nil
}

// SeedScores - заполняет пустую таблицу лидеров начальными данными одной транзакцией.
// Блокировка таблицы не дает двум параллельным транзакциям заполнить ее дважды, чтение при этом не блокируется.
func (s Store) SeedScores(ctx context.Context, entries []leaderboard.Entry) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction error, %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE leaderboard IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("lock leaderboard error, %w", err)
	}
	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM leaderboard)`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check leaderboard error, %w", err)
	}
	if exists {
		return tx.Commit()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leaderboard (username, score)
		VALUES ($1, $2)
	`)
	if err != nil {
		return fmt.Errorf("prepare context error, %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Username, e.Score); err != nil {
			return fmt.Errorf("query execution error, %w", err)
		}
	}
	return tx.Commit()
}

// GetProgress - возвращает прогресс пользователя. Если пользователь не найден, возвращается false.
func (s Store) GetProgress(ctx context.Context, userID string) (progress.Progress, bool, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT points, level, rewards
		FROM user_progress
		WHERE user_id = $1
	`, userID)

	p := progress.Progress{Rewards: []string{}}
	err := row.Scan(&p.Points, &p.Level, pq.Array(&p.Rewards))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return progress.Progress{}, false, nil
		}
		return progress.Progress{}, false, fmt.Errorf("scan progress error, %w", err)
	}
	return p, true, nil
}

// UpdateProgress - применяет update к прогрессу пользователя. Строка блокируется до конца транзакции,
// поэтому параллельные начисления очков не теряются.
func (s Store) UpdateProgress(ctx context.Context, userID string,
	update func(progress.Progress) (progress.Progress, error)) (progress.Progress, bool, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return progress.Progress{}, false, fmt.Errorf("begin transaction error, %w", err)
	}
	defer tx.Rollback()

	current := progress.Progress{Rewards: []string{}}
	err = tx.QueryRowContext(ctx, `
		SELECT points, level, rewards
		FROM user_progress
		WHERE user_id = $1
		FOR UPDATE
	`, userID).Scan(&current.Points, &current.Level, pq.Array(&current.Rewards))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return progress.Progress{}, false, nil
		}
		return progress.Progress{}, false, fmt.Errorf("select progress error, %w", err)
	}

	next, err := update(current)
	if err != nil {
		return progress.Progress{}, false, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE user_progress
		SET points = $2, level = $3, rewards = $4::text[]
		WHERE user_id = $1
	`, userID, next.Points, next.Level, pq.Array(next.Rewards))
	if err != nil {
		return progress.Progress{}, false, fmt.Errorf("update progress error, %w", err)
	}

	if err := tx.Commit(); err != nil {
		return progress.Progress{}, false, fmt.Errorf("commit transaction error, %w", err)
	}
	return next, true, nil
}
