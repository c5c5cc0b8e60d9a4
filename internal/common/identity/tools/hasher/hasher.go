// hasher - пакет для хэширования паролей пользователей и вспомогательных данных.
package hasher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultCost - стоимость bcrypt, используемая сервером по умолчанию.
const DefaultCost = 12

// Hasher - хэширует и проверяет пароли с помощью bcrypt.
// Количество одновременно выполняемых вычислений ограничено, чтобы всплеск регистраций или авторизаций
// не занимал все ядра процессора.
type Hasher struct {
	cost    int
	workers *semaphore.Weighted

	// хэш произвольного пароля с той же стоимостью. Нужен, чтобы проверка пароля для несуществующего
	// пользователя занимала столько же времени, сколько и для существующего.
	dummy []byte
}

// New - создает Hasher с заданной стоимостью bcrypt и числом одновременных вычислений.
// При workers <= 0 используется GOMAXPROCS.
func New(cost, workers int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("immersilearn dummy password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash, %w", err)
	}
	return &Hasher{
		cost:    cost,
		workers: semaphore.NewWeighted(int64(workers)),
		dummy:   dummy,
	}, nil
}

// Hash - вычисляет соленый хэш пароля. Повторное хэширование одного пароля дает разные значения.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing worker, %w", err)
	}
	defer h.workers.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password, %w", err)
	}
	return string(hash), nil
}

// Verify - проверяет, что пароль соответствует хэшу.
// Для некорректного хэша или отмененного контекста возвращает false.
func (h *Hasher) Verify(ctx context.Context, password, hash string) bool {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.workers.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy - выполняет проверку пароля против фиктивного хэша. Результат всегда false.
func (h *Hasher) VerifyDummy(ctx context.Context, password string) bool {
	h.Verify(ctx, password, string(h.dummy))
	return false
}

// Fingerprint - функция, которая вычисляет SHA-256 от строки и возвращает первые 16 символов hex.
// Используется для записи в логи значений, которые нельзя логировать в открытом виде (например email).
func Fingerprint(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])[:16]
}
