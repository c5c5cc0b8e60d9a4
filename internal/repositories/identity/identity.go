package identity

import (
	"context"
	"errors"
	"time"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/token"
)

// Kind - вид учетной записи. Определяет роль пользователя и не меняется после регистрации.
type Kind string

const (
	KindUser      Kind = "user"      // обычный пользователь (студент)
	KindProfessor Kind = "professor" // преподаватель
)

// Valid - проверяет, что вид учетной записи известен.
func (k Kind) Valid() bool {
	return k == KindUser || k == KindProfessor
}

var (
	// ErrDuplicateEmail - email уже занят учетной записью любого вида.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials - неверный email или пароль. Ошибка намеренно одинакова для обоих случаев.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound - учетная запись не найдена.
	ErrNotFound = errors.New("identity not found")
	// ErrInternal - внутренняя ошибка хранилища или хэширования, подробности которой не раскрываются.
	ErrInternal = errors.New("internal error")
)

// Identity - учетная запись пользователя или преподавателя.
type Identity struct {
	ID           string
	Kind         Kind
	Name         string
	Email        string // всегда в нижнем регистре
	PasswordHash string `json:"-"`
	Institution  string // обязательно только для преподавателя
	CreatedAt    time.Time
}

// GetID - возвращает идентификатор учетной записи.
func (i Identity) GetID() string {
	return i.ID
}

// Role - роль учетной записи, совпадает с ее видом.
func (i Identity) Role() string {
	return string(i.Kind)
}

// Public - представление учетной записи без секретных данных.
func (i Identity) Public() Profile {
	return Profile{
		ID:          i.ID,
		Name:        i.Name,
		Email:       i.Email,
		Role:        i.Role(),
		Institution: i.Institution,
		CreatedAt:   i.CreatedAt,
	}
}

// Profile - данные учетной записи, которые можно отдавать клиенту.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Institution string    `json:"institution,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegistrationData - данные для регистрации учетной записи.
type RegistrationData struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Institution string `json:"institution,omitempty"`
}

// LoginData - данные для авторизации.
type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result - результат успешной регистрации или авторизации.
type Result struct {
	Token    string
	Identity Profile
}

// Store - хранилище учетных записей обоих видов с общим уникальным индексом по email.
type Store interface {
	// FindByEmail - поиск по email без учета регистра. Без kinds поиск ведется по всем видам.
	FindByEmail(ctx context.Context, email string, kinds ...Kind) (Identity, bool, error)
	// FindByID - поиск учетной записи по идентификатору.
	FindByID(ctx context.Context, id string) (Identity, bool, error)
	// Create - сохраняет новую учетную запись. Если email занят, возвращает ErrDuplicateEmail.
	Create(ctx context.Context, ident Identity) (Identity, error)
}

// Authenticator - интерфейс для реализации процедур регистрации и авторизации пользователя.
type Authenticator interface {
	Register(ctx context.Context, kind Kind, data RegistrationData) (Result, error)
	Login(ctx context.Context, kind Kind, data LoginData) (Result, error)
	VerifySession(ctx context.Context, tok string) (token.Session, error)
	Profile(ctx context.Context, id string) (Profile, error)
}
