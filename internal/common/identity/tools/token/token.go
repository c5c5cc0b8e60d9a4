package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpireDuration - время действия токена сессии.
const ExpireDuration = 24 * time.Hour

var (
	// ErrTokenExpired - срок действия токена истек.
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenInvalid - подпись токена не прошла проверку или содержимое токена некорректно.
	ErrTokenInvalid = errors.New("token is not valid")
)

// Claims - структура утверждений, которая включает стандартные утверждения
// и пользовательские UserID и Role.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Session - данные сессии, извлеченные из проверенного токена.
type Session struct {
	UserID   string
	Role     string
	IssuedAt time.Time
}

// Subject - то, на кого выпускается токен. Реализуется identity.Identity.
type Subject interface {
	GetID() string
	Role() string
}

// Issuer - выпускает и проверяет JWT с подписью HS256.
// Секретный ключ задается при создании и дальше не меняется.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// Option - функциональная опция для Issuer.
type Option func(*Issuer)

// WithClock - устанавливает источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer - создает Issuer с секретным ключом для подписи токенов.
func NewIssuer(secret string, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret key must not be empty")
	}
	i := &Issuer{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue - создает токен для subject и возвращает его в виде строки.
func (i *Issuer) Issue(subject Subject) (string, error) {
	now := i.now()
	// создаю токен с алгоритмом подписи HS256 и утверждениями - Claims
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.GetID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ExpireDuration)),
		},
		UserID: subject.GetID(),
		Role:   subject.Role(),
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to signed JWT to string, %w", err)
	}
	return tokenString, nil
}

// Verify - проверяет подпись и срок действия токена и возвращает данные сессии.
// Алгоритм подписи в заголовке токена должен совпадать с тем, который сервер использует для подписи.
func (i *Issuer) Verify(tokenStr string) (Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, fmt.Errorf("%w, %w", ErrTokenExpired, err)
		}
		return Session{}, fmt.Errorf("%w, %w", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == "" || claims.Role == "" {
		return Session{}, ErrTokenInvalid
	}

	session := Session{
		UserID: claims.UserID,
		Role:   claims.Role,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}
