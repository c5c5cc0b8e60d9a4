// service - пакет, который реализует регистрацию и авторизацию пользователей и преподавателей.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/checker"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/hasher"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/id"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/token"
	"github.com/abezemskiy/immersilearn/internal/repositories/identity"
	"github.com/abezemskiy/immersilearn/internal/server/logger"
	"github.com/abezemskiy/immersilearn/internal/server/metrics"

	"go.uber.org/zap"
)

// Service - реализует интерфейс identity.Authenticator.
// Все зависимости передаются при создании, глобального состояния у сервиса нет.
type Service struct {
	store  identity.Store
	hasher *hasher.Hasher
	issuer *token.Issuer
}

// New - создает сервис аутентификации.
func New(store identity.Store, h *hasher.Hasher, issuer *token.Issuer) (*Service, error) {
	if store == nil || h == nil || issuer == nil {
		return nil, errors.New("store, hasher and issuer must not be nil")
	}
	return &Service{
		store:  store,
		hasher: h,
		issuer: issuer,
	}, nil
}

// internal - логирует подробности внутренней ошибки и возвращает identity.ErrInternal без деталей.
func internal(operation string, kind identity.Kind, err error) error {
	logger.ServerLog.Error("internal error in identity service",
		zap.String("operation", operation),
		zap.String("kind", string(kind)),
		zap.String("error", err.Error()))
	metrics.ObserveAuth(operation, string(kind), metrics.ResultInternalError)
	return identity.ErrInternal
}

// Register - регистрирует новую учетную запись и выдает токен сессии.
// Email должен быть свободен среди учетных записей обоих видов.
func (s *Service) Register(ctx context.Context, kind identity.Kind, data identity.RegistrationData) (identity.Result, error) {
	const op = metrics.OperationRegister
	if !kind.Valid() {
		return identity.Result{}, internal(op, kind, fmt.Errorf("unknown identity kind %q", kind))
	}

	clean, err := checker.ValidateRegistration(kind, data)
	if err != nil {
		metrics.ObserveAuth(op, string(kind), metrics.ResultValidationError)
		return identity.Result{}, err
	}

	// проверяю, что email не занят учетной записью любого вида
	_, exists, err := s.store.FindByEmail(ctx, clean.Email)
	if err != nil {
		return identity.Result{}, internal(op, kind, fmt.Errorf("failed to check email, %w", err))
	}
	if exists {
		logger.ServerLog.Debug("email is already registered", zap.String("email", hasher.Fingerprint(clean.Email)))
		metrics.ObserveAuth(op, string(kind), metrics.ResultDuplicateEmail)
		return identity.Result{}, identity.ErrDuplicateEmail
	}

	start := time.Now()
	hash, err := s.hasher.Hash(ctx, clean.Password)
	metrics.HashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		return identity.Result{}, internal(op, kind, err)
	}

	identID, err := id.GenerateID()
	if err != nil {
		return identity.Result{}, internal(op, kind, err)
	}

	created, err := s.store.Create(ctx, identity.Identity{
		ID:           identID,
		Kind:         kind,
		Name:         clean.Name,
		Email:        clean.Email,
		PasswordHash: hash,
		Institution:  clean.Institution,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// параллельная регистрация с тем же email успела раньше
		if errors.Is(err, identity.ErrDuplicateEmail) {
			metrics.ObserveAuth(op, string(kind), metrics.ResultDuplicateEmail)
			return identity.Result{}, identity.ErrDuplicateEmail
		}
		return identity.Result{}, internal(op, kind, fmt.Errorf("failed to create identity, %w", err))
	}

	tok, err := s.issuer.Issue(created)
	if err != nil {
		return identity.Result{}, internal(op, kind, err)
	}

	logger.ServerLog.Info("identity registered", zap.String("id", created.ID), zap.String("kind", string(kind)))
	metrics.ObserveAuth(op, string(kind), metrics.ResultSuccess)
	return identity.Result{Token: tok, Identity: created.Public()}, nil
}

// Login - авторизует учетную запись заданного вида и выдает токен сессии.
// Для неизвестного email и неверного пароля возвращается одна и та же ошибка identity.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, kind identity.Kind, data identity.LoginData) (identity.Result, error) {
	const op = metrics.OperationLogin
	if !kind.Valid() {
		return identity.Result{}, internal(op, kind, fmt.Errorf("unknown identity kind %q", kind))
	}

	clean, err := checker.ValidateLogin(data)
	if err != nil {
		metrics.ObserveAuth(op, string(kind), metrics.ResultValidationError)
		return identity.Result{}, err
	}

	ident, ok, err := s.store.FindByEmail(ctx, clean.Email, kind)
	if err != nil {
		return identity.Result{}, internal(op, kind, fmt.Errorf("failed to find identity, %w", err))
	}

	start := time.Now()
	var match bool
	if ok {
		match = s.hasher.Verify(ctx, clean.Password, ident.PasswordHash)
	} else {
		// проверка с фиктивным хэшем выравнивает время ответа для неизвестного email
		match = s.hasher.VerifyDummy(ctx, clean.Password)
	}
	metrics.HashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())

	if !match {
		if err := ctx.Err(); err != nil {
			return identity.Result{}, internal(op, kind, err)
		}
		logger.ServerLog.Debug("invalid credentials", zap.String("email", hasher.Fingerprint(clean.Email)))
		metrics.ObserveAuth(op, string(kind), metrics.ResultInvalidCredentials)
		return identity.Result{}, identity.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(ident)
	if err != nil {
		return identity.Result{}, internal(op, kind, err)
	}

	metrics.ObserveAuth(op, string(kind), metrics.ResultSuccess)
	return identity.Result{Token: tok, Identity: ident.Public()}, nil
}

// VerifySession - проверяет токен сессии. Возвращает token.ErrTokenExpired или token.ErrTokenInvalid.
func (s *Service) VerifySession(_ context.Context, tok string) (token.Session, error) {
	session, err := s.issuer.Verify(tok)
	if err != nil {
		result := metrics.ResultTokenInvalid
		if errors.Is(err, token.ErrTokenExpired) {
			result = metrics.ResultTokenExpired
		}
		metrics.ObserveAuth(metrics.OperationVerify, "", result)
		return token.Session{}, err
	}
	metrics.ObserveAuth(metrics.OperationVerify, session.Role, metrics.ResultSuccess)
	return session, nil
}

// Profile - возвращает данные учетной записи без секретов.
func (s *Service) Profile(ctx context.Context, identID string) (identity.Profile, error) {
	ident, ok, err := s.store.FindByID(ctx, identID)
	if err != nil {
		logger.ServerLog.Error("failed to find identity by id", zap.String("id", identID), zap.String("error", err.Error()))
		return identity.Profile{}, identity.ErrInternal
	}
	if !ok {
		return identity.Profile{}, identity.ErrNotFound
	}
	return ident.Public(), nil
}
