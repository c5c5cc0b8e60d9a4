// auth - пакет, который реализует middleware для аутентификации пользователя.
package auth

import (
	"context"
	"net/http"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/header"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/token"
	"github.com/abezemskiy/immersilearn/internal/server/handlers/response"
	"github.com/abezemskiy/immersilearn/internal/server/logger"

	"go.uber.org/zap"
)

type contextKey string

// SessionKey - ключ для установки данных сессии в контекст.
const SessionKey = contextKey("session")

// SessionVerifier - проверяет токен сессии.
type SessionVerifier interface {
	VerifySession(ctx context.Context, tok string) (token.Session, error)
}

// Middleware - проверяет JWT входящих запросов к серверу.
// Позволит установить доступ к ресурсам только для аутентифицированных пользователей.
// Токен берется из заголовка Authorization или из cookie, данные сессии устанавливаются в контекст.
func Middleware(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			getToken, err := header.GetToken(req)
			// В случае ошибки получения токена возвращаю статус 401 - пользователь не аутентифицирован.
			if err != nil {
				logger.ServerLog.Info("failed to get token from request", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
				response.Error(res, req, http.StatusUnauthorized, "authentication required")
				return
			}

			session, err := verifier.VerifySession(req.Context(), getToken)
			if err != nil {
				response.FromError(res, req, err)
				return
			}

			ctx := context.WithValue(req.Context(), SessionKey, session)

			// вызываю основной обработчик
			h.ServeHTTP(res, req.WithContext(ctx))
		})
	}
}

// SessionFromContext - извлекает данные сессии, установленные Middleware.
func SessionFromContext(ctx context.Context) (token.Session, bool) {
	session, ok := ctx.Value(SessionKey).(token.Session)
	return session, ok
}
