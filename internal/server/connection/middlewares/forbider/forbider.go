package forbider

import (
	"net/http"

	"github.com/abezemskiy/immersilearn/internal/server/handlers/response"
	"github.com/abezemskiy/immersilearn/internal/server/identity/auth"
	"github.com/abezemskiy/immersilearn/internal/server/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ForeignForbider - middleware, которая запрещает действие над чужими данными.
// Идентификатор владельца берется из параметра маршрута param и сравнивается с идентификатором из сессии.
// Должна вызываться после auth.Middleware.
func ForeignForbider(param string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			session, ok := auth.SessionFromContext(req.Context())
			if !ok {
				logger.ServerLog.Error("session not found in context", zap.String("address", req.URL.String()))
				response.Error(res, req, http.StatusInternalServerError, response.InternalErrorMessage)
				return
			}

			owner := chi.URLParam(req, param)
			if owner != session.UserID {
				logger.ServerLog.Info("access to foreign data", zap.String("address", req.URL.String()),
					zap.String("user", session.UserID))
				response.Error(res, req, http.StatusForbidden, "access denied")
				return
			}
			h.ServeHTTP(res, req)
		})
	}
}
