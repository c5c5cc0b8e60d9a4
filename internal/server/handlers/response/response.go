// response - пакет для формирования JSON-ответов сервера.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/checker"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/token"
	"github.com/abezemskiy/immersilearn/internal/repositories/identity"
	"github.com/abezemskiy/immersilearn/internal/server/logger"

	"go.uber.org/zap"
)

// InternalErrorMessage - текст ответа на внутреннюю ошибку. Подробности клиенту не раскрываются.
const InternalErrorMessage = "internal server error"

// ErrorBody - тело ответа с ошибкой.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
}

// JSON - сериализует body и отправляет его с заданным статусом.
func JSON(res http.ResponseWriter, status int, body any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(body); err != nil {
		logger.ServerLog.Error("failed to encode response body", zap.String("error", err.Error()))
	}
}

// Error - отправляет ответ с ошибкой.
func Error(res http.ResponseWriter, req *http.Request, status int, msg string) {
	logger.ServerLog.Info(msg, zap.String("address", req.URL.String()), zap.Int("status", status))
	JSON(res, status, ErrorBody{Success: false, Error: msg})
}

// FromError - отправляет ответ, статус которого определяется видом ошибки.
func FromError(res http.ResponseWriter, req *http.Request, err error) {
	var vErr *checker.ValidationError
	switch {
	case errors.As(err, &vErr):
		logger.ServerLog.Info("validation error", zap.String("address", req.URL.String()),
			zap.String("field", vErr.Field), zap.String("reason", string(vErr.Reason)))
		JSON(res, http.StatusBadRequest, ErrorBody{Success: false, Error: vErr.Error(), Field: vErr.Field})
	case errors.Is(err, identity.ErrDuplicateEmail):
		Error(res, req, http.StatusConflict, "email already registered")
	case errors.Is(err, identity.ErrInvalidCredentials):
		Error(res, req, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, token.ErrTokenExpired):
		Error(res, req, http.StatusUnauthorized, "token expired")
	case errors.Is(err, token.ErrTokenInvalid):
		Error(res, req, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, identity.ErrNotFound):
		Error(res, req, http.StatusNotFound, "not found")
	default:
		logger.ServerLog.Error("request failed", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		JSON(res, http.StatusInternalServerError, ErrorBody{Success: false, Error: InternalErrorMessage})
	}
}
