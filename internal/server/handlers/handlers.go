package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/checker"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/header"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/id"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/token"
	"github.com/abezemskiy/immersilearn/internal/repositories/identity"
	"github.com/abezemskiy/immersilearn/internal/repositories/leaderboard"
	"github.com/abezemskiy/immersilearn/internal/repositories/progress"
	"github.com/abezemskiy/immersilearn/internal/server/handlers/response"
	"github.com/abezemskiy/immersilearn/internal/server/identity/auth"
	"github.com/abezemskiy/immersilearn/internal/server/logger"
	"github.com/abezemskiy/immersilearn/internal/server/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodySize - ограничение размера тела запроса.
const maxBodySize = 1 << 20

// CookieOptions - настройки передачи токена в httpOnly cookie.
type CookieOptions struct {
	Enabled bool // устанавливать ли cookie при авторизации
	Secure  bool // cookie передается только по HTTPS
}

// AuthResponse - ответ на успешную регистрацию или авторизацию.
// Данные учетной записи передаются в поле user или professor в зависимости от вида учетной записи.
type AuthResponse struct {
	Success   bool              `json:"success"`
	Token     string            `json:"token"`
	User      *identity.Profile `json:"user,omitempty"`
	Professor *identity.Profile `json:"professor,omitempty"`
}

func newAuthResponse(kind identity.Kind, result identity.Result) AuthResponse {
	body := AuthResponse{Success: true, Token: result.Token}
	profile := result.Identity
	if kind == identity.KindProfessor {
		body.Professor = &profile
	} else {
		body.User = &profile
	}
	return body
}

// decodeBody - разбирает JSON тела запроса. При ошибке отправляет ответ 400 и возвращает false.
func decodeBody(res http.ResponseWriter, req *http.Request, dst any) bool {
	defer req.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(res, req.Body, maxBodySize)).Decode(dst); err != nil {
		logger.ServerLog.Info("failed to parse request body", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		response.Error(res, req, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// Register - хэндлер для регистрации учетной записи заданного вида. Если учетная запись успешно зарегистрирована,
// токен передается в теле ответа и в заголовке Authorization.
func Register(res http.ResponseWriter, req *http.Request, authn identity.Authenticator, kind identity.Kind) {
	var regData identity.RegistrationData
	if !decodeBody(res, req, &regData) {
		return
	}

	result, err := authn.Register(req.Context(), kind, regData)
	if err != nil {
		response.FromError(res, req, err)
		return
	}

	// устанавливаю токен в заголовок
	header.SetToken(res, result.Token)
	response.JSON(res, http.StatusCreated, newAuthResponse(kind, result))
}

// RegisterHandler - обертка над Register.
func RegisterHandler(authn identity.Authenticator, kind identity.Kind) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		Register(res, req, authn, kind)
	}
	return fn
}

// Login - хэндлер для авторизации учетной записи заданного вида.
// Для неизвестного email и неверного пароля ответ одинаков.
func Login(res http.ResponseWriter, req *http.Request, authn identity.Authenticator, kind identity.Kind, cookie CookieOptions) {
	var loginData identity.LoginData
	if !decodeBody(res, req, &loginData) {
		return
	}

	result, err := authn.Login(req.Context(), kind, loginData)
	if err != nil {
		response.FromError(res, req, err)
		return
	}

	header.SetToken(res, result.Token)
	if cookie.Enabled {
		header.SetTokenCookie(res, result.Token, token.ExpireDuration, cookie.Secure)
	}
	response.JSON(res, http.StatusOK, newAuthResponse(kind, result))
}

// LoginHandler - обертка над Login.
func LoginHandler(authn identity.Authenticator, kind identity.Kind, cookie CookieOptions) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		Login(res, req, authn, kind, cookie)
	}
	return fn
}

// Me - хэндлер, возвращающий данные учетной записи текущей сессии.
func Me(res http.ResponseWriter, req *http.Request, authn identity.Authenticator) {
	session, ok := auth.SessionFromContext(req.Context())
	if !ok {
		logger.ServerLog.Error("session not found in context", zap.String("address", req.URL.String()))
		response.FromError(res, req, errors.New("session not found in context"))
		return
	}

	profile, err := authn.Profile(req.Context(), session.UserID)
	if err != nil {
		response.FromError(res, req, err)
		return
	}

	body := struct {
		Success bool             `json:"success"`
		User    identity.Profile `json:"user"`
	}{Success: true, User: profile}
	response.JSON(res, http.StatusOK, body)
}

// MeHandler - обертка над Me.
func MeHandler(authn identity.Authenticator) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		Me(res, req, authn)
	}
	return fn
}

// GetLeaderboard - хэндлер для получения лучших результатов. Пустая таблица заполняется начальными данными.
func GetLeaderboard(res http.ResponseWriter, req *http.Request, keeper leaderboard.Keeper) {
	top, err := leaderboard.Top(req.Context(), keeper)
	if err != nil {
		response.FromError(res, req, err)
		return
	}
	response.JSON(res, http.StatusOK, top)
}

// GetLeaderboardHandler - обертка над GetLeaderboard.
func GetLeaderboardHandler(keeper leaderboard.Keeper) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		GetLeaderboard(res, req, keeper)
	}
	return fn
}

// scoreRequest - новый результат для таблицы лидеров.
type scoreRequest struct {
	Username string `json:"username"`
	Score    *int   `json:"score"`
}

// AddScore - хэндлер для добавления результата. Возвращает обновленную таблицу лидеров.
func AddScore(res http.ResponseWriter, req *http.Request, keeper leaderboard.Keeper) {
	var score scoreRequest
	if !decodeBody(res, req, &score) {
		return
	}
	score.Username = checker.Sanitize(score.Username)
	if score.Username == "" {
		response.FromError(res, req, &checker.ValidationError{Reason: checker.MissingField, Field: "username"})
		return
	}
	if score.Score == nil {
		response.FromError(res, req, &checker.ValidationError{Reason: checker.MissingField, Field: "score"})
		return
	}
	if *score.Score < 0 || *score.Score > leaderboard.MaxScore {
		response.FromError(res, req, &checker.ValidationError{Reason: checker.InvalidValue, Field: "score"})
		return
	}

	if err := keeper.AddScore(req.Context(), score.Username, *score.Score); err != nil {
		response.FromError(res, req, err)
		return
	}

	top, err := keeper.TopScores(req.Context(), leaderboard.TopSize)
	if err != nil {
		response.FromError(res, req, err)
		return
	}
	response.JSON(res, http.StatusCreated, top)
}

// AddScoreHandler - обертка над AddScore.
func AddScoreHandler(keeper leaderboard.Keeper) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		AddScore(res, req, keeper)
	}
	return fn
}

// GetProgress - хэндлер для получения прогресса пользователя.
func GetProgress(res http.ResponseWriter, req *http.Request, keeper progress.Keeper) {
	userID := chi.URLParam(req, "userID")
	// идентификатор не в формате UUID не может принадлежать ни одному пользователю
	if !id.IsValid(userID) {
		response.Error(res, req, http.StatusNotFound, "user not found")
		return
	}

	p, ok, err := keeper.GetProgress(req.Context(), userID)
	if err != nil {
		response.FromError(res, req, err)
		return
	}
	if !ok {
		response.Error(res, req, http.StatusNotFound, "user not found")
		return
	}
	response.JSON(res, http.StatusOK, p)
}

// GetProgressHandler - обертка над GetProgress.
func GetProgressHandler(keeper progress.Keeper) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		GetProgress(res, req, keeper)
	}
	return fn
}

// pointsRequest - начисление очков пользователю.
type pointsRequest struct {
	PointsEarned *int `json:"pointsEarned"`
}

// UpdatePoints - хэндлер для начисления очков. Уровень и награды пересчитываются.
func UpdatePoints(res http.ResponseWriter, req *http.Request, keeper progress.Keeper) {
	userID := chi.URLParam(req, "userID")
	if !id.IsValid(userID) {
		response.Error(res, req, http.StatusNotFound, "user not found")
		return
	}

	var points pointsRequest
	if !decodeBody(res, req, &points) {
		return
	}
	if points.PointsEarned == nil {
		response.FromError(res, req, &checker.ValidationError{Reason: checker.MissingField, Field: "pointsEarned"})
		return
	}
	if *points.PointsEarned < 0 || *points.PointsEarned > progress.MaxPoints {
		response.FromError(res, req, &checker.ValidationError{Reason: checker.InvalidValue, Field: "pointsEarned"})
		return
	}

	p, ok, err := keeper.UpdateProgress(req.Context(), userID, progress.AddPoints(*points.PointsEarned))
	if err != nil {
		// сумма очков вышла бы за допустимый предел
		if errors.Is(err, progress.ErrPointsLimit) {
			err = &checker.ValidationError{Reason: checker.InvalidValue, Field: "pointsEarned"}
		}
		response.FromError(res, req, err)
		return
	}
	if !ok {
		response.Error(res, req, http.StatusNotFound, "user not found")
		return
	}
	response.JSON(res, http.StatusOK, p)
}

// UpdatePointsHandler - обертка над UpdatePoints.
func UpdatePointsHandler(keeper progress.Keeper) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		UpdatePoints(res, req, keeper)
	}
	return fn
}

// HandleOtherRequest - обработчик некорректных запросов.
func HandleOtherRequest() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		response.Error(res, req, http.StatusNotFound, "route not found")
	}
}

// Ping - хэндлер для проверки доступности хранилища.
func Ping(res http.ResponseWriter, req *http.Request, pinger storage.Pinger) {
	if err := pinger.Ping(req.Context()); err != nil {
		logger.ServerLog.Error("storage is not available", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		response.Error(res, req, http.StatusServiceUnavailable, "storage is not available")
		return
	}
	res.WriteHeader(http.StatusOK)
}

// PingHandler - обертка над Ping.
func PingHandler(pinger storage.Pinger) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		Ping(res, req, pinger)
	}
	return fn
}
