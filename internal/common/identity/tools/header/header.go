package header

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CookieName - имя httpOnly cookie, в которой может передаваться токен.
const CookieName = "jwt"

// GetTokenFromHeader - функция для получения токена из заголовка запроса.
func GetTokenFromHeader(req *http.Request) (string, error) {
	return parseBearer(req.Header.Get("Authorization"))
}

// GetToken - функция для получения токена из запроса. Сначала проверяется заголовок Authorization,
// затем cookie.
func GetToken(req *http.Request) (string, error) {
	if req.Header.Get("Authorization") != "" {
		return GetTokenFromHeader(req)
	}
	cookie, err := req.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", fmt.Errorf("missing authorization header or cookie")
	}
	return cookie.Value, nil
}

// SetToken - устанавливает токен в заголовок ответа.
func SetToken(res http.ResponseWriter, token string) {
	res.Header().Set("Authorization", "Bearer "+token)
}

// SetTokenCookie - устанавливает токен в httpOnly cookie на время действия токена.
func SetTokenCookie(res http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(res, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetTokenFromResponseHeader извлекает JWT-токен из заголовка в ответе сервера
// необходима для тестирования хэндлеров сервера. Имитирую работу клиента и получение им токена из заголовка.
func GetTokenFromResponseHeader(res *http.Response) (string, error) {
	return parseBearer(res.Header.Get("Authorization"))
}

func parseBearer(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("missing authorization header")
	}

	// Проверяю, что заголовок начинается с "Bearer "
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", fmt.Errorf("invalid authorization header format")
	}
	return parts[1], nil
}
