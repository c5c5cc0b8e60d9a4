package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/header"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/token"
	"github.com/abezemskiy/immersilearn/internal/repositories/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subject struct{ id, role string }

func (s subject) GetID() string { return s.id }
func (s subject) Role() string  { return s.role }

// issuerVerifier - адаптер token.Issuer к интерфейсу SessionVerifier для тестов.
type issuerVerifier struct{ *token.Issuer }

func (v issuerVerifier) VerifySession(_ context.Context, tok string) (token.Session, error) {
	return v.Verify(tok)
}

func TestMiddleware(t *testing.T) {
	testHandler := func(idWant string) http.HandlerFunc {
		return func(res http.ResponseWriter, req *http.Request) {
			// извлекаю данные сессии из контекста
			session, ok := SessionFromContext(req.Context())
			require.Equal(t, true, ok)

			// проверяю, что id полученный из контекста совпадает с ожидаемым
			assert.Equal(t, idWant, session.UserID)

			res.WriteHeader(http.StatusOK)
		}
	}

	now := time.Now()
	issuer, err := token.NewIssuer("success secret key", token.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	// Test. successful authentication ---------------------------------------
	idSuccess := "success id"
	tokenSuccess, err := issuer.Issue(subject{id: idSuccess, role: "user"})
	require.NoError(t, err)

	// Test error. token is expires ---------------------------------------
	expiredIssuer, err := token.NewIssuer("success secret key",
		token.WithClock(func() time.Time { return now.Add(-25 * time.Hour) }))
	require.NoError(t, err)
	tokenExpired, err := expiredIssuer.Issue(subject{id: idSuccess, role: "user"})
	require.NoError(t, err)

	type request struct {
		token     string
		setheader bool
		setcookie bool
	}
	type want struct {
		id     string
		status int
	}
	tests := []struct {
		name string
		req  request
		want want
	}{
		{
			name: "successful authentication",
			req:  request{token: tokenSuccess, setheader: true},
			want: want{id: idSuccess, status: 200},
		},
		{
			name: "successful authentication by cookie",
			req:  request{token: tokenSuccess, setcookie: true},
			want: want{id: idSuccess, status: 200},
		},
		{
			name: "header is not set",
			req:  request{},
			want: want{status: 401},
		},
		{
			name: "token is expried",
			req:  request{token: tokenExpired, setheader: true},
			want: want{status: 401},
		},
		{
			name: "wrong token",
			req:  request{token: "wrong token", setheader: true},
			want: want{status: 401},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.With(Middleware(issuerVerifier{issuer})).Get("/test", testHandler(tt.want.id))

			request := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.req.setheader {
				// устанавливаю заголовк с токеном в запрос
				request.Header.Set("Authorization", "Bearer "+tt.req.token)
			}
			if tt.req.setcookie {
				request.AddCookie(&http.Cookie{Name: header.CookieName, Value: tt.req.token})
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, request)

			result := w.Result()
			defer result.Body.Close()
			assert.Equal(t, tt.want.status, result.StatusCode)
		})
	}
}

func TestMiddlewareWithAuthenticator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockAuthenticator(ctrl)
	m.EXPECT().VerifySession(gomock.Any(), "some-token").Return(token.Session{UserID: "id", Role: "professor"}, nil)

	r := chi.NewRouter()
	r.With(Middleware(m)).Get("/test", func(res http.ResponseWriter, req *http.Request) {
		session, ok := SessionFromContext(req.Context())
		require.Equal(t, true, ok)
		assert.Equal(t, "professor", session.Role)
		res.WriteHeader(http.StatusNoContent)
	})

	request := httptest.NewRequest(http.MethodGet, "/test", nil)
	request.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, request)

	result := w.Result()
	defer result.Body.Close()
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
}

func TestSessionFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	_, ok := SessionFromContext(req.Context())
	assert.Equal(t, false, ok)
}
