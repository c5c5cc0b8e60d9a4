package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/checker"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/token"
	"github.com/abezemskiy/immersilearn/internal/repositories/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	type want struct {
		status int
		body   ErrorBody
	}
	tests := []struct {
		name string
		err  error
		want want
	}{
		{
			name: "validation error",
			err:  &checker.ValidationError{Reason: checker.InvalidEmail, Field: "email"},
			want: want{status: http.StatusBadRequest, body: ErrorBody{Error: "invalid email format", Field: "email"}},
		},
		{
			name: "duplicate email",
			err:  identity.ErrDuplicateEmail,
			want: want{status: http.StatusConflict, body: ErrorBody{Error: "email already registered"}},
		},
		{
			name: "invalid credentials",
			err:  identity.ErrInvalidCredentials,
			want: want{status: http.StatusUnauthorized, body: ErrorBody{Error: "invalid email or password"}},
		},
		{
			name: "token expired",
			err:  fmt.Errorf("%w, %w", token.ErrTokenExpired, errors.New("jwt error")),
			want: want{status: http.StatusUnauthorized, body: ErrorBody{Error: "token expired"}},
		},
		{
			name: "token invalid",
			err:  token.ErrTokenInvalid,
			want: want{status: http.StatusUnauthorized, body: ErrorBody{Error: "invalid token"}},
		},
		{
			name: "not found",
			err:  identity.ErrNotFound,
			want: want{status: http.StatusNotFound, body: ErrorBody{Error: "not found"}},
		},
		{
			name: "internal error",
			err:  errors.New("pq: password authentication failed for user secret"),
			want: want{status: http.StatusInternalServerError, body: ErrorBody{Error: InternalErrorMessage}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			w := httptest.NewRecorder()
			FromError(w, req, tt.err)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.want.status, res.StatusCode)
			assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

			var body ErrorBody
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.Equal(t, tt.want.body, body)
		})
	}
}
