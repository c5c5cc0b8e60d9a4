package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAuth(t *testing.T) {
	counter := AuthAttempts.WithLabelValues(OperationLogin, "professor", ResultInvalidCredentials)
	before := testutil.ToFloat64(counter)

	ObserveAuth(OperationLogin, "professor", ResultInvalidCredentials)
	ObserveAuth(OperationLogin, "professor", ResultInvalidCredentials)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestHandler(t *testing.T) {
	ObserveAuth(OperationRegister, "user", ResultSuccess)
	HashDuration.WithLabelValues("hash").Observe(0.1)

	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, request)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `immersilearn_auth_attempts_total{kind="user",operation="register",result="success"}`)
	assert.Contains(t, string(body), "immersilearn_auth_hash_duration_seconds")
	assert.Contains(t, string(body), "go_goroutines")
}
