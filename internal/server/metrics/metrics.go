// metrics - счетчики Prometheus для операций аутентификации.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Операции, которые учитываются в счетчике.
const (
	OperationRegister = "register"
	OperationLogin    = "login"
	OperationVerify   = "verify"
)

// Исходы операций.
const (
	ResultSuccess            = "success"
	ResultValidationError    = "validation_error"
	ResultDuplicateEmail     = "duplicate_email"
	ResultInvalidCredentials = "invalid_credentials"
	ResultTokenExpired       = "token_expired"
	ResultTokenInvalid       = "token_invalid"
	ResultInternalError      = "internal_error"
)

var registry = prometheus.NewRegistry()

// AuthAttempts - количество операций аутентификации по операции, виду учетной записи и исходу.
var AuthAttempts = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
	Namespace: "immersilearn",
	Subsystem: "auth",
	Name:      "attempts_total",
	Help:      "Number of register, login and token verification attempts by outcome.",
}, []string{"operation", "kind", "result"})

// HashDuration - время вычисления и проверки хэшей паролей.
var HashDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "immersilearn",
	Subsystem: "auth",
	Name:      "hash_duration_seconds",
	Help:      "Duration of password hashing and verification.",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
}, []string{"operation"})

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveAuth - учитывает исход операции аутентификации.
func ObserveAuth(operation, kind, result string) {
	AuthAttempts.WithLabelValues(operation, kind, result).Inc()
}

// Handler - http.Handler, отдающий метрики сервера.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
