package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/pkg/logger"
	"github.com/m04kA/SMC-StaffingService/pkg/metrics"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func newRouter(auth *Authenticator) *mux.Router {
	log := logger.NewNop()
	r := mux.NewRouter()
	r.Use(auth.Middleware)

	read := r.PathPrefix("").Subrouter()
	read.Use(RequireCapability(CapShiftsRead, log))
	read.Handle("/shifts", ok).Methods(http.MethodGet)

	write := r.PathPrefix("").Subrouter()
	write.Use(RequireCapability(CapShiftsWrite, log))
	write.Handle("/shifts", ok).Methods(http.MethodPost)

	return r
}

func do(t *testing.T, h http.Handler, method, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, "/shifts", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuth_Capabilities(t *testing.T) {
	auth := NewAuthenticator("secret", "staffing", logger.NewNop())
	router := newRouter(auth)

	reader, err := auth.IssueToken("operator-1", CapShiftsRead)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, reader))
	assert.Equal(t, http.StatusForbidden, do(t, router, http.MethodPost, reader))
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, ""))
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, "garbage"))

	writer, err := auth.IssueToken("operator-2", CapShiftsRead, CapShiftsWrite)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodPost, writer))
}

func TestAuth_RejectsForeignTokens(t *testing.T) {
	auth := NewAuthenticator("secret", "staffing", logger.NewNop())
	router := newRouter(auth)

	otherKey, err := NewAuthenticator("other", "staffing", logger.NewNop()).IssueToken("x", CapShiftsRead)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, otherKey))

	otherIssuer, err := NewAuthenticator("secret", "someone-else", logger.NewNop()).IssueToken("x", CapShiftsRead)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, otherIssuer))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Caps: []string{string(CapShiftsRead)},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "staffing",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, expired))
}

func TestRequireCapability_WithoutAuthenticator(t *testing.T) {
	r := mux.NewRouter()
	r.Use(RequireCapability(CapShiftsWrite, logger.NewNop()))
	r.Handle("/shifts", ok)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, ""))
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(0.001, 2, logger.NewNop())(ok)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, ""))
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, ""))
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodGet, ""))
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/shifts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shifts/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/shifts/{id}", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight.WithLabelValues(http.MethodGet)))
}
