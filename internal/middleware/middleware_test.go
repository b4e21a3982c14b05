package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/maze-server/internal/config"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func claimsEcho(w http.ResponseWriter, r *http.Request) {
	claims, ok := SessionClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	io.WriteString(w, claims.SessionID)
}

func TestAuth(t *testing.T) {
	j, err := config.NewJWTWithSecret([]byte("secret"), time.Hour)
	require.NoError(t, err)
	id := uuid.New()
	token, err := j.Sign(j.NewSessionClaims(id))
	require.NoError(t, err)

	h := Wrap(http.HandlerFunc(claimsEcho), Auth(quietLogger(), j))

	tests := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"header", "/", "Bearer " + token, http.StatusOK},
		{"query", "/?token=" + token, "", http.StatusOK},
		{"none", "/", "", http.StatusUnauthorized},
		{"garbage", "/", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "/", "Basic " + token, http.StatusUnauthorized},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, test.target, nil)
			if test.header != "" {
				r.Header.Set("Authorization", test.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, test.status, w.Code)
			if test.status == http.StatusOK {
				assert.Equal(t, id.String(), w.Body.String())
			}
		})
	}
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.NotFoundHandler(), mark("inner"), mark("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLoggingKeepsStatus(t *testing.T) {
	h := Wrap(http.NotFoundHandler(), Logging(quietLogger()))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCorsPreflight(t *testing.T) {
	h := Wrap(http.NotFoundHandler(), Cors())
	r := httptest.NewRequest(http.MethodOptions, "/maze", nil)
	r.Header.Set("Origin", "http://example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
