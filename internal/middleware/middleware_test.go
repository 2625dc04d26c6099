// internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterSeparatesOperators(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(rate.Every(time.Hour), 1)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if op := c.GetHeader("X-Operator"); op != "" {
			c.Set("operator", op)
		}
		c.Next()
	}, limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	request := func(operator string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		if operator != "" {
			req.Header.Set("X-Operator", operator)
		}
		return serve(r, req)
	}

	assert.Equal(t, http.StatusOK, request("alice").Code)
	limited := request("alice")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, request("bob").Code)
	assert.Equal(t, http.StatusOK, request("").Code)
}

func TestConsoleAuthDisabledWithoutHash(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ConsoleAuth("admin", ""))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestConsoleAuthSetsOperator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := utils.HashPassword("pw")
	require.NoError(t, err)

	var operator string
	r := gin.New()
	r.Use(ConsoleAuth("admin", hash))
	r.GET("/", func(c *gin.Context) {
		operator, _ = utils.GetOperatorFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("admin", "pw")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
	assert.Equal(t, "admin", operator)
}

func TestBackendTokenForwarding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var token string
	var tokenErr error
	r := gin.New()
	r.Use(BackendToken())
	r.GET("/", func(c *gin.Context) {
		token, tokenErr = services.ContextToken().Token(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AdminTokenHeader, " header-token ")
	serve(r, req)
	assert.NoError(t, tokenErr)
	assert.Equal(t, "header-token", token)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bearer-token")
	serve(r, req)
	assert.Equal(t, "bearer-token", token)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic YWRtaW46cHc=")
	serve(r, req)
	assert.ErrorIs(t, tokenErr, services.ErrUnauthenticated)
}

func TestRequestIDPropagation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		seen = services.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := serve(r, req)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), seen)
}
