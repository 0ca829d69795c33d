package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transaction_form/platform/apperr"
	"transaction_form/platform/config"
	"transaction_form/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func adminEngine(secret string) *gin.Engine {
	engine := gin.New()
	engine.GET("/forms", AdminRequired(&config.Config{AdminJWTSecret: secret}), func(c *gin.Context) {
		admin := GetAdmin(c)
		OK(c, gin.H{"subject": admin.Subject(), "authenticated": admin.IsAuthenticated()})
	})
	return engine
}

func requestWithToken(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/forms", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAdminRequired(t *testing.T) {
	engine := adminEngine("s3cret")

	w := requestWithToken(engine, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = requestWithToken(engine, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	wrong, err := IssueAdminToken("other", "ops", time.Hour)
	require.NoError(t, err)
	w = requestWithToken(engine, wrong)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired, err := IssueAdminToken("s3cret", "ops", -time.Minute)
	require.NoError(t, err)
	w = requestWithToken(engine, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := IssueAdminToken("s3cret", "ops", time.Hour)
	require.NoError(t, err)
	w = requestWithToken(engine, token)
	require.Equal(t, http.StatusOK, w.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	data := env.Data.(map[string]any)
	assert.Equal(t, "ops", data["subject"])
	assert.Equal(t, true, data["authenticated"])
}

func TestIssueAdminTokenNeedsSecret(t *testing.T) {
	_, err := IssueAdminToken("", "ops", time.Hour)
	assert.Error(t, err)
}

func TestGetAdminWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	admin := GetAdmin(c)
	assert.False(t, admin.IsAuthenticated())
	assert.Empty(t, admin.Subject())
}

func TestPerMinuteLimiter(t *testing.T) {
	engine := gin.New()
	engine.POST("/submit", NewPerMinuteLimiter(2, logger.Discard()).RateLimit(), func(c *gin.Context) {
		OK(c, nil)
	})

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestPerMinuteLimiterDisabled(t *testing.T) {
	engine := gin.New()
	engine.POST("/submit", NewPerMinuteLimiter(0, logger.Discard()).RateLimit(), func(c *gin.Context) {
		OK(c, nil)
	})

	for range 50 {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestIDAndSecurityHeaders(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(), SecurityHeaders())
	engine.GET("/", func(c *gin.Context) { OK(c, nil) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperr.Validation("bad field"), http.StatusBadRequest, "bad field"},
		{"not found", apperr.NotFound("Form not found"), http.StatusNotFound, "Form not found"},
		{"upstream", apperr.Upstream("FUB API error: 502 Bad Gateway", nil), http.StatusInternalServerError, "FUB API error: 502 Bad Gateway"},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			require.True(t, HandleError(c, tc.err))

			var env Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tc.status, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tc.msg, env.Error)
		})
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.False(t, HandleError(c, nil))
}
