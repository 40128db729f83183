package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	assert.NotNil(t, rl)
	assert.Equal(t, 10, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
	assert.NotNil(t, rl.config.KeyFunc)
	assert.Equal(t, "too many requests, please try again later", rl.config.Message)
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()

	request := func(handler echo.HandlerFunc, ip string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		return rec, handler(e.NewContext(req, rec))
	}
	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	}

	t.Run("WithinLimit", func(t *testing.T) {
		handler := NewRateLimiter(RateLimitConfig{Requests: 2, Window: time.Minute}).Middleware()(ok)

		for i := 0; i < 2; i++ {
			rec, err := request(handler, "10.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("ExceededLimit", func(t *testing.T) {
		handler := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute}).Middleware()(ok)

		_, err := request(handler, "10.0.0.2")
		require.NoError(t, err)

		rec, err := request(handler, "10.0.0.2")
		he, isHTTP := err.(*echo.HTTPError)
		require.True(t, isHTTP)
		assert.Equal(t, http.StatusTooManyRequests, he.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		handler := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute}).Middleware()(ok)

		_, err := request(handler, "10.0.0.3")
		require.NoError(t, err)
		_, err = request(handler, "10.0.0.4")
		require.NoError(t, err)
	})

	t.Run("WindowResets", func(t *testing.T) {
		handler := NewRateLimiter(RateLimitConfig{Requests: 1, Window: 50 * time.Millisecond}).Middleware()(ok)

		_, err := request(handler, "10.0.0.5")
		require.NoError(t, err)
		_, err = request(handler, "10.0.0.5")
		require.Error(t, err)

		time.Sleep(80 * time.Millisecond)
		_, err = request(handler, "10.0.0.5")
		assert.NoError(t, err)
	})
}

func TestAuthRateLimiter(t *testing.T) {
	rl := AuthRateLimiter(5)
	assert.Equal(t, 5, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
	assert.Contains(t, rl.config.Message, "authentication")
}
