package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const (
	sessionCookie = "jurisnote_session"
	sessionKey    = "session_id"
)

// Sessions assigns every browser a session id cookie.
func Sessions(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		// Refreshed on every request so the cookie outlives an active session.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, int(ttl.Seconds()), "/", "", false, true)
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// PasswordGate requires HTTP basic auth whose password matches the bcrypt
// hash. An empty hash disables the gate. The user name is ignored.
func PasswordGate(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hash == "" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		_, password, ok := c.Request.BasicAuth()
		if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
			c.Header("WWW-Authenticate", `Basic realm="JurisNote"`)
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "비밀번호가 필요합니다.")
			return
		}
		c.Next()
	}
}

// NewAnalyzeLimiter allows perMinute analyses per minute with an equal burst.
// Zero or less disables throttling.
func NewAnalyzeLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

// Throttle rejects requests once the limiter is exhausted.
func Throttle(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow() {
			c.Next()
			return
		}
		msg := "분석 요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			respondError(c, http.StatusTooManyRequests, "RATE_LIMITED", msg)
			return
		}
		c.String(http.StatusTooManyRequests, msg)
		c.Abort()
	}
}
