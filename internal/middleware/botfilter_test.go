package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/northpointhomes/siteworks/internal/middleware"
)

func botFlagFor(t *testing.T, userAgent string) bool {
	t.Helper()
	gin.SetMode(gin.TestMode)

	flagged := false
	r := gin.New()
	r.Use(middleware.BotFilter())
	r.POST("/api/analytics", func(c *gin.Context) {
		flagged = c.GetBool(middleware.BotFlagKey)
		c.Status(http.StatusAccepted)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analytics", http.NoBody)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	r.ServeHTTP(w, req)

	return flagged
}

func TestBotFilter_AllowsNormalUA(t *testing.T) {
	assert.False(t, botFlagFor(t, "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"))
}

func TestBotFilter_FlagsGooglebot(t *testing.T) {
	assert.True(t, botFlagFor(t, "Googlebot/2.1 (+http://www.google.com/bot.html)"))
}

func TestBotFilter_FlagsLighthouse(t *testing.T) {
	assert.True(t, botFlagFor(t, "Mozilla/5.0 Chrome-Lighthouse"))
}

func TestBotFilter_FlagsMissingUA(t *testing.T) {
	assert.True(t, botFlagFor(t, ""))
}
