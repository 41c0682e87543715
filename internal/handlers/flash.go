package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// One-shot flash message carried in a short-lived cookie, read and cleared
// on the next page render. Gin URL-escapes cookie values, so the separator
// never collides with message text.
const (
	flashCookieName   = "flash"
	flashCookieMaxAge = 300

	flashSuccess = "success"
	flashDanger  = "danger"
	flashWarning = "warning"
)

func setFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookieName, category+"|"+message, flashCookieMaxAge, "/", "", false, true)
}

func popFlash(c *gin.Context) (category, message string, ok bool) {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return "", "", false
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
