package handlers

import (
	"net/http"

	"slideforge/internal/models"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// currentUser resolves the session cookie into a user and stores it in the
// Gin context. Missing or invalid sessions just leave the request
// unauthenticated; requireUser decides what that means per route.
func (h *Handler) currentUser(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.Next()
		return
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		c.Next()
		return
	}

	u, err := h.services.UserByID(userID)
	if err != nil || u == nil {
		c.Next()
		return
	}

	c.Set(userContextKey, u)
	c.Next()
}

// requireUser redirects unauthenticated requests to the login page.
func (h *Handler) requireUser(c *gin.Context) {
	if currentUserFrom(c) == nil {
		setFlash(c, flashWarning, "Please log in to access this page.")
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}

func currentUserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
