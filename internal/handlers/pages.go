package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html", gin.H{"title": "Home"})
}

func (h *Handler) profile(c *gin.Context) {
	h.render(c, http.StatusOK, "profile.html", gin.H{"title": "Profile"})
}
