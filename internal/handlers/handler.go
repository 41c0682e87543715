package handlers

import (
	"net/http"

	"slideforge/internal/logger"
	"slideforge/internal/service"

	"github.com/gin-gonic/gin"
)

// Config carries the filesystem locations the web layer touches.
type Config struct {
	TemplatesGlob string // HTML template glob, e.g. "web/templates/*.html"
	OutputDir     string // directory deck files are served from
}

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Match on the raw path so encoded separators stay inside the download
	// :filename parameter instead of reshaping the route.
	router.UseRawPath = true

	if h.cfg.TemplatesGlob != "" {
		router.LoadHTMLGlob(h.cfg.TemplatesGlob)
	}

	// Resolve the session cookie (if any) for every request.
	router.Use(h.currentUser)

	// Health endpoint
	router.GET("/health", h.health)

	// Public pages
	router.GET("/", h.home)
	router.GET("/home", h.home)
	router.GET("/register", h.registerPage)
	router.POST("/register", h.register)
	router.GET("/login", h.loginPage)
	router.POST("/login", h.login)

	// Authenticated pages
	private := router.Group("/", h.requireUser)
	{
		private.GET("/logout", h.logout)
		private.GET("/profile", h.profile)
		private.GET("/generator", h.generatorPage)
		private.POST("/generator", h.generate)
		private.GET("/download/:filename", h.download)
	}

	return router
}

// render emits an HTML page with the current user and any pending flash
// message merged into the template data.
func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["user"]; !ok {
		data["user"] = currentUserFrom(c)
	}
	if category, message, ok := popFlash(c); ok {
		data["flash_category"] = category
		data["flash_message"] = message
	}
	c.HTML(code, name, data)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
