package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slideforge/internal/deck"
	"slideforge/internal/handlers"
	"slideforge/internal/llm"
	"slideforge/internal/logger"
	"slideforge/internal/repository"
	"slideforge/internal/server"
	"slideforge/internal/service"

	"github.com/spf13/viper"
)

// Fallback session secret for local development only.
const devSessionSecret = "default_secret_key_for_development"

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	completer := llm.NewClient(llm.Config{
		APIKey:  viper.GetString("llm.api_key"),
		BaseURL: viper.GetString("llm.base_url"),
		Model:   viper.GetString("llm.model"),
		Timeout: viper.GetDuration("llm.timeout"),
	})
	renderer := deck.NewRenderer(viper.GetString("deck.output_dir"), viper.GetString("deck.assets_dir"))
	services := service.NewService(repos, sessionConfig(log), completer, renderer)
	webHandler := handlers.NewHandler(services, log, handlers.Config{
		TemplatesGlob: viper.GetString("web.templates_glob"),
		OutputDir:     viper.GetString("deck.output_dir"),
	})

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), webHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	// secrets come from the environment, never the config file
	_ = viper.BindEnv("session.secret", "SECRET_KEY")
	_ = viper.BindEnv("llm.api_key", "LLM_API_KEY")

	viper.SetDefault("port", "8080")
	viper.SetDefault("db.path", "slideforge.db")
	viper.SetDefault("deck.output_dir", "generated")
	viper.SetDefault("deck.assets_dir", "web/assets")
	viper.SetDefault("web.templates_glob", "web/templates/*.html")

	return viper.ReadInConfig()
}

// sessionConfig assembles signing settings, warning loudly when the
// insecure development secret is in play.
func sessionConfig(log *logger.Logger) service.AuthConfig {
	secret := viper.GetString("session.secret")
	if secret == "" {
		secret = devSessionSecret
		log.Warnw("SECRET_KEY not set; using default session secret, not secure for production")
	}
	return service.AuthConfig{
		SigningKey:  secret,
		TokenTTL:    viper.GetDuration("session.token_ttl"),
		RememberTTL: viper.GetDuration("session.remember_ttl"),
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "slideforge.db")
		dbPath = "slideforge.db"
	}
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
