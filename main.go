package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"showdoidioma/internal/config"
	"showdoidioma/internal/game"
	"showdoidioma/internal/generator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		setupLogging(zerolog.InfoLevel, false)
		logFatal("Invalid configuration: %v", err)
	}
	logger := setupLogging(cfg.Level(), cfg.IsProduction())
	logInfo("Starting Show do Idioma in %s mode", map[bool]string{true: "production", false: "development"}[cfg.IsProduction()])

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app := newApp(cfg, newGenerator(cfg, logger), logger)
	router := app.setupRouter()

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	go app.runSessionReaper(reaperCtx)

	startServer(router, cfg.Port)
	stopReaper()
	app.closeAllSessions()
}

// newGenerator picks the AI client when an API key is configured and the
// built-in bank otherwise.
func newGenerator(cfg config.Config, logger zerolog.Logger) game.Generator {
	if cfg.Offline() {
		logWarn("API_KEY not set, serving questions from the offline bank")
		return generator.NewOffline()
	}
	logInfo("Generating questions with model %s", cfg.AIModel)
	return generator.New(generator.Options{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.AIBaseURL,
		Model:      cfg.AIModel,
		MaxRetries: 2,
		Logger:     &logger,
	})
}

// newApp wires the shared server state.
func newApp(cfg config.Config, gen game.Generator, logger zerolog.Logger) *App {
	return &App{
		Config:    cfg,
		Generator: gen,
		Logger:    logger,
		StartTime: time.Now(),
		ControllerOptions: game.Options{
			SettleDelay:    cfg.SettleDelay,
			AdvanceDelay:   cfg.AdvanceDelay,
			RequestTimeout: cfg.GenerationTimeout,
		},
		Sessions:   make(map[string]*gameSession),
		LimiterMap: make(map[string]*rate.Limiter),
	}
}

// setupRouter builds the gin engine with middleware and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), app.accessLogMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}
	if mw := app.corsMiddleware(); mw != nil {
		router.Use(mw)
	}
	router.Use(app.cacheHeadersMiddleware())

	router.GET(RouteHealth, app.healthzHandler)
	router.GET(RouteLanguages, app.languagesHandler)
	router.GET(RoutePrizes, app.prizesHandler)
	router.GET(RouteGameState, app.gameStateHandler)

	limited := router.Group("", app.rateLimitMiddleware())
	limited.POST(RouteStart, app.startHandler)
	limited.POST(RouteAnswer, app.answerHandler)
	limited.POST(RouteLifeline, app.lifelineHandler)
	limited.POST(RouteRetry, app.retryHandler)
	limited.POST(RouteRestart, app.restartHandler)
	limited.DELETE(RouteEndSession, app.endSessionHandler)

	return router
}

// accessLogMiddleware logs each request through zerolog.
func (app *App) accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Msg("request")
	}
}

func startServer(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
