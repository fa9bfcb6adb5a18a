package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/ginx"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/portal/internal/config"
	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/middleware"
	"github.com/simp-lee/portal/internal/module/assist"
	"github.com/simp-lee/portal/internal/module/auth"
	"github.com/simp-lee/portal/internal/module/bookmark"
	"github.com/simp-lee/portal/internal/module/comment"
	"github.com/simp-lee/portal/internal/module/content"
	"github.com/simp-lee/portal/internal/module/notification"
	"github.com/simp-lee/portal/internal/module/rating"
	"github.com/simp-lee/portal/internal/module/share"
	"github.com/simp-lee/portal/internal/module/user"
	"github.com/simp-lee/portal/internal/pkg"
	"github.com/simp-lee/portal/internal/sanitize"
)

const defaultServerTimeout = 30 * time.Second

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	tokens pkg.TokenService
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// models lists every persisted type for auto migration.
var models = []any{
	&domain.User{},
	&domain.Collection{},
	&domain.Content{},
	&domain.Vote{},
	&domain.Bookmark{},
	&domain.Comment{},
	&domain.Notification{},
	&domain.Share{},
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, database, domain repositories, services, handlers,
// middleware and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	// 3. AutoMigrate in debug mode only.
	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Manual dependency injection: repository → service → handler.
	expiry, err := time.ParseDuration(cfg.Auth.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse auth.token_expiry: %w", err)
	}
	tokens, err := pkg.NewTokenService(cfg.Auth.JWTSecret, expiry)
	if err != nil {
		return nil, fmt.Errorf("setup token service: %w", err)
	}
	defer func() {
		if !success {
			tokens.Close()
		}
	}()
	var credentialGuards []gin.HandlerFunc
	if rl := cfg.Server.RateLimit; rl.Enabled && rl.LoginBurst > 0 {
		credentialGuards = append(credentialGuards, middleware.RateLimit(middleware.RateLimitConfig{
			RPS:   1,
			Burst: rl.LoginBurst,
		}))
	}
	modules, err := buildModules(db, tokens, &cfg.Portal, credentialGuards...)
	if err != nil {
		return nil, err
	}

	// 5. Create Gin engine with custom middleware (not gin.Default()).
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	corsConfig, err := resolveCORSConfig(cfg.Server.Mode, &cfg.Server.CORS)
	if err != nil {
		return nil, err
	}

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.LoggerWithConfig(log.Logger, middleware.LoggerConfig{SkipPaths: []string{"/health"}}),
		middleware.CORSWithConfig(corsConfig),
	)

	if rl := cfg.Server.RateLimit; rl.Enabled {
		limit, err := rateLimitConfig(rl)
		if err != nil {
			return nil, err
		}
		engine.Use(middleware.RateLimit(limit))
	}

	// 6. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:     modules,
		DB:          db,
		Tokens:      tokens.JWT(),
		PublicPaths: cfg.Auth.PublicPaths,
		PageOptions: pkg.PageOptions{
			DefaultSize: cfg.Portal.Pagination.DefaultPageSize,
			MaxSize:     cfg.Portal.Pagination.MaxPageSize,
		},
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		tokens: tokens,
		cfg:    cfg,
	}, nil
}

// buildModules wires every business module against db. credentialGuards run
// in front of the login and register handlers.
func buildModules(db *gorm.DB, tokens pkg.TokenService, portal *config.PortalConfig, credentialGuards ...gin.HandlerFunc) ([]Module, error) {
	ugc, err := sanitize.New(portal.Sanitizer.Policy, portal.Sanitizer.ExtraElements)
	if err != nil {
		return nil, fmt.Errorf("setup sanitizer: %w", err)
	}
	plain, err := sanitize.New(sanitize.PolicyStrict, nil)
	if err != nil {
		return nil, fmt.Errorf("setup sanitizer: %w", err)
	}

	users := user.NewUserRepository(db)
	contents := content.NewContentRepository(db)
	inbox := notification.NewService(notification.NewRepository(db))

	return []Module{
		auth.NewModule(auth.NewHandler(auth.NewService(tokens, users)), credentialGuards...),
		user.NewModule(user.NewUserHandler(user.NewUserService(users))),
		content.NewModule(content.NewHandler(content.NewService(content.NewCollectionRepository(db), contents, ugc))),
		rating.NewModule(rating.NewHandler(rating.NewService(rating.NewRepository(db), contents))),
		bookmark.NewModule(bookmark.NewHandler(bookmark.NewService(bookmark.NewRepository(db), contents))),
		comment.NewModule(comment.NewHandler(comment.NewService(comment.NewRepository(db), contents, ugc, inbox))),
		notification.NewModule(notification.NewHandler(inbox)),
		share.NewModule(share.NewHandler(share.NewService(share.NewRepository(db), contents, users, plain, inbox))),
		assist.NewModule(assist.NewHandler(assist.NewService(contents, plain, portal.Assist.SummarySentences))),
	}, nil
}

// resolveCORSConfig builds the CORS middleware settings. In release mode,
// when no allowlist is configured, cross-origin requests are denied.
func resolveCORSConfig(mode string, cfg *config.CORSConfig) (middleware.CORSConfig, error) {
	corsConfig := middleware.DefaultCORSConfig()

	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	} else if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	corsConfig.AllowCredentials = cfg.AllowCredentials

	if cfg.MaxAge != "" {
		d, err := time.ParseDuration(cfg.MaxAge)
		if err != nil {
			return middleware.CORSConfig{}, fmt.Errorf("parse server.cors.max_age: %w", err)
		}
		corsConfig.MaxAge = d
	}
	if err := corsConfig.Validate(); err != nil {
		return middleware.CORSConfig{}, fmt.Errorf("server.cors: %w", err)
	}

	return corsConfig, nil
}

func rateLimitConfig(cfg config.RateLimitConfig) (middleware.RateLimitConfig, error) {
	out := middleware.RateLimitConfig{RPS: cfg.RPS, Burst: cfg.Burst}
	if cfg.IdleTTL != "" {
		d, err := time.ParseDuration(cfg.IdleTTL)
		if err != nil {
			return out, fmt.Errorf("parse server.rate_limit.idle_ttl: %w", err)
		}
		out.IdleTTL = d
	}
	return out, nil
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// serverTimeout returns the configured request timeout, or 30s when unset.
func serverTimeout(raw string) time.Duration {
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return defaultServerTimeout
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout and closes the database
// connection.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, serverTimeout(a.cfg.Server.Timeout))

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := a.log()

	// Start HTTP server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		// Graceful shutdown with 5-second deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	// Limiters are process-wide in ginx; release them once no request can arrive.
	ginx.CleanupRateLimiters()
	if a.tokens != nil {
		a.tokens.Close()
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error("database close error", slog.Any("error", err))
			} else {
				log.Info("database connection closed")
			}
		}
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger.Logger
	}
	return slog.Default()
}
