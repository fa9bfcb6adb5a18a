package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultMaxIdleConns    = 10
	defaultMaxOpenConns    = 100
	defaultConnMaxLifetime = time.Hour

	// Queries slower than this are logged at warn level.
	slowQueryThreshold = 200 * time.Millisecond

	// SQLite blocks for up to this many milliseconds on a locked database
	// before returning SQLITE_BUSY.
	sqliteBusyTimeoutMS = 5000
)

// poolSettings is the resolved form of PoolConfig with defaults applied.
type poolSettings struct {
	maxIdle     int
	maxOpen     int
	maxLifetime time.Duration
}

// SetupDatabase opens the portal database described by cfg. SQL statements
// are traced through logger: every statement when debug logging is enabled,
// otherwise only slow statements and errors. Record-not-found results are
// expected lookups and are never logged as errors.
func SetupDatabase(cfg *DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("database config is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	pool, err := resolvePool(&cfg.Pool)
	if err != nil {
		return nil, err
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(pool.maxIdle)
	sqlDB.SetMaxOpenConns(pool.maxOpen)
	sqlDB.SetConnMaxLifetime(pool.maxLifetime)

	logger.Info("database connected",
		slog.String("driver", cfg.Driver),
		slog.Int("max_idle_conns", pool.maxIdle),
		slog.Int("max_open_conns", pool.maxOpen),
		slog.Duration("conn_max_lifetime", pool.maxLifetime),
	)

	return db, nil
}

// newGormLogger routes GORM's SQL tracing into the application logger.
// Bound parameters are only included at debug level so that credentials
// and message bodies stay out of production logs.
func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	debug := logger.Enabled(context.Background(), slog.LevelDebug)

	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	return gormlogger.NewSlogLogger(logger.With(slog.String("component", "gorm")), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      !debug,
	})
}

func openDialector(cfg *DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		path := strings.TrimSpace(cfg.SQLite.Path)
		if path == "" {
			return nil, errors.New("database.sqlite.path is required")
		}
		if !isMemoryPath(path) {
			dir := filepath.Dir(path)
			if dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create sqlite directory %q: %w", dir, err)
				}
			}
		}
		return sqlite.Open(sqliteDSN(path)), nil
	case "postgres":
		return postgres.Open(buildPostgresDSN(&cfg.Postgres)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func isMemoryPath(path string) bool {
	return strings.HasPrefix(path, ":memory:") || strings.HasPrefix(path, "file::memory:")
}

// sqliteDSN appends the connection pragmas to path. Concurrent writers from
// the request pool wait on the lock instead of failing immediately, and file
// databases use WAL so readers do not block the writer. Pragmas already
// present in path are left alone.
func sqliteDSN(path string) string {
	pragmas := []string{fmt.Sprintf("busy_timeout(%d)", sqliteBusyTimeoutMS)}
	if !isMemoryPath(path) {
		pragmas = append(pragmas, "journal_mode(WAL)")
	}

	var b strings.Builder
	b.WriteString(path)
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	for _, p := range pragmas {
		name, _, _ := strings.Cut(p, "(")
		if strings.Contains(path, "_pragma="+name) {
			continue
		}
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// resolvePool applies defaults to zero values and validates the lifetime.
func resolvePool(pool *PoolConfig) (poolSettings, error) {
	s := poolSettings{
		maxIdle:     pool.MaxIdleConns,
		maxOpen:     pool.MaxOpenConns,
		maxLifetime: defaultConnMaxLifetime,
	}
	if s.maxIdle <= 0 {
		s.maxIdle = defaultMaxIdleConns
	}
	if s.maxOpen <= 0 {
		s.maxOpen = defaultMaxOpenConns
	}
	if s.maxIdle > s.maxOpen {
		s.maxIdle = s.maxOpen
	}

	if raw := strings.TrimSpace(pool.ConnMaxLifetime); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return poolSettings{}, fmt.Errorf("invalid pool.conn_max_lifetime %q: %w", pool.ConnMaxLifetime, err)
		}
		if d <= 0 {
			return poolSettings{}, fmt.Errorf("invalid pool.conn_max_lifetime %q: must be positive", pool.ConnMaxLifetime)
		}
		s.maxLifetime = d
	}

	return s, nil
}

func buildPostgresDSN(cfg *PostgresConfig) string {
	if cfg == nil {
		return ""
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   cfg.DBName,
	}

	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}

	query := url.Values{}
	if cfg.SSLMode != "" {
		query.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = query.Encode()

	return u.String()
}
