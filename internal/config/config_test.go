package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testAuthYAML = `auth:
  jwt_secret: "Abcd1234!Abcd1234!Abcd1234!Abcd1234!"
  token_expiry: "24h"
  public_paths:
    - "/api/v1/auth/login"
    - "/api/v1/auth/register"
`

const testYAML = `server:
  host: "127.0.0.1"
  port: 3000
  mode: "release"
  timeout: "15s"
  rate_limit:
    enabled: true
    rps: 5
    burst: 10
    idle_ttl: "10m"
database:
  driver: "postgres"
  sqlite:
    path: "data/test.db"
  postgres:
    host: "db.example.com"
    port: 5433
    user: "admin"
    password: "secret"
    dbname: "testdb"
    sslmode: "require"
  pool:
    max_idle_conns: 5
    max_open_conns: 50
    conn_max_lifetime: "30m"
log:
  level: "info"
  format: "json"
portal:
  pagination:
    default_page_size: 10
    max_page_size: 50
  sanitizer:
    policy: "STRICT"
    extra_elements:
      - " Mark "
  assist:
    summary_sentences: 4
` + testAuthYAML

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// baseYAML returns a minimal valid sqlite config in the given mode. extras is
// appended verbatim; pass withAuth=false to supply a custom auth section.
func baseYAML(mode string, withAuth bool, extras string) string {
	s := `server:
  host: "127.0.0.1"
  port: 3000
  mode: "` + mode + `"
database:
  driver: "sqlite"
  sqlite:
    path: "data/test.db"
  pool:
    max_idle_conns: 1
    max_open_conns: 1
    conn_max_lifetime: "1m"
log:
  level: "info"
  format: "json"
`
	if withAuth {
		s += testAuthYAML
	}
	return s + extras
}

func assertLoadErr(t *testing.T, yaml, wantContain string) {
	t.Helper()
	_, err := Load(writeTestConfig(t, yaml))
	if err == nil {
		t.Fatalf("Load() expected error containing %q, got nil", wantContain)
	}
	if !strings.Contains(err.Error(), wantContain) {
		t.Fatalf("Load() error = %v, want contains %q", err, wantContain)
	}
}

func TestLoad_FullYAML(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 3000 || cfg.Server.Mode != "release" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.Timeout != "15s" {
		t.Errorf("Server.Timeout = %q, want %q", cfg.Server.Timeout, "15s")
	}
	rl := cfg.Server.RateLimit
	if !rl.Enabled || rl.RPS != 5 || rl.Burst != 10 || rl.IdleTTL != "10m" {
		t.Errorf("RateLimit = %+v", rl)
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "postgres")
	}
	if cfg.Database.Postgres.Host != "db.example.com" || cfg.Database.Postgres.Port != 5433 {
		t.Errorf("Postgres = %+v", cfg.Database.Postgres)
	}
	if cfg.Database.Pool.MaxOpenConns != 50 {
		t.Errorf("Pool.MaxOpenConns = %d, want %d", cfg.Database.Pool.MaxOpenConns, 50)
	}

	if cfg.Auth.TokenExpiry != "24h" || len(cfg.Auth.PublicPaths) != 2 {
		t.Errorf("Auth = %+v", cfg.Auth)
	}

	p := cfg.Portal
	if p.Pagination.DefaultPageSize != 10 || p.Pagination.MaxPageSize != 50 {
		t.Errorf("Pagination = %+v", p.Pagination)
	}
	if p.Sanitizer.Policy != "strict" {
		t.Errorf("Sanitizer.Policy = %q, want %q (normalized)", p.Sanitizer.Policy, "strict")
	}
	if len(p.Sanitizer.ExtraElements) != 1 || p.Sanitizer.ExtraElements[0] != "mark" {
		t.Errorf("Sanitizer.ExtraElements = %v, want [mark]", p.Sanitizer.ExtraElements)
	}
	if p.Assist.SummarySentences != 4 {
		t.Errorf("Assist.SummarySentences = %d, want 4", p.Assist.SummarySentences)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__DATABASE__DRIVER", "sqlite")
	t.Setenv("APP__LOG__LEVEL", "error")

	// Single underscores inside a key are preserved.
	t.Setenv("APP__DATABASE__POOL__MAX_IDLE_CONNS", "20")
	t.Setenv("APP__PORTAL__PAGINATION__DEFAULT_PAGE_SIZE", "25")
	t.Setenv("APP__PORTAL__ASSIST__SUMMARY_SENTENCES", "2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d (env override)", cfg.Server.Port, 9090)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q (env override)", cfg.Database.Driver, "sqlite")
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want %q (env override)", cfg.Log.Level, "error")
	}
	if cfg.Database.Pool.MaxIdleConns != 20 {
		t.Errorf("Pool.MaxIdleConns = %d, want %d (env override)", cfg.Database.Pool.MaxIdleConns, 20)
	}
	if cfg.Portal.Pagination.DefaultPageSize != 25 {
		t.Errorf("Pagination.DefaultPageSize = %d, want %d (env override)", cfg.Portal.Pagination.DefaultPageSize, 25)
	}
	if cfg.Portal.Assist.SummarySentences != 2 {
		t.Errorf("Assist.SummarySentences = %d, want %d (env override)", cfg.Portal.Assist.SummarySentences, 2)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q (unchanged)", cfg.Server.Host, "127.0.0.1")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestLoad_ServerValidation(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantContain string
	}{
		{"invalid mode", baseYAML("invalid", true, ""), "server.mode"},
		{"port zero", strings.Replace(baseYAML("debug", true, ""), "port: 3000", "port: 0", 1), "server.port"},
		{"port too large", strings.Replace(baseYAML("debug", true, ""), "port: 3000", "port: 70000", 1), "server.port"},
		{"blank host", strings.Replace(baseYAML("debug", true, ""), `host: "127.0.0.1"`, `host: "  "`, 1), "server.host"},
		{"unknown driver", strings.Replace(baseYAML("debug", true, ""), `driver: "sqlite"`, `driver: "mysql"`, 1), "database.driver"},
		{"sqlite path missing", strings.Replace(baseYAML("debug", true, ""), `path: "data/test.db"`, `path: ""`, 1), "database.sqlite.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertLoadErr(t, tt.yaml, tt.wantContain)
		})
	}
}

func TestLoad_PostgresValidation(t *testing.T) {
	pg := func(mode, host, user, sslmode string) string {
		return strings.Replace(baseYAML(mode, true, ""), `driver: "sqlite"`, `driver: "postgres"
  postgres:
    host: "`+host+`"
    port: 5432
    user: "`+user+`"
    dbname: "portal"
    sslmode: "`+sslmode+`"`, 1)
	}

	tests := []struct {
		name        string
		yaml        string
		wantContain string
	}{
		{"missing host", pg("debug", "", "app", "disable"), "database.postgres.host"},
		{"missing user", pg("debug", "db", "", "disable"), "database.postgres.user"},
		{"unknown sslmode", pg("debug", "db", "app", "sometimes"), "database.postgres.sslmode"},
		{"release needs tls", pg("release", "db", "app", "disable"), "database.postgres.sslmode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertLoadErr(t, tt.yaml, tt.wantContain)
		})
	}

	if _, err := Load(writeTestConfig(t, pg("release", "db", "app", "verify-full"))); err != nil {
		t.Fatalf("Load() unexpected error for verify-full in release: %v", err)
	}
}

func TestLoad_NonPositiveDurations(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantContain string
	}{
		{
			name:        "server timeout",
			yaml:        strings.Replace(baseYAML("debug", true, ""), `mode: "debug"`, "mode: \"debug\"\n  timeout: \"0s\"", 1),
			wantContain: "server.timeout",
		},
		{
			name:        "cors max age",
			yaml:        strings.Replace(baseYAML("debug", true, ""), `mode: "debug"`, "mode: \"debug\"\n  cors:\n    max_age: \"-1s\"", 1),
			wantContain: "server.cors.max_age",
		},
		{
			name:        "pool lifetime",
			yaml:        strings.Replace(baseYAML("debug", true, ""), `conn_max_lifetime: "1m"`, `conn_max_lifetime: "0s"`, 1),
			wantContain: "database.pool.conn_max_lifetime",
		},
		{
			name:        "rate limit idle ttl",
			yaml:        strings.Replace(baseYAML("debug", true, ""), `mode: "debug"`, "mode: \"debug\"\n  rate_limit:\n    enabled: true\n    rps: 1\n    burst: 1\n    idle_ttl: \"-5m\"", 1),
			wantContain: "server.rate_limit.idle_ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertLoadErr(t, tt.yaml, tt.wantContain)
		})
	}
}

func TestLoad_OptionalDurationWhitespace_NormalizedAsUnset(t *testing.T) {
	yaml := strings.Replace(baseYAML("debug", true, ""), `mode: "debug"`, "mode: \"debug\"\n  timeout: \"   \"", 1)
	cfg, err := Load(writeTestConfig(t, yaml))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Server.Timeout != "" {
		t.Errorf("Server.Timeout = %q, want empty", cfg.Server.Timeout)
	}
}

func TestLoad_RateLimitConfig(t *testing.T) {
	with := func(block string) string {
		return strings.Replace(baseYAML("debug", true, ""), `mode: "debug"`, "mode: \"debug\"\n  rate_limit:\n"+block, 1)
	}

	assertLoadErr(t, with("    enabled: true\n    rps: 0\n    burst: 5\n"), "server.rate_limit.rps")
	assertLoadErr(t, with("    enabled: true\n    rps: 2\n    burst: 0\n"), "server.rate_limit.burst")
	assertLoadErr(t, with("    enabled: true\n    rps: 2\n    burst: 2\n    login_burst: -1\n"), "server.rate_limit.login_burst")

	cfg, err := Load(writeTestConfig(t, with("    enabled: true\n    rps: 2\n    burst: 2\n    login_burst: 3\n")))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.RateLimit.LoginBurst != 3 {
		t.Errorf("LoginBurst = %d; want 3", cfg.Server.RateLimit.LoginBurst)
	}

	if _, err := Load(writeTestConfig(t, with("    enabled: false\n    rps: 0\n    burst: 0\n"))); err != nil {
		t.Fatalf("disabled rate limit should skip validation: %v", err)
	}
}

func TestLoad_AuthConfig(t *testing.T) {
	auth := func(secret, expiry string, paths ...string) string {
		s := "auth:\n  jwt_secret: \"" + secret + "\"\n  token_expiry: \"" + expiry + "\"\n"
		if len(paths) == 0 {
			return s + "  public_paths: []\n"
		}
		s += "  public_paths:\n"
		for _, p := range paths {
			s += "    - \"" + p + "\"\n"
		}
		return s
	}
	const (
		secret32 = "abcdefghijklmnopqrstuvwxyz123456"
		login    = "/api/v1/auth/login"
		register = "/api/v1/auth/register"
	)

	tests := []struct {
		name        string
		mode        string
		auth        string
		wantErr     bool
		wantContain string
	}{
		{"missing section", "debug", "", true, "auth.jwt_secret"},
		{"short secret", "debug", auth("tooshort", "24h", login, register), true, "auth.jwt_secret"},
		{"secret exactly 32 chars", "debug", auth(secret32, "24h", login, register), false, ""},
		{"empty expiry", "debug", auth(secret32, "", login, register), true, "auth.token_expiry"},
		{"invalid expiry", "debug", auth(secret32, "soon", login, register), true, "auth.token_expiry"},
		{"negative expiry", "debug", auth(secret32, "-1h", login, register), true, "auth.token_expiry"},
		{"empty public paths", "debug", auth(secret32, "24h"), true, "auth.public_paths"},
		{"relative public path", "debug", auth(secret32, "24h", "api/v1/auth/login", register), true, "auth.public_paths"},
		{"login required", "debug", auth(secret32, "24h", register), true, login},
		{"register required", "debug", auth(secret32, "24h", login), true, register},
		{"trimmed paths accepted", "debug", auth(secret32, "24h", " "+login+" ", register, register), false, ""},
		{"release rejects weak secret", "release", auth("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "24h", login, register), true, "auth.jwt_secret"},
		{"release accepts strong secret", "release", auth("Abcd1234!Abcd1234!Abcd1234!Abcd1234!", "24h", login, register), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := baseYAML(tt.mode, false, tt.auth)
			if tt.wantErr {
				assertLoadErr(t, yaml, tt.wantContain)
				return
			}
			cfg, err := Load(writeTestConfig(t, yaml))
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			for _, p := range cfg.Auth.PublicPaths {
				if strings.TrimSpace(p) != p {
					t.Errorf("public path %q not trimmed", p)
				}
			}
		})
	}
}

func TestLoad_PortalDefaults(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, baseYAML("debug", true, "")))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	p := cfg.Portal
	if p.Pagination.DefaultPageSize != 20 || p.Pagination.MaxPageSize != 100 {
		t.Errorf("Pagination defaults = %+v, want 20/100", p.Pagination)
	}
	if p.Sanitizer.Policy != "ugc" {
		t.Errorf("Sanitizer.Policy = %q, want %q", p.Sanitizer.Policy, "ugc")
	}
	if p.Assist.SummarySentences != 3 {
		t.Errorf("Assist.SummarySentences = %d, want 3", p.Assist.SummarySentences)
	}
}

func TestLoad_PortalValidation(t *testing.T) {
	tests := []struct {
		name        string
		portal      string
		wantContain string
	}{
		{"negative default size", "portal:\n  pagination:\n    default_page_size: -1\n", "portal.pagination.default_page_size"},
		{"max below default", "portal:\n  pagination:\n    default_page_size: 50\n    max_page_size: 10\n", "portal.pagination.max_page_size"},
		{"unknown policy", "portal:\n  sanitizer:\n    policy: \"anything\"\n", "portal.sanitizer.policy"},
		{"blank extra element", "portal:\n  sanitizer:\n    extra_elements: [\" \"]\n", "portal.sanitizer.extra_elements[0]"},
		{"script never allowed", "portal:\n  sanitizer:\n    extra_elements: [\"mark\", \"SCRIPT\"]\n", "portal.sanitizer.extra_elements[1]"},
		{"too many sentences", "portal:\n  assist:\n    summary_sentences: 21\n", "portal.assist.summary_sentences"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertLoadErr(t, baseYAML("debug", true, tt.portal), tt.wantContain)
		})
	}
}

func TestLoad_LogValidation(t *testing.T) {
	assertLoadErr(t, strings.Replace(baseYAML("debug", true, ""), `level: "info"`, `level: "trace"`, 1), "log.level")
	assertLoadErr(t, strings.Replace(baseYAML("debug", true, ""), `format: "json"`, `format: "xml"`, 1), "log.format")

	cfg, err := Load(writeTestConfig(t, strings.Replace(baseYAML("debug", true, ""), `level: "info"`, `level: " WARN "`, 1)))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	// The shipped configs/config.yaml must always load.
	cfg, err := Load("../../configs/config.yaml")
	if err != nil {
		t.Fatalf("Load() error on project config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.Database.Pool.ConnMaxLifetime != "1h" {
		t.Errorf("Pool.ConnMaxLifetime = %q, want %q", cfg.Database.Pool.ConnMaxLifetime, "1h")
	}
	if cfg.Portal.Pagination.DefaultPageSize != 10 {
		t.Errorf("Pagination.DefaultPageSize = %d, want %d", cfg.Portal.Pagination.DefaultPageSize, 10)
	}
}

func TestCountSecretClasses(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   int
	}{
		{name: "empty string", secret: "", want: 0},
		{name: "lowercase only", secret: "abcdef", want: 1},
		{name: "uppercase only", secret: "ABCDEF", want: 1},
		{name: "digits only", secret: "123456", want: 1},
		{name: "symbols only", secret: "!@#$%^", want: 1},
		{name: "lower and upper", secret: "abcDEF", want: 2},
		{name: "lower upper digit", secret: "abcDEF123", want: 3},
		{name: "all four classes", secret: "abcDEF123!", want: 4},
		{name: "mixed with spaces", secret: "aA1 ", want: 4}, // space counts as symbol
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountSecretClasses(tt.secret); got != tt.want {
				t.Errorf("CountSecretClasses(%q) = %d, want %d", tt.secret, got, tt.want)
			}
		})
	}
}
