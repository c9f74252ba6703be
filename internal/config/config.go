package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Cache    CacheConfig
	Session  SessionConfig
	Database DatabaseConfig
	Warmup   WarmupConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

// APIConfig points at the listings backend the console sits in front of. AuthURL is where
// the csrf, login and user endpoints live; it defaults to the origin of BaseURL.
type APIConfig struct {
	BaseURL   string
	AuthURL   string
	AuthToken string
	Timeout   time.Duration
}

type CacheConfig struct {
	Driver        string
	TTL           time.Duration
	RedisHost     string
	RedisPort     string
	RedisPassword string
}

// SessionConfig covers the console session cookie. AllowedOrigins limits which browser
// origins may open the event websocket; empty allows any.
type SessionConfig struct {
	Secret         string
	TTL            time.Duration
	RememberTTL    time.Duration
	CookieName     string
	Secure         bool
	AllowedOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

// Enabled reports whether bookmarks should be stored in Postgres.
func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.DBHost) != ""
}

type WarmupConfig struct {
	Schedule string
	Workers  int
	RPS      int
	PerPage  int
	// ActiveWindow bounds how recently an admin must have fetched listings for the
	// warm-up to fill their cache.
	ActiveWindow time.Duration
}

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"

	DefaultCacheTTL    = 180 * time.Second
	DefaultAPITimeout  = 10 * time.Second
	DefaultSessionTTL  = 12 * time.Hour
	DefaultRememberTTL = 30 * 24 * time.Hour
	DefaultCookieName  = "console_session"

	DefaultWarmupActiveWindow = 30 * time.Minute
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the console server configuration from the environment.
func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	seconds := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return time.Duration(v) * time.Second
	}
	integer := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL"),
	}

	cfg.API = APIConfig{
		BaseURL:   strings.TrimRight(req("API_URL"), "/"),
		AuthURL:   strings.TrimRight(opt("API_AUTH_URL"), "/"),
		AuthToken: opt("API_AUTH_TOKEN"),
		Timeout:   seconds("API_TIMEOUT_SECONDS", DefaultAPITimeout),
	}
	if cfg.API.AuthURL == "" {
		cfg.API.AuthURL = OriginOf(cfg.API.BaseURL)
	}

	driver := strings.ToLower(opt("CACHE_DRIVER"))
	switch driver {
	case "":
		driver = CacheDriverMemory
	case CacheDriverMemory, CacheDriverRedis:
	default:
		invalid = append(invalid, "CACHE_DRIVER")
	}
	cfg.Cache = CacheConfig{
		Driver:        driver,
		TTL:           seconds("CACHE_TTL_SECONDS", DefaultCacheTTL),
		RedisHost:     opt("REDIS_HOST"),
		RedisPort:     opt("REDIS_PORT"),
		RedisPassword: opt("REDIS_PASSWORD"),
	}
	if cfg.Cache.RedisHost == "" {
		cfg.Cache.RedisHost = "localhost"
	}
	if cfg.Cache.RedisPort == "" {
		cfg.Cache.RedisPort = "6379"
	}

	cookie := opt("SESSION_COOKIE_NAME")
	if cookie == "" {
		cookie = DefaultCookieName
	}
	cfg.Session = SessionConfig{
		Secret:         req("SESSION_SECRET"),
		TTL:            seconds("SESSION_TTL_SECONDS", DefaultSessionTTL),
		RememberTTL:    seconds("SESSION_REMEMBER_TTL_SECONDS", DefaultRememberTTL),
		CookieName:     cookie,
		Secure:         cfg.App.Environment == "production",
		AllowedOrigins: list(opt("WS_ALLOWED_ORIGINS")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		ConnectTimeout: seconds("DB_CONNECT_TIMEOUT_SECONDS", 5*time.Second),
		PoolMaxConns:   int32(integer("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:   int32(integer("DB_POOL_MIN_CONNS", 0)),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	cfg.Warmup = WarmupConfig{
		Schedule: opt("WARMUP_SCHEDULE"),
		Workers:  integer("WARMUP_WORKERS", 2),
		RPS:      integer("WARMUP_RPS", 0),
		PerPage:  integer("WARMUP_PER_PAGE", 10),

		ActiveWindow: seconds("WARMUP_ACTIVE_WINDOW_SECONDS", DefaultWarmupActiveWindow),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// LoadClient reads only what the command line client needs: the backend API settings.
func LoadClient() (APIConfig, error) {
	base := strings.TrimRight(strings.TrimSpace(os.Getenv("API_URL")), "/")
	cfg := APIConfig{
		BaseURL:   base,
		AuthURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("API_AUTH_URL")), "/"),
		AuthToken: strings.TrimSpace(os.Getenv("API_AUTH_TOKEN")),
		Timeout:   DefaultAPITimeout,
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = OriginOf(base)
	}
	if raw := strings.TrimSpace(os.Getenv("API_TIMEOUT_SECONDS")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return APIConfig{}, fmt.Errorf("%w: API_TIMEOUT_SECONDS", errInvalidEnv)
		}
		cfg.Timeout = time.Duration(v) * time.Second
	}
	return cfg, nil
}

func list(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// OriginOf returns scheme://host of raw, or raw itself when it is not an absolute URL.
func OriginOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}

func IsMissingRequired(err error) bool {
	return errors.Is(err, errMissingRequiredEnv)
}
