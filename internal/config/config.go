package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultMetricsAddr      = ":9090"
	defaultSessionLifetime  = 12 * time.Hour
	defaultCatalogPageSize  = 48
	defaultRegionTimeout    = 10 * time.Second
	defaultDenyRedirectPath = "/"
)

// ErrInvalid marks configuration that is present but unusable.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	DatabaseURL      string
	HTTPAddr         string
	MetricsAddr      string
	AuthCookieSecure bool
	SessionLifetime  time.Duration
	CatalogPageSize  int
	RegionTimeout    time.Duration
	DenyRedirectPath string
}

type LoadOptions struct {
	RequireDatabaseURL bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: true})
}

func LoadOptionalDB() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: false})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		HTTPAddr:         getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:      getenvDefault("METRICS_ADDR", defaultMetricsAddr),
		AuthCookieSecure: getenvBoolDefault("AUTH_COOKIE_SECURE", false),
		SessionLifetime:  getenvDurationDefault("SESSION_LIFETIME", defaultSessionLifetime),
		CatalogPageSize:  getenvIntDefault("CATALOG_PAGE_SIZE", defaultCatalogPageSize),
		RegionTimeout:    getenvDurationDefault("REGION_TIMEOUT", defaultRegionTimeout),
		DenyRedirectPath: defaultDenyRedirectPath,
	}

	if v := strings.TrimSpace(os.Getenv("DENY_REDIRECT_PATH")); v != "" {
		if !isLocalPath(v) {
			return cfg, fmt.Errorf("%w: DENY_REDIRECT_PATH must be a local path starting with a single '/'", ErrInvalid)
		}
		cfg.DenyRedirectPath = v
	}

	if opts.RequireDatabaseURL && cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("%w: DATABASE_URL is required", ErrInvalid)
	}

	return cfg, nil
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func getenvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}
