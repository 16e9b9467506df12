package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable the connector reads.
const Prefix = "CONNECTOR_"

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// PseudoPush notification sink
	PseudoPushURL     string        // empty => notifications answer with a configuration error
	PseudoPushAPIKey  string        // sent as x-api-key
	PseudoPushTimeout time.Duration // per request

	PermissionBaseURI string // base of generated permission ids

	BootstrapFile  string        // optional YAML file with brokers, endpoints and rules
	ReloadInterval time.Duration // 0 => reload only on POST /reload

	// Redis, disabled when RedisAddr is empty
	RedisAddr             string
	RedisUser             string
	RedisPassword         string
	RedisPasswordRequired bool
	RedisDB               int
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt
	RedisPoolSize         int
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold    int           // warn after this many attempts
	DeliveryTTL           time.Duration // how long the last delivery per resource is kept

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict operational routes to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	CORSOrigins  []string // optional, origins allowed to call /api

	NotifyBurst        int // notification rate limit, requests per client
	NotifyRefillPerMin int
}

// Load reads the configuration from the environment. Variables already set
// take precedence over the ones found in envFiles; missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	cfg := &Config{
		ListenPort:      getenv("LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		PrettyLog: mustBool("PRETTY_LOG", false),

		PseudoPushURL:     getenv("PSEUDOPUSH_URL", ""),
		PseudoPushAPIKey:  getenv("PSEUDOPUSH_API_KEY", ""),
		PseudoPushTimeout: mustDuration("PSEUDOPUSH_TIMEOUT", 10*time.Second),

		PermissionBaseURI: getenv("PERMISSION_BASE_URI", "https://w3id.org/idsa/autogen/permission"),

		BootstrapFile:  getenv("BOOTSTRAP_FILE", ""),
		ReloadInterval: mustDuration("RELOAD_INTERVAL", 0),

		RedisAddr:             getenv("REDIS_ADDR", ""),
		RedisUser:             getenv("REDIS_USERNAME", "default"),
		RedisPassword:         getenv("REDIS_PASSWORD", ""),
		RedisPasswordRequired: mustBool("REDIS_PASSWORD_REQUIRED", false),
		RedisDB:               getenvInt("REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		DeliveryTTL:           mustDuration("DELIVERY_TTL", 7*24*time.Hour),

		AllowedHosts: splitAndTrim(getenv("ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("CORS_ORIGINS", "")),

		NotifyBurst:        getenvInt("NOTIFY_BURST", 10),
		NotifyRefillPerMin: getenvInt("NOTIFY_REFILL_PER_MIN", 30),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports combinations of settings the connector cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.RedisAddr != "" && c.RedisPasswordRequired && c.RedisPassword == "" {
		errs = append(errs, fmt.Errorf("%sREDIS_PASSWORD is required when %sREDIS_PASSWORD_REQUIRED=true", Prefix, Prefix))
	}
	if c.PseudoPushURL != "" {
		if u, err := url.Parse(c.PseudoPushURL); err != nil || !u.IsAbs() {
			errs = append(errs, fmt.Errorf("%sPSEUDOPUSH_URL must be an absolute url, got %q", Prefix, c.PseudoPushURL))
		}
	}
	if c.PseudoPushTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%sPSEUDOPUSH_TIMEOUT must be > 0", Prefix))
	}
	if u, err := url.Parse(c.PermissionBaseURI); err != nil || !u.IsAbs() {
		errs = append(errs, fmt.Errorf("%sPERMISSION_BASE_URI must be an absolute uri, got %q", Prefix, c.PermissionBaseURI))
	}
	if c.ReloadInterval < 0 {
		errs = append(errs, fmt.Errorf("%sRELOAD_INTERVAL must be >= 0", Prefix))
	}

	return errors.Join(errs...)
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.PseudoPushAPIKey != "" {
		cp.PseudoPushAPIKey = "***REDACTED***"
	}
	return cp
}

func loadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// helpers, all keys are relative to Prefix
func getenv(key, def string) string {
	if v := os.Getenv(Prefix + key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(Prefix + key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(Prefix + key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(Prefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
