package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/joho/godotenv"
)

// Config holds everything the freightdesk binary reads from its environment.
type Config struct {
	Backend     backend.Config
	SessionFile string
	DBPath      string
	LogLevel    string
	LogFormat   string // "text" or "json"
	LogCalls    bool
	MetricsFile string // Prometheus textfile written on exit, empty disables
}

// DefaultConfig returns a Config rooted at dir (normally ~/.freightdesk).
func DefaultConfig(dir string) Config {
	return Config{
		Backend:     backend.DefaultConfig(),
		SessionFile: filepath.Join(dir, "session.json"),
		DBPath:      filepath.Join(dir, "drafts.db"),
		LogLevel:    "warn",
		LogFormat:   "text",
	}
}

// Load reads .env files (without overriding the process environment) and
// then applies FREIGHTDESK_* variables over the defaults.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Missing files are normal.
		_ = godotenv.Load(f)
	}

	dir := ".freightdesk"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".freightdesk")
	}
	cfg := DefaultConfig(dir)
	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FREIGHTDESK_API_BASE"); v != "" {
		cfg.Backend.BaseURL = normalizeBase(v)
	}
	if v := os.Getenv("FREIGHTDESK_TYPES_BASE"); v != "" {
		cfg.Backend.TypesBaseURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv("FREIGHTDESK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Backend.TimeoutMs = n
		}
	}
	if v := os.Getenv("FREIGHTDESK_LIST_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Backend.ListRetries = n
		}
	}
	if v := os.Getenv("FREIGHTDESK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Backend.PageSize = n
		}
	}

	applyCallTimeoutEnv(cfg, backend.CallList, "FREIGHTDESK_LIST_TIMEOUT_MS")
	applyCallTimeoutEnv(cfg, backend.CallTypeValues, "FREIGHTDESK_TYPES_TIMEOUT_MS")
	applyCallTimeoutEnv(cfg, backend.CallJobNumber, "FREIGHTDESK_JOBNO_TIMEOUT_MS")
	applyCallTimeoutEnv(cfg, backend.CallSave, "FREIGHTDESK_SAVE_TIMEOUT_MS")

	if v := os.Getenv("FREIGHTDESK_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("FREIGHTDESK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FREIGHTDESK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("FREIGHTDESK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("FREIGHTDESK_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FREIGHTDESK_METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}
}

func applyCallTimeoutEnv(cfg *Config, kind backend.CallKind, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Backend.Timeouts == nil {
		cfg.Backend.Timeouts = map[backend.CallKind]int{}
	}
	cfg.Backend.Timeouts[kind] = n
}

// normalizeBase guarantees a trailing slash; endpoints are appended verbatim.
func normalizeBase(v string) string {
	if strings.HasSuffix(v, "/") {
		return v
	}
	return v + "/"
}
