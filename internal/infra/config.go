package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultUploadTmpDir is a dedicated directory below the system temp dir, so
// the upload janitor only ever sweeps files this service created.
func DefaultUploadTmpDir() string {
	return filepath.Join(os.TempDir(), "filestorage-uploads")
}

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	StorageRoot         string
	StorageBaseURL      string
	StorageDirMode      os.FileMode
	UploadTmpDir        string
	UploadMaxBytes      int64
	UploadJanitorMaxAge time.Duration
	CORSAllowedOrigins  []string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                port,
		StorageRoot:         strings.TrimSpace(getEnv("STORAGE_ROOT", "./data")),
		StorageBaseURL:      strings.TrimRight(getEnv("STORAGE_BASE_URL", "http://localhost:"+port+"/files"), "/"),
		UploadTmpDir:        getEnv("UPLOAD_TMP_DIR", DefaultUploadTmpDir()),
		UploadMaxBytes:      int64(getEnvInt("UPLOAD_MAX_BYTES", 32<<20)),
		UploadJanitorMaxAge: time.Minute * time.Duration(getEnvInt("UPLOAD_JANITOR_MAX_AGE_MINUTES", 60)),
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.StorageRoot == "" {
		return nil, fmt.Errorf("STORAGE_ROOT is required")
	}

	mode, err := parseFileMode(getEnv("STORAGE_DIR_MODE", "0777"))
	if err != nil {
		return nil, fmt.Errorf("STORAGE_DIR_MODE: %w", err)
	}
	cfg.StorageDirMode = mode

	if cfg.UploadMaxBytes <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}

	return cfg, nil
}

// parseFileMode parses an octal permission string such as "0755" or "755".
func parseFileMode(v string) (os.FileMode, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "0o")
	m, err := strconv.ParseUint(v, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal mode %q", v)
	}
	if m > 0o777 {
		return 0, fmt.Errorf("mode %o out of range", m)
	}
	return os.FileMode(m), nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
