package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultQuotaBytes = 10 << 30 // 10 GiB, display-only

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:8080",
}

type Config struct {
	Env         string
	Port        string
	DatabaseURL string

	// UploadDir is the root of the per-kind upload directory tree.
	UploadDir string

	AllowedOrigins []string
	CookieDomain   string
	SecureCookies  bool

	// QuotaBytes is the fixed total shown on the dashboard. It is not
	// enforced against uploads.
	QuotaBytes int64

	SessionTTL time.Duration

	// StrictUploadTypes turns on per-kind MIME allow-lists for document,
	// music and video uploads. Profile images are always checked.
	StrictUploadTypes bool
}

func Load() Config {
	return Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "3000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		AllowedOrigins:    allowedOrigins(),
		CookieDomain:      os.Getenv("DOMAIN"),
		SecureCookies:     getBool("SECURE_COOKIES", false),
		QuotaBytes:        getInt64("STORAGE_QUOTA_BYTES", defaultQuotaBytes),
		SessionTTL:        time.Duration(getInt64("SESSION_TTL_HOURS", 168)) * time.Hour,
		StrictUploadTypes: getBool("STRICT_UPLOAD_TYPES", false),
	}
}

func allowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowed := os.Getenv("ALLOWED_ORIGINS"); allowed != "" {
		for _, origin := range strings.Split(allowed, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
