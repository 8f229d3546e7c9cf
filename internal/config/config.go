package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBind                 = ":8080"
	DefaultDBDriver             = DriverSQLite
	DefaultSQLiteDSN            = "file:folio.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	DefaultUploadRoot           = "uploads"
	DefaultMaxUploadBytes int64 = 10 * 1024 * 1024
	DefaultMaxPixels            = 40_000_000
	DefaultSessionTTL           = 24 * time.Hour
	DefaultSMTPPort             = 587
	DefaultKafkaTopic           = "folio.content"
)

// DefaultCORSOrigins matches the Vite dev server used by the admin panel.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type AuthMode string

const (
	AuthNone    AuthMode = "none"
	AuthSession AuthMode = "session"
)

type SMTP struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// Enabled reports whether enough is configured to deliver mail.
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type Config struct {
	Bind               string
	DBDriver           string
	DBDSN              string
	UploadRoot         string
	MaxUploadBytes     int64
	MaxPixels          int
	AuthMode           AuthMode
	APIKeysFile        string
	SessionTTL         time.Duration
	CORSAllowedOrigins []string
	StaticDir          string
	LogLevel           string
	LogFormat          string
	LogFile            string
	SMTP               SMTP
	KafkaBrokers       []string
	KafkaTopic         string
	SwaggerUIPath      string
	OpenAPIPath        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Bind:               getenv("FOLIO_BIND", DefaultBind),
		DBDriver:           strings.ToLower(getenv("FOLIO_DB_DRIVER", DefaultDBDriver)),
		DBDSN:              os.Getenv("FOLIO_DB_DSN"),
		UploadRoot:         getenv("FOLIO_UPLOAD_ROOT", DefaultUploadRoot),
		MaxUploadBytes:     getInt64("FOLIO_MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		MaxPixels:          getInt("FOLIO_MAX_PIXELS", DefaultMaxPixels),
		AuthMode:           AuthMode(getenv("FOLIO_AUTH_MODE", string(AuthSession))),
		APIKeysFile:        os.Getenv("FOLIO_API_KEYS_FILE"),
		SessionTTL:         getDuration("FOLIO_SESSION_TTL", DefaultSessionTTL),
		CORSAllowedOrigins: splitAndTrim(os.Getenv("FOLIO_CORS_ALLOWED_ORIGINS")),
		StaticDir:          os.Getenv("FOLIO_STATIC_DIR"),
		LogLevel:           os.Getenv("FOLIO_LOG_LEVEL"),
		LogFormat:          getenv("FOLIO_LOG_FORMAT", "text"),
		LogFile:            os.Getenv("FOLIO_LOG_FILE"),
		SMTP: SMTP{
			Host:      os.Getenv("FOLIO_SMTP_HOST"),
			Port:      getInt("FOLIO_SMTP_PORT", DefaultSMTPPort),
			Username:  os.Getenv("FOLIO_SMTP_USERNAME"),
			Password:  os.Getenv("FOLIO_SMTP_PASSWORD"),
			From:      os.Getenv("FOLIO_SMTP_FROM"),
			Recipient: os.Getenv("FOLIO_CONTACT_RECIPIENT"),
		},
		KafkaBrokers:  splitAndTrim(os.Getenv("FOLIO_KAFKA_BROKERS")),
		KafkaTopic:    getenv("FOLIO_KAFKA_TOPIC", DefaultKafkaTopic),
		SwaggerUIPath: "/swagger",
		OpenAPIPath:   "/openapi.yaml",
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = append([]string(nil), DefaultCORSOrigins...)
	}
	if cfg.SMTP.Recipient == "" {
		cfg.SMTP.Recipient = cfg.SMTP.From
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBDSN == "" {
			cfg.DBDSN = DefaultSQLiteDSN
		}
	case DriverMySQL:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("FOLIO_DB_DSN is required when FOLIO_DB_DRIVER=mysql")
		}
	default:
		return nil, fmt.Errorf("invalid FOLIO_DB_DRIVER: %s", cfg.DBDriver)
	}

	switch cfg.AuthMode {
	case AuthNone, AuthSession:
	default:
		return nil, fmt.Errorf("invalid FOLIO_AUTH_MODE: %s", cfg.AuthMode)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("FOLIO_SESSION_TTL must be positive")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
