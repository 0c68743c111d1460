package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Document store
	StoreDriver  string // mongo, memory
	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Google Cloud Storage
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// JWT
	JWTSecret string
	TokenTTL  time.Duration

	// Cookies
	CookieDomain string

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Elasticsearch
	ElasticsearchAddrs string // comma-separated, empty disables search
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESIndexPrefix      string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Company info for emails
	CompanyName    string
	CompanyAddress string

	// Password recovery
	RecoveryOTPTTL time.Duration

	// Email sending toggle
	MailSendEnabled bool

	// Debug metrics (/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool

	// Proxy headers (CF-Connecting-IP, X-Forwarded-For) are trusted only when enabled
	TrustProxyHeaders bool

	// Rate limiting for recovery, login and AI routes
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Seeder
	SeedAdminEmail    string
	SeedAdminPassword string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "agrosphere-api"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "5000"),
		GinMode: getenv("GIN_MODE", "release"),

		StoreDriver:  strings.ToLower(getenv("STORE_DRIVER", StoreMongo)),
		MongoURI:     getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getenv("MONGO_DB", "agroSphere"),
		MongoTimeout: getdur("MONGO_TIMEOUT", 10*time.Second),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		JWTSecret: getenv("JWT_SECRET", "devaccesssecret"),
		TokenTTL:  getdur("JWT_TTL", 365*24*time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", ""),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESIndexPrefix:      getenv("ELASTICSEARCH_INDEX_PREFIX", "agrosphere-"),

		GeminiAPIKey: getenv("GEMINI_API_KEY", ""),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-1.5-flash"),

		CompanyName:    getenv("COMPANY_NAME", "AgroSphere"),
		CompanyAddress: getenv("COMPANY_ADDRESS", ""),

		RecoveryOTPTTL: getdur("RECOVERY_OTP_TTL", 5*time.Minute),

		// Email sending toggle (default true for backward compatibility)
		MailSendEnabled: getbool("MAIL_SEND_ENABLED", true),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),

		TrustProxyHeaders: getbool("TRUST_PROXY_HEADERS", false),

		RateLimitMax:    getint("RATE_LIMIT_MAX", 10),
		RateLimitWindow: getdur("RATE_LIMIT_WINDOW", time.Minute),

		SeedAdminEmail:    getenv("SEED_ADMIN_EMAIL", "admin@agrosphere.local"),
		SeedAdminPassword: getenv("SEED_ADMIN_PASSWORD", "password123"),
	}
}

// IsProduction reports whether cookies must be issued for cross-site use.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
