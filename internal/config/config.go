package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig carries everything cmd/server needs at start-up.
type AppConfig struct {
	// Server
	HTTPAddr  string
	LogFile   string
	LogLevel  string
	UploadDir string

	// Database; StoreBackend "memory" skips Postgres entirely and starts
	// with DemoRecords generated records of each kind.
	StoreBackend string
	DemoRecords  int
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBTimezone   string

	// JWT
	JWTSecret string
	TokenTTL  time.Duration

	// Uploads go to S3 when a bucket is set, otherwise to UploadDir.
	S3Bucket string
	S3Region string
	S3Prefix string

	// Login throttling is disabled when RedisAddr is empty.
	RedisAddr      string
	RedisPass      string
	LoginAttempts  int64
	LoginWindow    time.Duration
	AllowedOrigins []string
}

// Load reads .env (if present) and the process environment into AppConfig.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		LogFile:   getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		StoreBackend: getEnv("STORE_BACKEND", "postgres"),
		DemoRecords:  getEnvInt("DEMO_RECORDS", 0),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "password"),
		DBName:       getEnv("DB_NAME", "fleet_desk"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		DBTimezone:   getEnv("DB_TIMEZONE", "UTC"),

		JWTSecret: getEnv("JWT_SECRET", "supersecret"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 72*time.Hour),

		S3Bucket: getEnv("S3_BUCKET", ""),
		S3Region: getEnv("S3_REGION", "ap-south-1"),
		S3Prefix: getEnv("S3_PREFIX", "drivers"),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPass:      getEnv("REDIS_PASS", ""),
		LoginAttempts:  int64(getEnvInt("LOGIN_MAX_ATTEMPTS", 5)),
		LoginWindow:    getEnvDuration("LOGIN_WINDOW", 15*time.Minute),
		AllowedOrigins: getEnvSlice("CORS_ORIGINS", nil),
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid integer for %s: %q, using %d", key, v, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid duration for %s: %q, using %s", key, v, defaultValue)
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
