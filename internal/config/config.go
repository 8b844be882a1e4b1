package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process configuration. It is loaded once at startup and
// passed into components by value; nothing mutates it afterwards.
type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	TokenTTL       time.Duration
	AdminEmail     string
	AdminPassword  string
	AllowedOrigins []string
}

// Load reads configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		DBPath:        getEnv("DATABASE_PATH", "./timberpunk.sqlite3"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@timberpunk.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	minutes := 30
	if s := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			minutes = n
		} else {
			slog.Warn("invalid ACCESS_TOKEN_EXPIRE_MINUTES, using default", "value", s)
		}
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("invalid PORT, falling back to default", "PORT", cfg.Port)
		cfg.Port = "8000"
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
