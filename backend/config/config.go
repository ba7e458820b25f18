package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Xornee/langify-your-daily-english-boost/backend/utils/validate"
	"github.com/joho/godotenv"
)

type Config struct {
	Env string `validate:"oneof=development production test"`

	DBDriver   string `validate:"oneof=postgres sqlite"`
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string `validate:"oneof=disable require verify-ca verify-full"`
	SQLitePath string

	JWTSecret  string        `validate:"required"`
	JWTTTL     time.Duration `validate:"gt=0"`
	ServerPort string        `validate:"required,numeric"`
	// Origins accepted by the CORS middleware, comma separated.
	CORSOrigins string

	// Calendar days (streaks, daily stats, leaderboard windows) are computed in this zone.
	Timezone string `validate:"required"`

	RedisAddr           string
	LeaderboardCacheTTL time.Duration `validate:"gte=0"`

	DefaultXPGoal     int `validate:"gt=0"`
	DefaultLessonGoal int `validate:"gt=0"`
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		DBDriver:            getEnv("DB_DRIVER", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "langify"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		SQLitePath:          getEnv("SQLITE_PATH", "langify.db"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		CORSOrigins:         getEnv("CORS_ORIGINS", "*"),
		Timezone:            getEnv("TIMEZONE", "UTC"),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		DefaultXPGoal:       getEnvInt("DEFAULT_XP_GOAL", 50),
		DefaultLessonGoal:   getEnvInt("DEFAULT_LESSON_GOAL", 1),
		JWTTTL:              getEnvDuration("JWT_TTL", 72*time.Hour),
		LeaderboardCacheTTL: getEnvDuration("LEADERBOARD_CACHE_TTL", 30*time.Second),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) AllowedOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return value
}
