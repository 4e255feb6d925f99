package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBType     string // postgres or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	JWTSecret  string
	ServerPort string
	AppURL     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	RedisAddr     string
	RedisPassword string
	StatsCacheTTL time.Duration

	QuizRetention time.Duration

	LogLevel  string
	LogFormat string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("STATS_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_CACHE_TTL: %w", err)
	}

	quizRetention, err := time.ParseDuration(getEnv("QUIZ_RETENTION", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUIZ_RETENTION: %w", err)
	}

	return &Config{
		DBType:     getEnv("DB_TYPE", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "oab_planner"),
		SQLitePath: getEnv("SQLITE_PATH", "./data/oab_planner.db"),

		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		AppURL:     getEnv("APP_URL", "http://localhost:8080"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "Planner OAB <no-reply@planneroab.com.br>"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		StatsCacheTTL: cacheTTL,

		QuizRetention: quizRetention,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}, nil
}

// DSN returns the connection string for the configured database type.
func (c *Config) DSN() string {
	if c.DBType == "sqlite" {
		return c.SQLitePath + "?_foreign_keys=on"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
