package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/planner.db")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("STATS_CACHE_TTL", "30s")
	t.Setenv("QUIZ_RETENTION", "10m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.QuizRetention)
	assert.Equal(t, "/tmp/planner.db?_foreign_keys=on", cfg.DSN())
}

func TestLoadConfigInvalidPort(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigInvalidRetention(t *testing.T) {
	t.Setenv("QUIZ_RETENTION", "forever")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBType:     "postgres",
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "oab",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=oab sslmode=disable", cfg.DSN())
}
