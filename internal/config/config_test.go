package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DATA_SOURCE", "DATA_PATH", "REDIS_ENABLED", "SESSION_TTL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, SourceXLSX, cfg.Data.Source)
	assert.Equal(t, "./data/service_requests.xlsx", cfg.Data.Path)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"*"}, cfg.Security.CORSOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_SNAPSHOT_TTL", "15m")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://insights.example.com ,")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, SourcePostgres, cfg.Data.Source)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://insights.example.com"}, cfg.Security.CORSOrigins)
	assert.Equal(t, 5432, cfg.Database.Port, "invalid values fall back to the default")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		cfg.Server.Port = "8080"
		cfg.Data = DataConfig{Source: SourceXLSX, Path: "requests.xlsx"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server port is required"},
		{"unknown source", func(c *Config) { c.Data.Source = "csv" }, "unknown data source"},
		{"missing xlsx path", func(c *Config) { c.Data.Path = "" }, "data path is required"},
		{"postgres without db name", func(c *Config) {
			c.Data.Source = SourcePostgres
			c.Database.DBName = ""
		}, "database name is required"},
		{"redis without ttl", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.TTL = 0
		}, "TTL must be positive"},
		{"negative session ttl", func(c *Config) { c.Session.TTL = -time.Second }, "session TTL"},
		{"wildcard with credentials in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.CORSOrigins = []string{"*"}
			c.Security.CORSAllowCredentials = true
		}, "wildcard CORS origin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetRedisURL(t *testing.T) {
	cfg := &Config{Redis: RedisConfig{Host: "cache", Port: 6380, DB: 2}}
	assert.Equal(t, "redis://cache:6380/2", cfg.GetRedisURL())

	cfg.Redis.Password = "s3cret"
	assert.Equal(t, "redis://:s3cret@cache:6380/2", cfg.GetRedisURL())
}

func TestGetDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "insights", Password: "pw", DBName: "insights",
		SSLMode: "disable", ConnectTimeout: 5 * time.Second,
	}}
	assert.Equal(t, "host=db port=5432 user=insights password=pw dbname=insights sslmode=disable connect_timeout=5", cfg.GetDatabaseURL())

	t.Setenv("DATABASE_URL", "postgres://u:p@h/db")
	assert.Equal(t, "postgres://u:p@h/db", cfg.GetDatabaseURL())
}
