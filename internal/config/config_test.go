package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, legacy := range legacyEnv {
		t.Setenv(legacy, "")
	}
	for _, key := range []string{
		"JDIH_APP_ENV", "JDIH_AUTH_JWTSECRET", "JDIH_AUTH_TOKENTTL", "JDIH_DATABASE_DRIVER",
		"JDIH_DATABASE_HOST", "JDIH_CORS_ALLOWORIGINS", "JDIH_STORAGE_BUCKET",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, PlaceholderJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.Storage.PresignTTL)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
	assert.Empty(t, cfg.Storage.Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("JDIH_DATABASE_DRIVER", "mysql")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "jdih")
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("JDIH_AUTH_JWTSECRET", "prefixed-secret")
	t.Setenv("JDIH_AUTH_TOKENTTL", "2h")
	t.Setenv("JDIH_CORS_ALLOWORIGINS", "https://jdih.example.go.id,https://admin.example.go.id")
	t.Setenv("JDIH_STORAGE_BUCKET", "jdih-documents")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "jdih", cfg.Database.Name)
	assert.Equal(t, "prefixed-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://jdih.example.go.id", "https://admin.example.go.id"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "jdih-documents", cfg.Storage.Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.App.Env = EnvProduction
		cfg.Database.Driver = "sqlite"
		cfg.Database.Path = "data/jdih.db"
		cfg.Auth.JWTSecret = "a-real-secret"
		cfg.Auth.TokenTTL = time.Hour
		cfg.Upload.MaxSize = 1024
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "placeholder secret in production", mutate: func(c *Config) { c.Auth.JWTSecret = PlaceholderJWTSecret }, wantErr: "must be changed"},
		{name: "placeholder secret in development", mutate: func(c *Config) {
			c.App.Env = EnvDevelopment
			c.Auth.JWTSecret = PlaceholderJWTSecret
		}},
		{name: "empty secret", mutate: func(c *Config) { c.Auth.JWTSecret = "  " }, wantErr: "jwt secret is required"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "postgres" }, wantErr: "unsupported database driver"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: "database path"},
		{name: "mysql without name", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "database name"},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTL = 0 }, wantErr: "token ttl"},
		{name: "zero upload size", mutate: func(c *Config) { c.Upload.MaxSize = 0 }, wantErr: "upload max size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
