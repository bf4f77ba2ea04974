package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	// PlaceholderJWTSecret is the development fallback secret. It is
	// rejected in production.
	PlaceholderJWTSecret = "your-secret-key-change-in-production"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	App struct {
		Env string
	}
	Server struct {
		Addr string
	}
	Database struct {
		Driver       string
		Path         string
		Host         string
		Port         int
		User         string
		Password     string
		Name         string
		MaxOpenConns int
	}
	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}
	Storage struct {
		Bucket     string
		KeyPrefix  string
		Region     string
		Endpoint   string
		PresignTTL time.Duration
	}
	AWS struct {
		Profile string
	}
	Upload struct {
		MaxSize int64
	}
	CORS struct {
		AllowOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
	Telemetry struct {
		Endpoint    string
		Insecure    bool
		ServiceName string
	}
}

// legacyEnv maps config keys to the variable names used by existing
// deployments. Prefixed JDIH_ variables take precedence.
var legacyEnv = map[string]string{
	"app.env":            "NODE_ENV",
	"auth.jwtsecret":     "JWT_SECRET",
	"database.host":      "DB_HOST",
	"database.port":      "DB_PORT",
	"database.user":      "DB_USER",
	"database.password":  "DB_PASSWORD",
	"database.name":      "DB_NAME",
	"telemetry.endpoint": "OTEL_EXPORTER_OTLP_ENDPOINT",
	"telemetry.insecure": "OTEL_EXPORTER_OTLP_INSECURE",
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	// .env is optional and never overrides the real environment
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvPrefix("JDIH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", EnvDevelopment)
	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/jdih.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "jdih_db")
	v.SetDefault("database.maxopenconns", 10)
	v.SetDefault("auth.jwtsecret", PlaceholderJWTSecret)
	v.SetDefault("auth.tokenttl", 7*24*time.Hour)
	v.SetDefault("auth.bcryptcost", 12)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "jdih")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presignttl", 15*time.Minute)
	v.SetDefault("aws.profile", "")
	v.SetDefault("upload.maxsize", 10*1024*1024)
	v.SetDefault("cors.alloworigins", []string{"http://localhost:3000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("telemetry.servicename", "jdih-api")

	for key, legacy := range legacyEnv {
		envKey := "JDIH_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.App.Env), EnvProduction)
}

// Validate rejects configurations the server must not start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == "sqlite" && strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required for sqlite")
	}
	if c.Database.Driver == "mysql" && strings.TrimSpace(c.Database.Name) == "" {
		return errors.New("database name is required for mysql")
	}

	secret := strings.TrimSpace(c.Auth.JWTSecret)
	if secret == "" {
		return errors.New("auth jwt secret is required")
	}
	if c.IsProduction() && secret == PlaceholderJWTSecret {
		return errors.New("auth jwt secret must be changed in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth token ttl must be positive")
	}
	if c.Upload.MaxSize <= 0 {
		return errors.New("upload max size must be positive")
	}
	return nil
}
