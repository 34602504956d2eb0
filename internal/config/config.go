package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// ErrMissingSecret is returned in production when SECRET_KEY is not set.
var ErrMissingSecret = errors.New("SECRET_KEY must be set in production")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	DBDriver    string
	DatabaseURL string
	AutoMigrate bool
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	SecretKey   string
	// SecretGenerated is true when SecretKey was generated for this process only.
	SecretGenerated bool
	TokenTTL        time.Duration
	LogLevel        string
	SwaggerHost     string
	CORSOrigins     []string
	Bootstrap       Bootstrap
}

// Bootstrap configures seeding.
type Bootstrap struct {
	AdminUsername     string
	AdminEmail        string
	AdminPassword     string
	AdminFullName     string
	AdminRetries      int
	AdminRetryDelay   time.Duration
	FallbackCreatorID uint
	CaptionBatchSize  int
	LockTTL           time.Duration
	LockWait          time.Duration
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load builds Config from .env and the environment with sensible defaults.
// Outside production a missing SECRET_KEY is replaced by a random one.
func Load() (*Config, error) {
	// A missing .env is normal in containers.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env:         v.GetString("APP_ENV"),
		ServerPort:  v.GetString("SERVER_PORT"),
		DBDriver:    v.GetString("DATABASE_DRIVER"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		AutoMigrate: v.GetBool("AUTO_MIGRATE"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		RedisDB:     v.GetInt("REDIS_DB"),
		RedisPass:   v.GetString("REDIS_PASSWORD"),
		SecretKey:   v.GetString("SECRET_KEY"),
		TokenTTL:    v.GetDuration("TOKEN_TTL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		SwaggerHost: v.GetString("SWAGGER_HOST"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		Bootstrap: Bootstrap{
			AdminUsername:     v.GetString("ADMIN_USERNAME"),
			AdminEmail:        v.GetString("ADMIN_EMAIL"),
			AdminPassword:     v.GetString("ADMIN_PASSWORD"),
			AdminFullName:     v.GetString("ADMIN_FULL_NAME"),
			AdminRetries:      v.GetInt("ADMIN_RETRIES"),
			AdminRetryDelay:   v.GetDuration("ADMIN_RETRY_DELAY"),
			FallbackCreatorID: v.GetUint("SEED_FALLBACK_CREATOR_ID"),
			CaptionBatchSize:  v.GetInt("CAPTION_BATCH_SIZE"),
			LockTTL:           v.GetDuration("BOOTSTRAP_LOCK_TTL"),
			LockWait:          v.GetDuration("BOOTSTRAP_LOCK_WAIT"),
		},
	}

	if cfg.SecretKey == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingSecret
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SecretKey = secret
		cfg.SecretGenerated = true
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "")
	v.SetDefault("DATABASE_URL", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=UTC")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("TOKEN_TTL", 30*24*time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SWAGGER_HOST", "")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_FULL_NAME", "System Administrator")
	v.SetDefault("ADMIN_RETRIES", 5)
	v.SetDefault("ADMIN_RETRY_DELAY", 5*time.Second)
	v.SetDefault("SEED_FALLBACK_CREATOR_ID", 1)
	v.SetDefault("CAPTION_BATCH_SIZE", 10)
	v.SetDefault("BOOTSTRAP_LOCK_TTL", 2*time.Minute)
	v.SetDefault("BOOTSTRAP_LOCK_WAIT", 30*time.Second)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
