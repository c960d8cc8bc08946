package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"licensestore/internal/app/dsn"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	DSN         string

	App       AppConfig
	JWT       JWTConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	License   LicenseConfig
	Purchase  PurchaseConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Env      string // development | production
	LogLevel string
}

type JWTConfig struct {
	Secret        string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod `mapstructure:"-"`
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PresignTTL time.Duration
}

type LicenseConfig struct {
	DefaultDays int
}

// PurchaseConfig ограничивает ожидание блокировки баланса покупателя
type PurchaseConfig struct {
	LockTimeout time.Duration
}

// RateLimitConfig - лимит запросов на публичные эндпоинты проверки ключей (на IP)
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("servicehost", "0.0.0.0")
	v.SetDefault("serviceport", 8080)
	v.SetDefault("dsn", "")

	v.SetDefault("app.env", "development")
	v.SetDefault("app.loglevel", "info")

	v.SetDefault("jwt.secret", "dev-secret-change-me")
	v.SetDefault("jwt.expiresin", time.Hour)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.user", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.dialtimeout", 10*time.Second)
	v.SetDefault("redis.readtimeout", 10*time.Second)

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.accesskey", "")
	v.SetDefault("minio.secretkey", "")
	v.SetDefault("minio.bucket", "package-artifacts")
	v.SetDefault("minio.usessl", false)
	v.SetDefault("minio.presignttl", time.Hour)

	v.SetDefault("license.defaultdays", 30)
	v.SetDefault("purchase.locktimeout", 5*time.Second)

	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 20)
}

func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	// REDIS_HOST -> redis.host, JWT_SECRET -> jwt.secret и т.д.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Warnf("config file %q not found, using defaults and environment", configName)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.JWT.SigningMethod = jwt.SigningMethodHS256

	if cfg.DSN == "" {
		cfg.DSN = dsn.FromEnv()
	}
	if cfg.License.DefaultDays <= 0 {
		return nil, errors.New("license.defaultdays must be positive")
	}

	log.Info("config parsed")

	return cfg, nil
}
