package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Redis     RedisConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

// CatalogConfig 课程目录配置，Path 指向存放课程 JSON 的目录
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LEARNHUB")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "LEARNHUB_DATABASE_HOST")
	viper.BindEnv("database.port", "LEARNHUB_DATABASE_PORT")
	viper.BindEnv("database.user", "LEARNHUB_DATABASE_USER")
	viper.BindEnv("database.password", "LEARNHUB_DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "LEARNHUB_DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "LEARNHUB_JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "LEARNHUB_REDIS_HOST")
	viper.BindEnv("redis.port", "LEARNHUB_REDIS_PORT")
	viper.BindEnv("redis.password", "LEARNHUB_REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.port", "LEARNHUB_SERVER_PORT")
	viper.BindEnv("server.mode", "LEARNHUB_SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "LEARNHUB_STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "LEARNHUB_MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "LEARNHUB_MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "LEARNHUB_MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "LEARNHUB_MINIO_BUCKET")

	// Catalog
	viper.BindEnv("catalog.path", "LEARNHUB_CATALOG_PATH")

	// Tracing
	viper.BindEnv("tracing.enabled", "LEARNHUB_TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "LEARNHUB_TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	if cfg.JWT.ExpireTime == 0 {
		cfg.JWT.ExpireTime = time.Hour
	}

	// JWT Secret 必须显式配置，缺失直接启动失败，不允许默认值兜底
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required; set it in config.yaml or LEARNHUB_JWT_SECRET")
	}
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "catalog"
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
