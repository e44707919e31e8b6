package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Data      DataConfig      `mapstructure:"data"`
	Learning  LearningConfig  `mapstructure:"learning"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Runtime flag set from the command line, not the config file.
	ValidateOnly bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// DataConfig locates the JSON content and learning-state directories.
type DataConfig struct {
	// DatabaseFiles is an ordered candidate list; the first readable file
	// wins. The repo historically carries several divergent variants.
	DatabaseFiles  []string `mapstructure:"database_files"`
	CategoriesFile string   `mapstructure:"categories_file"`
	StrokesDir     string   `mapstructure:"strokes_dir"`
	LearningDir    string   `mapstructure:"learning_dir"`
}

type LearningConfig struct {
	ReviewIntervals []int `mapstructure:"review_intervals"` // days
	DailyGoal       int   `mapstructure:"daily_goal"`
	// StudyCreditMinutes is credited per event regardless of elapsed time.
	StudyCreditMinutes int `mapstructure:"study_credit_minutes"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"` // "local" or "minio"
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DailyAt string `mapstructure:"daily_at"` // "HH:MM"
}

type RedisConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Host     string
	Port     int
	Password string
	DB       int
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("HANJA_EDU")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Data
	viper.BindEnv("data.learning_dir", "LEARNING_DIR")
	viper.BindEnv("data.categories_file", "CATEGORIES_FILE")
	viper.BindEnv("data.strokes_dir", "STROKES_DIR")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if len(cfg.Data.DatabaseFiles) == 0 {
		return nil, fmt.Errorf("data.database_files must list at least one hanja database file")
	}

	for _, d := range cfg.Learning.ReviewIntervals {
		if d <= 0 {
			return nil, fmt.Errorf("learning.review_intervals must be positive day counts, got %d", d)
		}
	}

	if _, err := os.Stat(cfg.Data.LearningDir); os.IsNotExist(err) {
		os.MkdirAll(cfg.Data.LearningDir, 0755)
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Data.LearningDir == "" {
		cfg.Data.LearningDir = "data/learning"
	}
	if len(cfg.Learning.ReviewIntervals) == 0 {
		cfg.Learning.ReviewIntervals = []int{1, 3, 7, 14, 30}
	}
	if cfg.Learning.DailyGoal == 0 {
		cfg.Learning.DailyGoal = 10
	}
	if cfg.Learning.StudyCreditMinutes == 0 {
		cfg.Learning.StudyCreditMinutes = 5
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 100000
	}
	if cfg.RateLimit.WindowMinutes == 0 {
		cfg.RateLimit.WindowMinutes = 1
	}
	if cfg.Snapshot.DailyAt == "" {
		cfg.Snapshot.DailyAt = "03:00"
	}
}
