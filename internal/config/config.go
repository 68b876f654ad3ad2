package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quiz-synth/internal/domain"

	"github.com/spf13/viper"
)

type Config struct {
	// File is the config file that was read, empty when defaults and environment were used.
	File      string
	Server    ServerConfig
	Logger    LoggerConfig
	Upload    UploadConfig
	Synthesis SynthesisConfig
	Redis     RedisConfig
	CacheTTLs CacheTTLConfig
	LLM       LLMConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggerConfig selects the log level, encoding and destination.
// Output is a zap sink path such as stdout, stderr or a file path.
type LoggerConfig struct {
	Level  string
	Env    string
	Output string
}

type UploadConfig struct {
	MaxBytes     int
	AllowedTypes []string
}

// SynthesisConfig controls the offline quiz generator.
// Seed 0 means a fresh time-based seed per request.
type SynthesisConfig struct {
	Seed       int64
	TopicTable string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CacheTTLConfig struct {
	Quiz time.Duration
}

type LLMConfig struct {
	Enabled bool
	Server  string
	Model   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("upload.max_bytes", domain.MaxUploadBytes)
	v.SetDefault("upload.allowed_types", domain.DefaultAllowedContentTypes)
	v.SetDefault("synthesis.seed", 0)
	v.SetDefault("synthesis.topic_table", "")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache_ttls.quiz", "1h")
	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.server", "http://localhost:11434")
	v.SetDefault("llm.model", "llama3")
}

// LoadConfig reads config.yaml from the usual search paths.
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load reads configuration from path, or from the search paths when path is empty.
// A missing config file is not an error; defaults and environment variables apply.
// Every key can be overridden by its upper-cased, underscore-joined environment variable (SERVER_PORT, REDIS_ADDRESS, ...).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if os.Getenv("ENV") == "test" {
			v.AddConfigPath("../../config")
			v.AddConfigPath("../../")
		} else {
			v.AddConfigPath(".")
			v.AddConfigPath("./config")
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("logger.level"),
			Env:    v.GetString("logger.env"),
			Output: v.GetString("logger.output"),
		},
		Upload: UploadConfig{
			MaxBytes:     v.GetInt("upload.max_bytes"),
			AllowedTypes: v.GetStringSlice("upload.allowed_types"),
		},
		Synthesis: SynthesisConfig{
			Seed:       v.GetInt64("synthesis.seed"),
			TopicTable: v.GetString("synthesis.topic_table"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		CacheTTLs: CacheTTLConfig{
			Quiz: v.GetDuration("cache_ttls.quiz"),
		},
		LLM: LLMConfig{
			Enabled: v.GetBool("llm.enabled"),
			Server:  v.GetString("llm.server"),
			Model:   v.GetString("llm.model"),
		},
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		if absPath, err := filepath.Abs(configFile); err == nil {
			cfg.File = absPath
		} else {
			cfg.File = configFile
		}
	}

	if env := os.Getenv("ENV"); env == "production" {
		cfg.Logger.Env = env
	}

	if cfg.Upload.MaxBytes <= 0 {
		cfg.Upload.MaxBytes = domain.MaxUploadBytes
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = domain.DefaultAllowedContentTypes
	}
	return cfg, nil
}
