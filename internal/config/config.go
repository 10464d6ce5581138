// Package config loads application configuration from a YAML file and
// RESEARCH_-prefixed environment variables, and initializes the global
// logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Providers  ProvidersConfig  `yaml:"providers" mapstructure:"providers"`
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// CacheConfig configures the Redis result cache. An empty Addr disables
// caching.
type CacheConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	TTLMins  int    `yaml:"ttl_mins" mapstructure:"ttl_mins"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// ProvidersConfig holds per-provider credentials and tuning.
type ProvidersConfig struct {
	Budget         int    `yaml:"budget" mapstructure:"budget"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	NewsAPIKey     string `yaml:"newsapi_key" mapstructure:"newsapi_key"`
	YouTubeKey     string `yaml:"youtube_key" mapstructure:"youtube_key"`
	GoogleBooksKey string `yaml:"google_books_key" mapstructure:"google_books_key"`
	CrossRefMailto string `yaml:"crossref_mailto" mapstructure:"crossref_mailto"`
}

// GenerationConfig selects and configures the text-generation backend.
type GenerationConfig struct {
	Backend         string `yaml:"backend" mapstructure:"backend"`
	OpenRouterKey   string `yaml:"openrouter_key" mapstructure:"openrouter_key"`
	OpenRouterModel string `yaml:"openrouter_model" mapstructure:"openrouter_model"`
	AnthropicKey    string `yaml:"anthropic_key" mapstructure:"anthropic_key"`
	AnthropicModel  string `yaml:"anthropic_model" mapstructure:"anthropic_model"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads config.yaml (optional) and the environment into a Config.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RESEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "research.db")
	v.SetDefault("cache.ttl_mins", 60)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("providers.budget", 2)
	v.SetDefault("providers.timeout_secs", 10)
	v.SetDefault("generation.backend", "openrouter")
	v.SetDefault("generation.openrouter_model", "meta-llama/llama-3-8b-instruct")
	v.SetDefault("generation.anthropic_model", "claude-haiku-4-5-20251001")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// InitLogger builds the global zap logger from LogConfig.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
