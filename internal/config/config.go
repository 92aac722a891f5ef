package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are read by viper from a config file or environment variables.
type Config struct {
	ServerPort    int    `mapstructure:"SERVER_PORT"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`
	BadgerDBPath  string `mapstructure:"BADGERDB_PATH"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTExpiry time.Duration `mapstructure:"JWT_EXPIRY"`

	// Empty disables the Telegram front-end.
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`

	YouTubeAPIKey      string `mapstructure:"YOUTUBE_API_KEY"`
	YouTubeAPIURL      string `mapstructure:"YOUTUBE_API_URL"`
	TwitterBearerToken string `mapstructure:"TWITTER_BEARER_TOKEN"`
	TwitterAPIURL      string `mapstructure:"TWITTER_API_URL"`
	GitHubToken        string `mapstructure:"GITHUB_TOKEN"`
	GitHubAPIURL       string `mapstructure:"GITHUB_API_URL"`
	LLMHost            string `mapstructure:"LLM_HOST"`
	LLMModel           string `mapstructure:"LLM_MODEL"`

	SummaryTimeout      time.Duration `mapstructure:"SUMMARY_TIMEOUT"`
	SummaryRateInterval time.Duration `mapstructure:"SUMMARY_RATE_INTERVAL"`
	BadgerGCInterval    time.Duration `mapstructure:"BADGER_GC_INTERVAL"`
}

var defaults = map[string]any{
	"SERVER_PORT":           8080,
	"PUBLIC_BASE_URL":       "http://localhost:8080",
	"BADGERDB_PATH":         "./badger_data",
	"LOG_LEVEL":             "info",
	"JWT_SECRET":            "",
	"JWT_EXPIRY":            168 * time.Hour,
	"TELEGRAM_BOT_TOKEN":    "",
	"YOUTUBE_API_KEY":       "",
	"YOUTUBE_API_URL":       "https://www.googleapis.com/youtube/v3",
	"TWITTER_BEARER_TOKEN":  "",
	"TWITTER_API_URL":       "https://api.twitter.com",
	"GITHUB_TOKEN":          "",
	"GITHUB_API_URL":        "https://api.github.com",
	"LLM_HOST":              "http://localhost:11434",
	"LLM_MODEL":             "llama3",
	"SUMMARY_TIMEOUT":       60 * time.Second,
	"SUMMARY_RATE_INTERVAL": time.Second,
	"BADGER_GC_INTERVAL":    5 * time.Minute,
}

// LoadConfig reads configuration from file or environment variables.
// Environment variables take precedence over config.yaml in path.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// SetDefault also makes every key visible to AutomaticEnv during Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	err = v.ReadInConfig()
	if err != nil {
		// A missing file is fine when everything comes from the environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports the first setting that cannot be used as is.
func (c Config) Validate() error {
	switch {
	case c.JWTSecret == "":
		return fmt.Errorf("JWT_SECRET is not set")
	case c.ServerPort <= 0 || c.ServerPort > 65535:
		return fmt.Errorf("SERVER_PORT %d is out of range", c.ServerPort)
	case c.BadgerDBPath == "":
		return fmt.Errorf("BADGERDB_PATH is not set")
	case c.PublicBaseURL == "":
		return fmt.Errorf("PUBLIC_BASE_URL is not set")
	case c.JWTExpiry <= 0:
		return fmt.Errorf("JWT_EXPIRY must be positive")
	case c.BadgerGCInterval <= 0:
		return fmt.Errorf("BADGER_GC_INTERVAL must be positive")
	case c.SummaryRateInterval < 0:
		return fmt.Errorf("SUMMARY_RATE_INTERVAL must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
