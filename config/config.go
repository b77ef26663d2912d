package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	LogLevel                string        `mapstructure:"LOG_LEVEL"`
	WebPort                 int           `mapstructure:"WEB_PORT"`
	ProductsPath            string        `mapstructure:"PRODUCTS_PATH"`
	StoreInfoPath           string        `mapstructure:"STORE_INFO_PATH"`
	IndexPath               string        `mapstructure:"INDEX_PATH"`
	ChatAPIBase             string        `mapstructure:"CHAT_API_BASE"`
	ChatModel               string        `mapstructure:"CHAT_MODEL"`
	ChatTemperature         float64       `mapstructure:"CHAT_TEMPERATURE"`
	ChatMaxTokens           int           `mapstructure:"CHAT_MAX_TOKENS"`
	GroqAPIKey              string        `mapstructure:"GROQ_API_KEY"`
	EmbeddingHost           string        `mapstructure:"EMBEDDING_HOST"`
	EmbedCacheSize          int           `mapstructure:"EMBED_CACHE_SIZE"`
	SearchTopK              int           `mapstructure:"SEARCH_TOP_K"`
	FBPageAccessToken       string        `mapstructure:"FB_PAGE_ACCESS_TOKEN"`
	FBVerifyToken           string        `mapstructure:"FB_VERIFY_TOKEN"`
	GraphAPIBase            string        `mapstructure:"GRAPH_API_BASE"`
	SendTimeoutSeconds      time.Duration `mapstructure:"SEND_TIMEOUT_SECONDS"`
	LLMRequestTimeout       time.Duration `mapstructure:"LLM_REQUEST_TIMEOUT"`
	MaxRetries              int           `mapstructure:"MAX_RETRIES"`
	RetryDelaySeconds       time.Duration `mapstructure:"RETRY_DELAY_SECONDS"`
	HistoryLimit            int           `mapstructure:"HISTORY_LIMIT"`
	RateLimitMessagesPerMin int           `mapstructure:"RATE_LIMIT_MESSAGES_PER_MIN"`
	RateLimitBurstSize      int           `mapstructure:"RATE_LIMIT_BURST_SIZE"`
}

// SetConfigFile points viper at an explicit config file instead of the
// default search paths. Call before Load.
func SetConfigFile(path string) {
	viper.SetConfigFile(path)
}

func Load(logger *zap.Logger) *Config {
	// Secrets (FB tokens, Groq key) usually live in a .env next to the binary.
	if err := godotenv.Load(); err != nil && logger != nil {
		logger.Debug("No .env file found, relying on environment", zap.Error(err))
	}

	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("WEB_PORT", 8000)
	viper.SetDefault("PRODUCTS_PATH", "data/contexto_bot.jsonl")
	viper.SetDefault("STORE_INFO_PATH", "data/info_tienda.txt")
	viper.SetDefault("INDEX_PATH", "chroma_db")
	viper.SetDefault("CHAT_API_BASE", "https://api.groq.com/openai")
	viper.SetDefault("CHAT_MODEL", "llama3-8b-8192")
	viper.SetDefault("CHAT_TEMPERATURE", 0.7)
	viper.SetDefault("CHAT_MAX_TOKENS", 500)
	viper.SetDefault("EMBEDDING_HOST", "http://localhost:8081")
	viper.SetDefault("EMBED_CACHE_SIZE", 512)
	viper.SetDefault("SEARCH_TOP_K", 7)
	viper.SetDefault("GRAPH_API_BASE", "https://graph.facebook.com")
	viper.SetDefault("SEND_TIMEOUT_SECONDS", 10)
	viper.SetDefault("LLM_REQUEST_TIMEOUT", 30)
	viper.SetDefault("MAX_RETRIES", 3)
	viper.SetDefault("RETRY_DELAY_SECONDS", 2)
	viper.SetDefault("HISTORY_LIMIT", 200)
	viper.SetDefault("RATE_LIMIT_MESSAGES_PER_MIN", 20)
	viper.SetDefault("RATE_LIMIT_BURST_SIZE", 5)

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert seconds to proper time.Duration
	config.SendTimeoutSeconds = config.SendTimeoutSeconds * time.Second
	config.LLMRequestTimeout = config.LLMRequestTimeout * time.Second
	config.RetryDelaySeconds = config.RetryDelaySeconds * time.Second

	return &config
}
