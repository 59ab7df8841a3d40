package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Extract    ExtractConfig    `mapstructure:"extract"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Mail       MailConfig       `mapstructure:"mail"`
	Auth       AuthConfig       `mapstructure:"auth"`
	LogLevel   string           `mapstructure:"log_level"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// AnthropicConfig holds settings for the directly configured provider. When
// the key is present it is preferred over the routing proxy.
type AnthropicConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// OpenRouterConfig holds settings for the routing proxy provider.
type OpenRouterConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	VisionModel string        `mapstructure:"vision_model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Referer     string        `mapstructure:"referer"`
	Title       string        `mapstructure:"title"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ExtractConfig bounds the recipe extraction pipeline.
type ExtractConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	HTMLLimit int           `mapstructure:"html_limit"`
	MaxImages int           `mapstructure:"max_images"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds AI completion cache settings.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds request rate limiting settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DatabaseConfig holds datastore settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig holds object storage settings.
type StorageConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
	Bucket string `mapstructure:"bucket"`
}

// MailConfig holds email delivery settings.
type MailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	AppURL       string `mapstructure:"app_url"`
}

// AuthConfig holds the login whitelist. Injectable so it can be rotated and
// tested.
type AuthConfig struct {
	Whitelist []string `mapstructure:"whitelist"`
}

// LoadConfig reads the .env file, environment and defaults into a Config.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("storage.url", "SUPABASE_URL")
	viper.BindEnv("storage.api_key", "SUPABASE_ANON_KEY")
	viper.BindEnv("mail.resend_api_key", "RESEND_API_KEY")
	viper.BindEnv("mail.from", "RESEND_FROM_EMAIL")
	viper.BindEnv("mail.app_url", "APP_URL")
	viper.BindEnv("auth.whitelist", "AUTH_WHITELIST")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	fmt.Println("Loading configuration",
		"anthropic_api_key:", maskAPIKey(viper.GetString("anthropic.api_key")),
		"openrouter_api_key:", maskAPIKey(viper.GetString("openrouter.api_key")),
	)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The whitelist may arrive as a single comma-separated env value.
	config.Auth.Whitelist = splitWhitelist(config.Auth.Whitelist)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func splitWhitelist(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, email := range strings.Split(entry, ",") {
			email = strings.ToLower(strings.TrimSpace(email))
			if email != "" {
				out = append(out, email)
			}
		}
	}
	return out
}

// maskAPIKey shows only the first and last 4 characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "maltidsplaneraren")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	viper.SetDefault("anthropic.max_tokens", 2048)
	viper.SetDefault("anthropic.timeout", "60s")

	viper.SetDefault("openrouter.model", "anthropic/claude-sonnet-4")
	viper.SetDefault("openrouter.vision_model", "anthropic/claude-3-haiku")
	viper.SetDefault("openrouter.max_tokens", 2048)
	viper.SetDefault("openrouter.referer", "https://maltidsplaneraren.vercel.app")
	viper.SetDefault("openrouter.title", "Måltidsplaneraren")
	viper.SetDefault("openrouter.timeout", "60s")

	viper.SetDefault("extract.user_agent", "Mozilla/5.0 (compatible; Maltidsplaneraren/1.0)")
	viper.SetDefault("extract.html_limit", 15000)
	viper.SetDefault("extract.max_images", 4)
	viper.SetDefault("extract.timeout", "30s")

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.ttl", "24h")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("database.path", "data/maltidsplaneraren.db")

	viper.SetDefault("storage.bucket", "images")

	viper.SetDefault("mail.from", "noreply@maltidsplaneraren.app")
	viper.SetDefault("mail.app_url", "http://localhost:8080")

	viper.SetDefault("log_level", "info")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Extract.HTMLLimit <= 0 {
		return fmt.Errorf("invalid extract html limit")
	}
	if config.Extract.MaxImages <= 0 {
		return fmt.Errorf("invalid extract max images")
	}

	if config.Cache.Enabled {
		if config.Cache.RedisAddr == "" {
			return fmt.Errorf("cache enabled but redis addr missing")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	return nil
}
