package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Completer CompleterConfig
	Extractor ExtractorConfig
	Resolver  ResolverConfig
	CORS      CORSConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CompleterProviderConfig holds settings for a single completion provider.
type CompleterProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	Endpoint     string `mapstructure:"endpoint"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// CompleterConfig holds completion provider settings with multi-provider
// fallback support.
type CompleterConfig struct {
	// Legacy flat fields (backwards-compatible)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	Endpoint     string `mapstructure:"endpoint"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	// Multi-provider fields
	Primary   CompleterProviderConfig `mapstructure:"primary"`
	Secondary CompleterProviderConfig `mapstructure:"secondary"`
	Tertiary  CompleterProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (c *CompleterConfig) PrimaryConfig() *CompleterProviderConfig {
	if c.Primary.Provider != "" {
		return &c.Primary
	}
	return &CompleterProviderConfig{
		Provider:     c.Provider,
		APIKey:       c.APIKey,
		Endpoint:     c.Endpoint,
		DefaultModel: c.DefaultModel,
		TimeoutSecs:  c.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (c *CompleterConfig) SecondaryConfig() *CompleterProviderConfig {
	if c.Secondary.Provider != "" {
		return &c.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (c *CompleterConfig) TertiaryConfig() *CompleterProviderConfig {
	if c.Tertiary.Provider != "" {
		return &c.Tertiary
	}
	return nil
}

// ExtractorConfig holds extraction pipeline settings. Each document type can
// pin its own model; empty values fall back to the provider default.
type ExtractorConfig struct {
	ModelReceipt        string `mapstructure:"model_receipt"`
	ModelFuelDelivery   string `mapstructure:"model_fuel_delivery"`
	ModelReconciliation string `mapstructure:"model_reconciliation"`
	MaxInFlight         int64  `mapstructure:"max_in_flight"`
}

// ResolverConfig holds identity resolution settings.
type ResolverConfig struct {
	Model         string  `mapstructure:"model"`
	MinSimilarity float64 `mapstructure:"min_similarity"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the RENDIX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RENDIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rendix")
	v.SetDefault("db.password", "rendix_secret")
	v.SetDefault("db.name", "rendix_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "rendix-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Completer defaults (legacy flat)
	v.SetDefault("completer.provider", "openrouter")
	v.SetDefault("completer.api_key", "")
	v.SetDefault("completer.endpoint", "")
	v.SetDefault("completer.default_model", "google/gemini-2.5-flash-lite-preview-09-2025")
	v.SetDefault("completer.timeout_secs", 120)

	// Completer primary/secondary/tertiary defaults
	v.SetDefault("completer.primary.provider", "")
	v.SetDefault("completer.primary.api_key", "")
	v.SetDefault("completer.primary.endpoint", "")
	v.SetDefault("completer.primary.default_model", "")
	v.SetDefault("completer.primary.timeout_secs", 120)
	v.SetDefault("completer.secondary.provider", "")
	v.SetDefault("completer.secondary.api_key", "")
	v.SetDefault("completer.secondary.endpoint", "")
	v.SetDefault("completer.secondary.default_model", "")
	v.SetDefault("completer.secondary.timeout_secs", 120)
	v.SetDefault("completer.tertiary.provider", "")
	v.SetDefault("completer.tertiary.api_key", "")
	v.SetDefault("completer.tertiary.endpoint", "")
	v.SetDefault("completer.tertiary.default_model", "")
	v.SetDefault("completer.tertiary.timeout_secs", 120)

	// Extractor defaults: one vision model per document type
	v.SetDefault("extractor.model_receipt", "google/gemini-2.5-flash-lite-preview-09-2025")
	v.SetDefault("extractor.model_fuel_delivery", "qwen/qwen3-vl-235b-a22b-thinking")
	v.SetDefault("extractor.model_reconciliation", "google/gemini-3-pro-preview")
	v.SetDefault("extractor.max_in_flight", 8)

	// Resolver defaults
	v.SetDefault("resolver.model", "")
	v.SetDefault("resolver.min_similarity", 0.5)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "RENDIX_SERVER_PORT",
		"server.read_timeout":  "RENDIX_SERVER_READ_TIMEOUT",
		"server.write_timeout": "RENDIX_SERVER_WRITE_TIMEOUT",
		"server.environment":   "RENDIX_SERVER_ENVIRONMENT",
		"db.host":              "RENDIX_DB_HOST",
		"db.port":              "RENDIX_DB_PORT",
		"db.user":              "RENDIX_DB_USER",
		"db.password":          "RENDIX_DB_PASSWORD",
		"db.name":              "RENDIX_DB_NAME",
		"db.sslmode":           "RENDIX_DB_SSLMODE",
		"db.max_open":          "RENDIX_DB_MAX_OPEN",
		"db.max_idle":          "RENDIX_DB_MAX_IDLE",
		"s3.region":            "RENDIX_S3_REGION",
		"s3.bucket":            "RENDIX_S3_BUCKET",
		"s3.endpoint":          "RENDIX_S3_ENDPOINT",
		"s3.access_key":        "RENDIX_S3_ACCESS_KEY",
		"s3.secret_key":        "RENDIX_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "RENDIX_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "RENDIX_S3_PRESIGN_EXPIRY",
		"log.level":            "RENDIX_LOG_LEVEL",
		"log.format":           "RENDIX_LOG_FORMAT",
		"cors.allowed_origins":              "RENDIX_CORS_ALLOWED_ORIGINS",
		"completer.provider":                "RENDIX_COMPLETER_PROVIDER",
		"completer.api_key":                 "RENDIX_COMPLETER_API_KEY",
		"completer.endpoint":                "RENDIX_COMPLETER_ENDPOINT",
		"completer.default_model":           "RENDIX_COMPLETER_DEFAULT_MODEL",
		"completer.timeout_secs":            "RENDIX_COMPLETER_TIMEOUT_SECS",
		"completer.primary.provider":        "RENDIX_COMPLETER_PRIMARY_PROVIDER",
		"completer.primary.api_key":         "RENDIX_COMPLETER_PRIMARY_API_KEY",
		"completer.primary.endpoint":        "RENDIX_COMPLETER_PRIMARY_ENDPOINT",
		"completer.primary.default_model":   "RENDIX_COMPLETER_PRIMARY_DEFAULT_MODEL",
		"completer.primary.timeout_secs":    "RENDIX_COMPLETER_PRIMARY_TIMEOUT_SECS",
		"completer.secondary.provider":      "RENDIX_COMPLETER_SECONDARY_PROVIDER",
		"completer.secondary.api_key":       "RENDIX_COMPLETER_SECONDARY_API_KEY",
		"completer.secondary.endpoint":      "RENDIX_COMPLETER_SECONDARY_ENDPOINT",
		"completer.secondary.default_model": "RENDIX_COMPLETER_SECONDARY_DEFAULT_MODEL",
		"completer.secondary.timeout_secs":  "RENDIX_COMPLETER_SECONDARY_TIMEOUT_SECS",
		"completer.tertiary.provider":       "RENDIX_COMPLETER_TERTIARY_PROVIDER",
		"completer.tertiary.api_key":        "RENDIX_COMPLETER_TERTIARY_API_KEY",
		"completer.tertiary.endpoint":       "RENDIX_COMPLETER_TERTIARY_ENDPOINT",
		"completer.tertiary.default_model":  "RENDIX_COMPLETER_TERTIARY_DEFAULT_MODEL",
		"completer.tertiary.timeout_secs":   "RENDIX_COMPLETER_TERTIARY_TIMEOUT_SECS",
		"extractor.model_receipt":           "RENDIX_EXTRACTOR_MODEL_RECEIPT",
		"extractor.model_fuel_delivery":     "RENDIX_EXTRACTOR_MODEL_FUEL_DELIVERY",
		"extractor.model_reconciliation":    "RENDIX_EXTRACTOR_MODEL_RECONCILIATION",
		"extractor.max_in_flight":           "RENDIX_EXTRACTOR_MAX_IN_FLIGHT",
		"resolver.model":                    "RENDIX_RESOLVER_MODEL",
		"resolver.min_similarity":           "RENDIX_RESOLVER_MIN_SIMILARITY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if RENDIX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RENDIX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Completer = CompleterConfig{
		Provider:     v.GetString("completer.provider"),
		APIKey:       v.GetString("completer.api_key"),
		Endpoint:     v.GetString("completer.endpoint"),
		DefaultModel: v.GetString("completer.default_model"),
		TimeoutSecs:  v.GetInt("completer.timeout_secs"),
		Primary: CompleterProviderConfig{
			Provider:     v.GetString("completer.primary.provider"),
			APIKey:       v.GetString("completer.primary.api_key"),
			Endpoint:     v.GetString("completer.primary.endpoint"),
			DefaultModel: v.GetString("completer.primary.default_model"),
			TimeoutSecs:  v.GetInt("completer.primary.timeout_secs"),
		},
		Secondary: CompleterProviderConfig{
			Provider:     v.GetString("completer.secondary.provider"),
			APIKey:       v.GetString("completer.secondary.api_key"),
			Endpoint:     v.GetString("completer.secondary.endpoint"),
			DefaultModel: v.GetString("completer.secondary.default_model"),
			TimeoutSecs:  v.GetInt("completer.secondary.timeout_secs"),
		},
		Tertiary: CompleterProviderConfig{
			Provider:     v.GetString("completer.tertiary.provider"),
			APIKey:       v.GetString("completer.tertiary.api_key"),
			Endpoint:     v.GetString("completer.tertiary.endpoint"),
			DefaultModel: v.GetString("completer.tertiary.default_model"),
			TimeoutSecs:  v.GetInt("completer.tertiary.timeout_secs"),
		},
	}

	cfg.Extractor = ExtractorConfig{
		ModelReceipt:        v.GetString("extractor.model_receipt"),
		ModelFuelDelivery:   v.GetString("extractor.model_fuel_delivery"),
		ModelReconciliation: v.GetString("extractor.model_reconciliation"),
		MaxInFlight:         v.GetInt64("extractor.max_in_flight"),
	}

	cfg.Resolver = ResolverConfig{
		Model:         v.GetString("resolver.model"),
		MinSimilarity: v.GetFloat64("resolver.min_similarity"),
	}

	return cfg, nil
}

// Validate checks settings that would otherwise surface as confusing runtime
// failures. The server refuses to start on any violation.
func (c *Config) Validate() error {
	primary := c.Completer.PrimaryConfig()
	if primary.Provider == "" {
		return fmt.Errorf("completer: no provider configured")
	}
	if primary.Provider == "openrouter" && primary.APIKey == "" {
		return fmt.Errorf("completer: openrouter provider requires an API key")
	}
	if secondary := c.Completer.SecondaryConfig(); secondary != nil {
		if secondary.Provider == "openrouter" && secondary.APIKey == "" {
			return fmt.Errorf("completer: secondary openrouter provider requires an API key")
		}
	}
	if tertiary := c.Completer.TertiaryConfig(); tertiary != nil {
		if tertiary.Provider == "openrouter" && tertiary.APIKey == "" {
			return fmt.Errorf("completer: tertiary openrouter provider requires an API key")
		}
	}
	if c.Extractor.MaxInFlight < 0 {
		return fmt.Errorf("extractor: max_in_flight must not be negative")
	}
	if c.Resolver.MinSimilarity < 0 || c.Resolver.MinSimilarity > 1 {
		return fmt.Errorf("resolver: min_similarity must be between 0 and 1")
	}
	if c.S3.MaxFileSizeMB <= 0 {
		return fmt.Errorf("s3: max_file_size_mb must be positive")
	}
	return nil
}
