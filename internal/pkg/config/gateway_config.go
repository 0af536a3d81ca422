package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// GatewayConfig aggregates every settings group of the gateway
type GatewayConfig struct {
	DatabaseURL string              `mapstructure:"database_url"`
	Server      ServerSettings      `mapstructure:"server"`
	Logger      LoggerSettings      `mapstructure:"logger"`
	Storage     StorageSettings     `mapstructure:"storage"`
	Auth        AuthSettings        `mapstructure:"auth"`
	Integration IntegrationSettings `mapstructure:"integration"`

	// Database is derived from DatabaseURL
	Database DatabaseSettings `mapstructure:"-"`
	// EnvPort is the raw PORT variable, kept apart from the effective port for diagnostics
	EnvPort string `mapstructure:"-"`
}

// envBindings maps configuration keys to the environment variables that may carry them.
// When several variables are listed the first non-empty one wins.
var envBindings = map[string][]string{
	"database_url": {"DATABASE_URL"},

	"server.port":                 {"PORT"},
	"server.debug":                {"DEBUG"},
	"server.cors_allowed_origins": {"CORS_ALLOWED_ORIGINS", "CORS_ORIGINS"},
	"server.rate_limit":           {"RATE_LIMIT"},

	"logger.log_level":   {"LOG_LEVEL"},
	"logger.log_type":    {"LOG_TYPE"},
	"logger.file_path":   {"LOG_FILE_PATH"},
	"logger.max_size":    {"LOG_MAX_SIZE"},
	"logger.max_backups": {"LOG_MAX_BACKUPS"},
	"logger.max_age":     {"LOG_MAX_AGE"},

	"storage.access_key_id":          {"AWS_ACCESS_KEY_ID", "S3_AWS_ACCESS_KEY"},
	"storage.secret_access_key":      {"AWS_SECRET_ACCESS_KEY", "S3_AWS_SECRET_KEY"},
	"storage.region":                 {"S3_REGION", "AWS_REGION"},
	"storage.bucket":                 {"S3_BUCKET_NAME", "S3_BUCKET"},
	"storage.base_path":              {"S3_BASE_PATH"},
	"storage.endpoint":               {"S3_ENDPOINT"},
	"storage.use_path_style":         {"S3_USE_PATH_STYLE"},
	"storage.presign_expiry_seconds": {"S3_PRESIGN_EXPIRY_SECONDS"},

	"auth.api_key":                       {"API_KEY"},
	"auth.jwt_secret_key":                {"JWT_SECRET_KEY"},
	"auth.jwt_algorithm":                 {"JWT_ALGORITHM"},
	"auth.jwt_token_expire_minutes":      {"JWT_TOKEN_EXPIRE_MINUTES"},
	"auth.jwt_refresh_token_expire_days": {"JWT_REFRESH_TOKEN_EXPIRE_DAYS"},
	"auth.password_salt":                 {"PASSWORD_SALT"},
	"auth.admin_default_password":        {"ADMIN_DEFAULT_PASSWORD"},

	"integration.redis_addr":        {"REDIS_ADDR"},
	"integration.rabbitmq_url":      {"RABBITMQ_URL"},
	"integration.rabbitmq_exchange": {"RABBITMQ_EXCHANGE"},
	"integration.otlp_endpoint":     {"OTEL_EXPORTER_OTLP_ENDPOINT"},
	"integration.service_name":      {"OTEL_SERVICE_NAME"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 100)

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("storage.region", DefaultS3Region)
	v.SetDefault("storage.base_path", DefaultS3BasePath)
	v.SetDefault("storage.use_path_style", false)
	v.SetDefault("storage.presign_expiry_seconds", DefaultPresignExpirySeconds)

	v.SetDefault("auth.jwt_algorithm", JWTAlgorithmHS256)
	v.SetDefault("auth.jwt_token_expire_minutes", 30)
	v.SetDefault("auth.jwt_refresh_token_expire_days", 7)
	v.SetDefault("auth.admin_default_password", "admin")

	v.SetDefault("integration.rabbitmq_exchange", DefaultRabbitMQExchange)
	v.SetDefault("integration.service_name", DefaultServiceName)
}

// InitializeGatewayConfig loads the gateway configuration from the environment.
// When envFile names an existing file its variables are loaded first; variables
// already present in the environment take precedence over the file.
func InitializeGatewayConfig(envFile string) (*GatewayConfig, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	for key, envVars := range envBindings {
		if err := v.BindEnv(append([]string{key}, envVars...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg GatewayConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.EnvPort = os.Getenv("PORT")
	cfg.Logger.LogLevel = NormalizeLogLevel(cfg.Logger.LogLevel)
	cfg.Server.CORSAllowedOrigins = cleanOrigins(cfg.Server.CORSAllowedOrigins)

	if cfg.DatabaseURL != "" {
		database, err := ParseDatabaseURL(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		cfg.Database = database
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every settings group
func (c *GatewayConfig) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	validators := []interface{ Validate() error }{
		&c.Server,
		&c.Logger,
		&c.Database,
		&c.Storage,
		&c.Auth,
		&c.Integration,
	}
	for _, settings := range validators {
		if err := settings.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Masked returns a printable view of the configuration with secrets hidden
func (c *GatewayConfig) Masked() map[string]interface{} {
	envPort := c.EnvPort
	if envPort == "" {
		envPort = "Not set"
	}

	return map[string]interface{}{
		"DATABASE_URL":   mask(c.DatabaseURL),
		"S3_BUCKET":      orNotSet(c.Storage.Bucket),
		"S3_REGION":      orNotSet(c.Storage.Region),
		"S3_BASE_PATH":   orNotSet(c.Storage.BasePath),
		"API_KEY":        mask(c.Auth.APIKey),
		"PORT":           c.Server.Port,
		"ENV_PORT":       envPort,
		"CORS_ORIGINS":   c.Server.CORSAllowedOrigins,
		"JWT_SECRET_KEY": mask(c.Auth.JWTSecretKey),
		"JWT_ALGORITHM":  c.Auth.JWTAlgorithm,
		"PASSWORD_SALT":  mask(c.Auth.PasswordSalt),
		"DEBUG":          c.Server.Debug,
		"RATE_LIMIT":     c.Server.RateLimit,
		"LOG_LEVEL":      c.Logger.LogLevel,
	}
}

func mask(value string) string {
	if value == "" {
		return "Not set"
	}
	return "***"
}

func orNotSet(value string) string {
	if value == "" {
		return "Not set"
	}
	return value
}

func cleanOrigins(origins []string) []string {
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		// a single comma separated entry survives when the value came from a default
		for _, part := range strings.Split(origin, ",") {
			if trimmed := strings.TrimRight(strings.TrimSpace(part), "/"); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
	}
	return cleaned
}
