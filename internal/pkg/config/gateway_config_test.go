//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearGatewayEnv unsets every variable the loader reads so host settings do not leak into tests.
// t.Setenv registers the restore, os.Unsetenv makes the variable absent for godotenv.
func clearGatewayEnv(t *testing.T) {
	t.Helper()
	for _, envVars := range envBindings {
		for _, envVar := range envVars {
			t.Setenv(envVar, "")
			require.NoError(t, os.Unsetenv(envVar))
		}
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("API_KEY", "test-api-key")
	t.Setenv("JWT_SECRET_KEY", "test-jwt-secret")
	t.Setenv("S3_BUCKET_NAME", "gateway-bucket")
}

func TestInitializeGatewayConfig_Defaults(t *testing.T) {
	clearGatewayEnv(t)
	setRequiredEnv(t)

	cfg, err := InitializeGatewayConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, LogLevelInfo, cfg.Logger.LogLevel)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
	assert.Equal(t, DefaultS3Region, cfg.Storage.Region)
	assert.Equal(t, DefaultS3BasePath, cfg.Storage.BasePath)
	assert.Equal(t, DefaultPresignExpirySeconds, cfg.Storage.PresignExpirySeconds)
	assert.Equal(t, JWTAlgorithmHS256, cfg.Auth.JWTAlgorithm)
	assert.Equal(t, 30, cfg.Auth.TokenExpireMinutes)
	assert.Equal(t, 7, cfg.Auth.RefreshTokenExpireDays)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, DefaultRabbitMQExchange, cfg.Integration.RabbitMQExchange)
	assert.Empty(t, cfg.EnvPort)
}

func TestInitializeGatewayConfig_EnvironmentOverrides(t *testing.T) {
	clearGatewayEnv(t)
	setRequiredEnv(t)

	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "t")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("RATE_LIMIT", "250")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com/, http://localhost:3000")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("JWT_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("JWT_REFRESH_TOKEN_EXPIRE_DAYS", "14")
	t.Setenv("S3_REGION", "eu-central-1")
	t.Setenv("S3_BASE_PATH", "tenant/")
	t.Setenv("PASSWORD_SALT", "pepper")

	cfg, err := InitializeGatewayConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "8080", cfg.EnvPort)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, LogLevelWarning, cfg.Logger.LogLevel)
	assert.Equal(t, 250, cfg.Server.RateLimit)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, JWTAlgorithmHS512, cfg.Auth.JWTAlgorithm)
	assert.Equal(t, 15, cfg.Auth.TokenExpireMinutes)
	assert.Equal(t, 14, cfg.Auth.RefreshTokenExpireDays)
	assert.Equal(t, "eu-central-1", cfg.Storage.Region)
	assert.Equal(t, "tenant/", cfg.Storage.BasePath)
	assert.Equal(t, "pepper", cfg.Auth.PasswordSalt)
}

func TestInitializeGatewayConfig_Aliases(t *testing.T) {
	tests := []struct {
		name           string
		env            map[string]string
		expectedKey    string
		expectedSecret string
		expectedBucket string
	}{
		{
			name: "aws names",
			env: map[string]string{
				"AWS_ACCESS_KEY_ID":     "aws-key",
				"AWS_SECRET_ACCESS_KEY": "aws-secret",
				"S3_BUCKET_NAME":        "primary-bucket",
			},
			expectedKey:    "aws-key",
			expectedSecret: "aws-secret",
			expectedBucket: "primary-bucket",
		},
		{
			name: "s3 prefixed names",
			env: map[string]string{
				"S3_AWS_ACCESS_KEY": "s3-key",
				"S3_AWS_SECRET_KEY": "s3-secret",
				"S3_BUCKET":         "legacy-bucket",
			},
			expectedKey:    "s3-key",
			expectedSecret: "s3-secret",
			expectedBucket: "legacy-bucket",
		},
		{
			name: "first name wins",
			env: map[string]string{
				"AWS_ACCESS_KEY_ID":     "aws-key",
				"S3_AWS_ACCESS_KEY":     "s3-key",
				"AWS_SECRET_ACCESS_KEY": "aws-secret",
				"S3_BUCKET_NAME":        "primary-bucket",
				"S3_BUCKET":             "legacy-bucket",
			},
			expectedKey:    "aws-key",
			expectedSecret: "aws-secret",
			expectedBucket: "primary-bucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearGatewayEnv(t)
			t.Setenv("DATABASE_URL", "sqlite::memory:")
			t.Setenv("API_KEY", "test-api-key")
			t.Setenv("JWT_SECRET_KEY", "test-jwt-secret")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := InitializeGatewayConfig("")
			require.NoError(t, err)

			assert.Equal(t, tt.expectedKey, cfg.Storage.AccessKeyID)
			assert.Equal(t, tt.expectedSecret, cfg.Storage.SecretAccessKey)
			assert.Equal(t, tt.expectedBucket, cfg.Storage.Bucket)
		})
	}
}

func TestInitializeGatewayConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"database url", "DATABASE_URL"},
		{"api key", "API_KEY"},
		{"jwt secret", "JWT_SECRET_KEY"},
		{"bucket", "S3_BUCKET_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearGatewayEnv(t)
			setRequiredEnv(t)
			t.Setenv(tt.missing, "")

			_, err := InitializeGatewayConfig("")
			require.Error(t, err)
		})
	}
}

func TestInitializeGatewayConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unsupported database", "DATABASE_URL", "mysql://db/app"},
		{"unsupported jwt algorithm", "JWT_ALGORITHM", "RS256"},
		{"negative rate limit", "RATE_LIMIT", "-1"},
		{"non numeric port", "PORT", "http"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearGatewayEnv(t)
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := InitializeGatewayConfig("")
			require.Error(t, err)
		})
	}
}

func TestInitializeGatewayConfig_EnvFile(t *testing.T) {
	clearGatewayEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "DATABASE_URL=sqlite::memory:\nAPI_KEY=file-key\nJWT_SECRET_KEY=file-secret\nS3_BUCKET=file-bucket\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0600))

	// variables already present in the environment win over the file
	t.Setenv("API_KEY", "process-key")

	cfg, err := InitializeGatewayConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "process-key", cfg.Auth.APIKey)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecretKey)
	assert.Equal(t, "file-bucket", cfg.Storage.Bucket)
}

func TestInitializeGatewayConfig_MissingEnvFileIsIgnored(t *testing.T) {
	clearGatewayEnv(t)
	setRequiredEnv(t)

	_, err := InitializeGatewayConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestGatewayConfig_Masked(t *testing.T) {
	cfg := &GatewayConfig{
		DatabaseURL: "postgres://u:p@db/app",
		Server: ServerSettings{
			Port:               "8000",
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          100,
		},
		Storage: StorageSettings{Bucket: "bucket", Region: "us-east-1"},
		Auth:    AuthSettings{APIKey: "secret", JWTSecretKey: "jwt-secret"},
	}

	masked := cfg.Masked()

	assert.Equal(t, "***", masked["DATABASE_URL"])
	assert.Equal(t, "***", masked["API_KEY"])
	assert.Equal(t, "***", masked["JWT_SECRET_KEY"])
	assert.Equal(t, "Not set", masked["PASSWORD_SALT"])
	assert.Equal(t, "Not set", masked["ENV_PORT"])
	assert.Equal(t, "bucket", masked["S3_BUCKET"])
	assert.Equal(t, "8000", masked["PORT"])
}
