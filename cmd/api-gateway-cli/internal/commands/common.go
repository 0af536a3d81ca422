package commands

import (
	"context"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// EnvFileFlag names the persistent flag pointing at the env file
const EnvFileFlag = "env-file"

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// loadConfig reads the gateway configuration honouring the --env-file flag
func loadConfig(cmd *cobra.Command) (*config.GatewayConfig, error) {
	envFile, err := cmd.Flags().GetString(EnvFileFlag)
	if err != nil {
		envFile = ""
	}

	cfg, err := config.InitializeGatewayConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openDatabase connects to the configured database
func openDatabase(cfg *config.GatewayConfig, log logger.Logger) (*gorm.DB, error) {
	db, err := persistence.NewDBConnection(cfg.Database, persistence.NewGormLogger(log, cfg.Logger.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	return db, nil
}

// commandContext returns the command's context, or a background one when the command runs outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
