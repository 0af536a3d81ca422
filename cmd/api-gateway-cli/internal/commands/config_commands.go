package commands

import (
	"encoding/json"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ConfigCommandHandler encapsulates the configuration inspection commands.
type ConfigCommandHandler struct {
	logger logger.Logger
}

// NewConfigCommandHandler initializes a ConfigCommandHandler with a console logger.
func NewConfigCommandHandler() (*ConfigCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &ConfigCommandHandler{logger: loggerInstance}, nil
}

// ShowConfigCmd prints the effective configuration with secrets masked
func (commandHandler *ConfigCommandHandler) ShowConfigCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(cfg.Masked(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if cfg.EnvPort != "" && cfg.EnvPort != config.DefaultPort {
		commandHandler.logger.Warn("PORT is set to ", cfg.EnvPort, ", the container image exposes 8000")
	}
	return nil
}

// InitConfigCommands registers show-config
func InitConfigCommands(rootCmd *cobra.Command) error {
	handler, err := NewConfigCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create config command handler %w", err)
	}

	var showConfigCmd = &cobra.Command{
		Use:   "show-config",
		Short: "Print the effective configuration with secrets masked",
		RunE:  handler.ShowConfigCmd,
	}
	rootCmd.AddCommand(showConfigCmd)

	return nil
}
