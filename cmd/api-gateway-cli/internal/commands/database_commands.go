package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/system"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/connector"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/spf13/cobra"
)

const connectionCheckTimeout = 10 * time.Second

// DatabaseCommandHandler encapsulates the connectivity and schema commands.
type DatabaseCommandHandler struct {
	logger logger.Logger
}

// NewDatabaseCommandHandler initializes a DatabaseCommandHandler with a console logger.
func NewDatabaseCommandHandler() (*DatabaseCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &DatabaseCommandHandler{logger: loggerInstance}, nil
}

// connectionCheck is one line of the check-connections report
type connectionCheck struct {
	name   string
	pinger system.Pinger
}

// CheckConnectionsCmd probes the database and the bucket and fails when either is unreachable
func (commandHandler *DatabaseCommandHandler) CheckConnectionsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), connectionCheckTimeout)
	defer cancel()

	db, err := openDatabase(cfg, commandHandler.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.logger.Warn(err)
		}
	}()

	blobConnector, err := connector.NewS3BlobConnector(ctx, &cfg.Storage, commandHandler.logger)
	if err != nil {
		return fmt.Errorf("failed to create S3 blob connector: %w", err)
	}

	return commandHandler.runChecks(ctx, cmd, []connectionCheck{
		{name: "Database", pinger: persistence.NewDBPinger(db)},
		{name: "S3 bucket " + cfg.Storage.Bucket, pinger: blobConnector},
	})
}

func (commandHandler *DatabaseCommandHandler) runChecks(ctx context.Context, cmd *cobra.Command, checks []connectionCheck) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, check := range checks {
		if err := check.pinger.Ping(ctx); err != nil {
			failed++
			commandHandler.logger.Error(check.name, " check failed: ", err)
			fmt.Fprintf(out, "%-30s FAILED (%v)\n", check.name, err)
			continue
		}
		fmt.Fprintf(out, "%-30s OK\n", check.name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d connection checks failed", failed, len(checks))
	}
	return nil
}

// MigrateCmd creates or updates every gateway table
func (commandHandler *DatabaseCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg, commandHandler.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.logger.Warn(err)
		}
	}()

	if err := persistence.Migrate(db); err != nil {
		return err
	}
	commandHandler.logger.Info("Database migrations completed successfully")
	return nil
}

// InitDatabaseCommands registers check-connections and migrate
func InitDatabaseCommands(rootCmd *cobra.Command) error {
	handler, err := NewDatabaseCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create database command handler %w", err)
	}

	var checkConnectionsCmd = &cobra.Command{
		Use:   "check-connections",
		Short: "Check database and S3 connectivity",
		RunE:  handler.CheckConnectionsCmd,
	}
	rootCmd.AddCommand(checkConnectionsCmd)

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	return nil
}
