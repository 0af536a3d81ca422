// Package main is the entry point for the api-gateway-cli application.
// It registers the maintenance sub-commands (connection checks, migrations,
// user administration, configuration dump) and executes the command-line interface.
package main

import (
	"fmt"
	"log"

	commands "github.com/eskiturk2021/api-gateway/cmd/api-gateway-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "api-gateway-cli",
		Short: "Maintenance CLI for the customer management API gateway",
		Long: `api-gateway-cli runs maintenance tasks against the gateway's database and bucket.
It reads the same environment variables as the server, optionally from an env file.

The following environment variables are required by every command except hash-password:
- DATABASE_URL
- API_KEY
- JWT_SECRET_KEY
- S3_BUCKET_NAME (or S3_BUCKET)`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP(commands.EnvFileFlag, "", ".env", "Path to an env file loaded before reading the environment")

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitDatabaseCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize database commands: %w", err)
	}

	if err := commands.InitUserCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize user commands: %w", err)
	}

	if err := commands.InitConfigCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize config commands: %w", err)
	}

	return nil
}
