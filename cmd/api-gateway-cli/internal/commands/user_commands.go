package commands

import (
	"fmt"
	"os"

	"github.com/eskiturk2021/api-gateway/internal/app"
	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/cryptography"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// UserCommandHandler encapsulates the account administration commands.
type UserCommandHandler struct {
	logger logger.Logger
}

// NewUserCommandHandler initializes a UserCommandHandler with a console logger.
func NewUserCommandHandler() (*UserCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &UserCommandHandler{logger: loggerInstance}, nil
}

// withAuthService migrates the schema and hands an AuthService over the configured database to fn
func (commandHandler *UserCommandHandler) withAuthService(cmd *cobra.Command, fn func(cfg *config.GatewayConfig, authService users.AuthService) error) error {
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

	authService, err := newAuthService(db, cfg, commandHandler.logger)
	if err != nil {
		return err
	}
	return fn(cfg, authService)
}

func newAuthService(db *gorm.DB, cfg *config.GatewayConfig, log logger.Logger) (users.AuthService, error) {
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}

	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	hasher, err := cryptography.NewPasswordHasher(cfg.Auth.PasswordSalt, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	tokens, err := cryptography.NewTokenManager(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	return app.NewAuthService(userRepo, tokens, hasher, log)
}

// SeedAdminCmd creates the default administrator when no admin account exists
func (commandHandler *UserCommandHandler) SeedAdminCmd(cmd *cobra.Command, _ []string) error {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return fmt.Errorf("invalid password flag: %w", err)
	}

	return commandHandler.withAuthService(cmd, func(cfg *config.GatewayConfig, authService users.AuthService) error {
		if password == "" {
			password = cfg.Auth.AdminDefaultPassword
		}

		created, err := authService.EnsureAdmin(commandContext(cmd), password)
		if err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		if created {
			fmt.Fprintln(cmd.OutOrStdout(), "Admin account created")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Admin account already exists")
		}
		return nil
	})
}

// CreateUserCmd registers a new account
func (commandHandler *UserCommandHandler) CreateUserCmd(cmd *cobra.Command, _ []string) error {
	req := &users.CreateUserRequest{}
	var err error
	if req.Username, err = cmd.Flags().GetString("username"); err != nil {
		return fmt.Errorf("invalid username flag: %w", err)
	}
	if req.Email, err = cmd.Flags().GetString("email"); err != nil {
		return fmt.Errorf("invalid email flag: %w", err)
	}
	if req.Password, err = cmd.Flags().GetString("password"); err != nil {
		return fmt.Errorf("invalid password flag: %w", err)
	}
	if req.Role, err = cmd.Flags().GetString("role"); err != nil {
		return fmt.Errorf("invalid role flag: %w", err)
	}

	return commandHandler.withAuthService(cmd, func(_ *config.GatewayConfig, authService users.AuthService) error {
		user, err := authService.CreateUser(commandContext(cmd), req)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d, role %s)\n", user.Username, user.ID, user.Role)
		return nil
	})
}

// HashPasswordCmd prints the salted hash of a password. It needs PASSWORD_SALT only.
func (commandHandler *UserCommandHandler) HashPasswordCmd(cmd *cobra.Command, _ []string) error {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return fmt.Errorf("invalid password flag: %w", err)
	}
	if password == "" {
		return fmt.Errorf("--password is required")
	}

	salt, err := cmd.Flags().GetString("salt")
	if err != nil {
		return fmt.Errorf("invalid salt flag: %w", err)
	}
	if !cmd.Flags().Changed("salt") {
		salt = os.Getenv("PASSWORD_SALT")
	}

	hasher, err := cryptography.NewPasswordHasher(salt, 0)
	if err != nil {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

// InitUserCommands registers seed-admin, create-user and hash-password
func InitUserCommands(rootCmd *cobra.Command) error {
	handler, err := NewUserCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create user command handler %w", err)
	}

	var seedAdminCmd = &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the default admin account when none exists",
		RunE:  handler.SeedAdminCmd,
	}
	seedAdminCmd.Flags().StringP("password", "", "", "Admin password (defaults to ADMIN_DEFAULT_PASSWORD)")
	rootCmd.AddCommand(seedAdminCmd)

	var createUserCmd = &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account",
		RunE:  handler.CreateUserCmd,
	}
	createUserCmd.Flags().StringP("username", "", "", "Login name")
	createUserCmd.Flags().StringP("email", "", "", "Email address")
	createUserCmd.Flags().StringP("password", "", "", "Initial password")
	createUserCmd.Flags().StringP("role", "", users.RoleUser, "Role (user or admin)")
	rootCmd.AddCommand(createUserCmd)

	var hashPasswordCmd = &cobra.Command{
		Use:   "hash-password",
		Short: "Print the salted hash of a password",
		RunE:  handler.HashPasswordCmd,
	}
	hashPasswordCmd.Flags().StringP("password", "", "", "Password to hash")
	hashPasswordCmd.Flags().StringP("salt", "", "", "Salt prefix (defaults to PASSWORD_SALT)")
	rootCmd.AddCommand(hashPasswordCmd)

	return nil
}
