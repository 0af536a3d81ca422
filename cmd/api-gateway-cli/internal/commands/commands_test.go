//go:build unit
// +build unit

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eskiturk2021/api-gateway/internal/infrastructure/cryptography"
	"github.com/eskiturk2021/api-gateway/internal/pkg/testutil"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func setGatewayEnv(t *testing.T) string {
	t.Helper()
	databaseURL := "sqlite:///" + filepath.Join(t.TempDir(), "gateway.db")
	t.Setenv("DATABASE_URL", databaseURL)
	t.Setenv("API_KEY", "cli-api-key")
	t.Setenv("JWT_SECRET_KEY", "cli-jwt-secret")
	t.Setenv("S3_BUCKET_NAME", "cli-bucket")
	t.Setenv("PASSWORD_SALT", "cli-salt")
	t.Setenv("PORT", "")
	return databaseURL
}

// newRoot builds a root command with every group registered and captures its output
func newRoot(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "api-gateway-cli", SilenceUsage: true, SilenceErrors: true}
	rootCmd.PersistentFlags().String(EnvFileFlag, "", "")
	require.NoError(t, InitDatabaseCommands(rootCmd))
	require.NoError(t, InitUserCommands(rootCmd))
	require.NoError(t, InitConfigCommands(rootCmd))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	return rootCmd, out
}

func TestHashPasswordCmd(t *testing.T) {
	t.Setenv("PASSWORD_SALT", "env-salt")

	tests := []struct {
		name string
		args []string
		salt string
	}{
		{"salt from environment", []string{"hash-password", "--password", "secret"}, "env-salt"},
		{"salt flag wins", []string{"hash-password", "--password", "secret", "--salt", "flag-salt"}, "flag-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd, out := newRoot(t, tt.args...)
			require.NoError(t, rootCmd.Execute())

			hasher, err := cryptography.NewPasswordHasher(tt.salt, 0)
			require.NoError(t, err)

			match, needsRehash := hasher.Verify(strings.TrimSpace(out.String()), "secret")
			assert.True(t, match)
			assert.False(t, needsRehash)
		})
	}
}

func TestHashPasswordCmd_RequiresPassword(t *testing.T) {
	rootCmd, _ := newRoot(t, "hash-password")
	assert.Error(t, rootCmd.Execute())
}

func TestShowConfigCmd_MasksSecrets(t *testing.T) {
	setGatewayEnv(t)

	rootCmd, out := newRoot(t, "show-config")
	require.NoError(t, rootCmd.Execute())

	var masked map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &masked))
	assert.Equal(t, "***", masked["API_KEY"])
	assert.Equal(t, "***", masked["JWT_SECRET_KEY"])
	assert.Equal(t, "***", masked["DATABASE_URL"])
	assert.Equal(t, "cli-bucket", masked["S3_BUCKET"])
	assert.Equal(t, "Not set", masked["ENV_PORT"])
	assert.NotContains(t, out.String(), "cli-api-key")
}

func TestShowConfigCmd_MissingConfiguration(t *testing.T) {
	setGatewayEnv(t)
	t.Setenv("API_KEY", "")

	rootCmd, _ := newRoot(t, "show-config")
	assert.Error(t, rootCmd.Execute())
}

func TestMigrateAndUserCommands(t *testing.T) {
	setGatewayEnv(t)

	rootCmd, _ := newRoot(t, "migrate")
	require.NoError(t, rootCmd.Execute())

	rootCmd, out := newRoot(t, "seed-admin", "--password", "first-admin")
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Admin account created")

	rootCmd, out = newRoot(t, "seed-admin")
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Admin account already exists")

	rootCmd, out = newRoot(t, "create-user", "--username", "frontdesk", "--email", "desk@example.com", "--password", "desk-pass")
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Created user frontdesk")
	assert.Contains(t, out.String(), "role user")

	rootCmd, _ = newRoot(t, "create-user", "--username", "frontdesk", "--password", "desk-pass")
	assert.Error(t, rootCmd.Execute())

	rootCmd, _ = newRoot(t, "create-user", "--username", "x", "--password", "desk-pass")
	assert.Error(t, rootCmd.Execute())
}

func TestRunChecks(t *testing.T) {
	handler := &DatabaseCommandHandler{logger: testutil.SetupTestLogger(t)}

	tests := []struct {
		name      string
		checks    []connectionCheck
		expectErr bool
		expected  []string
	}{
		{
			name: "all reachable",
			checks: []connectionCheck{
				{name: "Database", pinger: stubPinger{}},
				{name: "S3 bucket b", pinger: stubPinger{}},
			},
			expected: []string{"Database", "OK"},
		},
		{
			name: "bucket unreachable",
			checks: []connectionCheck{
				{name: "Database", pinger: stubPinger{}},
				{name: "S3 bucket b", pinger: stubPinger{err: errors.New("access denied")}},
			},
			expectErr: true,
			expected:  []string{"FAILED (access denied)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			out := &bytes.Buffer{}
			cmd.SetOut(out)

			err := handler.runChecks(context.Background(), cmd, tt.checks)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			for _, fragment := range tt.expected {
				assert.Contains(t, out.String(), fragment)
			}
		})
	}
}
