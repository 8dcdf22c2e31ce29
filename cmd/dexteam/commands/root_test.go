package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestRootCommand_ShowsHelpWhenNoSubcommand tests that the root command
// shows help instead of silently succeeding when invoked without a subcommand
func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	_, _, err := runCLI(t)

	assert.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Usage:", "Help should be displayed")
	assert.Contains(t, output, "dexteam", "Help should show command name")
	for _, sub := range []string{"draft", "catalog", "init", "cache"} {
		assert.Contains(t, output, sub)
	}
}

// TestRootCommand_RejectsUnknownFlags tests that unknown flags
// passed to the root command cause an error instead of being silently ignored
func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, _, err := runCLI(t, "--unknown-flag", "value")
	assert.Error(t, err, "Unknown flag should cause an error")
	assert.Contains(t, err.Error(), "unknown flag", "Error should mention unknown flag")
}

// TestRootCommand_RejectsSubcommandFlags tests that flags meant for
// subcommands (like --seed) are rejected when passed to root command
func TestRootCommand_RejectsSubcommandFlags(t *testing.T) {
	_, _, err := runCLI(t, "--seed", "42")
	assert.Error(t, err, "Subcommand flag passed to root should cause error")
	assert.Contains(t, err.Error(), "unknown flag: --seed",
		"Error should indicate --seed is unknown to root command")
}

// TestRootCommand_AcceptsValidSubcommand tests that valid subcommands
// inherit the persistent flags
func TestRootCommand_AcceptsValidSubcommand(t *testing.T) {
	testRoot := &cobra.Command{
		Use: "dexteam",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	testRoot.PersistentFlags().StringP("config", "f", "dexteam.yml", "")

	var seenConfig string
	subCmd := &cobra.Command{
		Use: "test-sub",
		RunE: func(cmd *cobra.Command, args []string) error {
			seenConfig, _ = cmd.Flags().GetString("config")
			return nil
		},
	}
	testRoot.AddCommand(subCmd)

	testRoot.SetArgs([]string{"test-sub", "-f", "custom.yml"})
	err := testRoot.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "custom.yml", seenConfig)
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-03-01")
	assert.Equal(t, "1.2.3 (commit: abc123, built: 2024-03-01)", rootCmd.Version)
}

func TestNewLogger(t *testing.T) {
	quiet, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.WarnLevel))

	loud, err := newLogger(true)
	require.NoError(t, err)
	assert.True(t, loud.Core().Enabled(zapcore.DebugLevel))
}
