package commands

import (
	"bytes"
	"testing"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "ecsdisco", cmd.Use)
	assert.Equal(t, "Declare and synthesize an ECS service discovery topology", cmd.Short)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expectedSubcommands := []string{
		"init",
		"plan",
		"validate",
		"synth",
		"associate",
		"publish",
		"version",
		"completion",
	}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range expectedSubcommands {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
	assert.Len(t, cmd.Commands(), len(expectedSubcommands))
}

func TestRoot_LoggingFlags(t *testing.T) {
	cmd := Root()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "0", verbose.DefValue)

	jsonLogs := cmd.PersistentFlags().Lookup("log-json")
	require.NotNil(t, jsonLogs)
	assert.Equal(t, "false", jsonLogs.DefValue)
}

func TestRoot_StoresLoggerInContext(t *testing.T) {
	root := Root()

	var found bool
	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := logr.FromContext(cmd.Context())
			found = err == nil
			return nil
		},
	}
	root.AddCommand(probe)

	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetArgs([]string{"probe", "-vv", "--log-json"})

	require.NoError(t, root.Execute())
	assert.True(t, found, "logger should be stored in the command context")
}
