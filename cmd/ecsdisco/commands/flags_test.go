package commands

import (
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command   func() *cobra.Command
		flag      string
		shorthand string
		defValue  string
	}{
		{command: Plan, flag: "config", shorthand: "c"},
		{command: Plan, flag: "output", defValue: "auto"},
		{command: Plan, flag: "diff"},
		{command: Plan, flag: "save"},
		{command: Validate, flag: "config", shorthand: "c"},
		{command: Synth, flag: "config", shorthand: "c"},
		{command: Synth, flag: "output", shorthand: "o"},
		{command: Synth, flag: "metrics-file"},
		{command: Associate, flag: "vpc-id"},
		{command: Associate, flag: "namespace"},
		{command: Associate, flag: "region"},
		{command: Associate, flag: "profile"},
		{command: Associate, flag: "metrics-file"},
		{command: Publish, flag: "bucket"},
		{command: Publish, flag: "prefix"},
		{command: Publish, flag: "template"},
		{command: Publish, flag: "endpoint"},
		{command: Publish, flag: "path-style", defValue: "false"},
	}

	for _, tt := range tests {
		cmd := tt.command()
		t.Run(cmd.Name()+"/"+tt.flag, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag, "%s flag should exist", tt.flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
			assert.NotEmpty(t, flag.Usage)
		})
	}
}

func TestRequiredFlags(t *testing.T) {
	tests := []struct {
		args []string
		flag string
	}{
		{args: []string{"associate"}, flag: "vpc-id"},
		{args: []string{"publish"}, flag: "bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			root := Root()
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			root.SetArgs(tt.args)

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.flag)
		})
	}
}
