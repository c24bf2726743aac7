package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "rcc", cmd.Use)
	assert.Contains(t, cmd.Long, "reactive collections")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"validate", "compile", "run", "test", "trace", "replay"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestCommandFlags(t *testing.T) {
	cases := []struct {
		cmd, flag, def string
	}{
		{"compile", "output", ""},
		{"run", "db", ""},
		{"run", "trace", "false"},
		{"test", "update", "false"},
		{"test", "filter", ""},
		{"test", "parallel", "1"},
		{"trace", "db", ""},
		{"trace", "node", ""},
		{"trace", "list", "false"},
		{"replay", "db", ""},
		{"replay", "run", ""},
	}
	root := NewRootCommand()
	for _, tc := range cases {
		t.Run(tc.cmd+"/"+tc.flag, func(t *testing.T) {
			sub, _, err := root.Find([]string{tc.cmd})
			require.NoError(t, err)
			f := sub.Flags().Lookup(tc.flag)
			require.NotNil(t, f)
			assert.Equal(t, tc.def, f.DefValue)
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "doubled.yaml", doubledYAML)

	_, err := execute(t, "--format", "xml", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}
