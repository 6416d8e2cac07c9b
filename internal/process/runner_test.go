package process

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunnerCapturesOutputAndExitCode(t *testing.T) {
	requireShell(t)

	res, err := ExecRunner{}.Run(context.Background(), Command{
		Path: "sh",
		Args: []string{"-c", "echo out; echo err >&2; exit 3"},
	})

	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 3, res.ExitCode)
	assert.True(t, res.Failed())
}

func TestExecRunnerUsesWorkingDirectoryAndEnv(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	res, err := ExecRunner{}.Run(context.Background(), Command{
		Path: "sh",
		Args: []string{"-c", "pwd; echo $XCHELPER_TEST"},
		Dir:  dir,
		Env:  []string{"XCHELPER_TEST=yes"},
	})

	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "yes")
	assert.False(t, res.Failed())
}

func TestExecRunnerMissingBinary(t *testing.T) {
	res, err := ExecRunner{}.Run(context.Background(), Command{Path: "xchelper-definitely-missing"})

	require.Error(t, err)
	assert.Equal(t, 127, res.ExitCode)
	assert.NotEmpty(t, res.Stderr)
}

func TestExecRunnerStreamsPrefixedLines(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer

	_, err := ExecRunner{Output: &out, Prefix: "swift"}.Run(context.Background(), Command{
		Path: "sh",
		Args: []string{"-c", "printf 'one\\ntwo\\n'"},
	})

	require.NoError(t, err)
	assert.Equal(t, "swift: one\nswift: two\n", out.String())
}

func TestCommandString(t *testing.T) {
	c := Command{Path: "git", Args: []string{"tag", "1.0.0"}}
	assert.Equal(t, "git tag 1.0.0", c.String())
}
