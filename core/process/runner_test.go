package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerToolNotFound(t *testing.T) {
	r := NewExecRunner()

	_, err := r.Run(context.Background(), Command{Name: "create-common-app-no-such-tool"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolNotFound))
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := NewExecRunner()

	res, err := r.Run(context.Background(), Command{
		Dir:  t.TempDir(),
		Name: "sh",
		Args: []string{"-c", "printf %s \"$GREETING\""},
		Env:  []string{"GREETING=hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := NewExecRunner()

	res, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 3"}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrToolNotFound))
	assert.Equal(t, 3, res.ExitCode)
}

func TestExecRunnerStreams(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var out bytes.Buffer
	r := NewExecRunner()

	res, err := r.Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "echo streamed"},
		Stream: true,
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Stdout)
	assert.Equal(t, "streamed\n", out.String())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "npm install -D eslint", Command{Name: "npm", Args: []string{"install", "-D", "eslint"}}.String())
}
