package extraction

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTool_CapturesOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	stdout, stderr, err := runTool(context.Background(), time.Second, "sh", "-c", "echo out; echo err >&2")

	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout)
	assert.Equal(t, "err\n", stderr)
}

func TestRunTool_KillsOnTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	start := time.Now()
	_, _, err := runTool(context.Background(), 50*time.Millisecond, "sleep", "10")

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "hung tool must be force-killed")
}

func TestRunTool_MissingBinary(t *testing.T) {
	_, _, err := runTool(context.Background(), time.Second, "definitely-not-a-real-tool-xyz")

	assert.Error(t, err)
}
