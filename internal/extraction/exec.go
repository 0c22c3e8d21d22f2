package extraction

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// defaultToolTimeout bounds subprocess conversions. The tools normally finish
// in a few seconds; anything longer means a hung process that must be killed.
const defaultToolTimeout = 60 * time.Second

// runTool executes a conversion subprocess with a hard timeout. The process
// is force-killed when the deadline passes; the resulting error feeds the
// fallback chain like any other tool failure.
func runTool(ctx context.Context, timeout time.Duration, name string, args ...string) (stdout, stderr string, err error) {
	if timeout <= 0 {
		timeout = defaultToolTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}
