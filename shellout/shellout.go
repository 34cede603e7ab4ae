// Package shellout implements the glyph rasterizer and the animation
// encoder on top of external tools: ImageMagick's convert and gifsicle.
//
// Both satisfy the same interfaces as the native implementations
// (text.Rasterizer and anim.Encoder) and are selected with the CLI's
// --backend=shell flag. Tools are invoked directly, never through a shell.
package shellout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolNotFound is returned when an external tool is not on PATH.
var ErrToolNotFound = errors.New("shellout: tool not found")

// ToolError reports a failed tool invocation with its stderr output.
type ToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("shellout: %s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("shellout: %s: %v: %s", e.Tool, e.Err, msg)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Available reports whether the named tool can be found on PATH.
func Available(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

// run executes tool with args and returns its stdout.
func run(ctx context.Context, tool string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, tool)
	}
	var stdout, stderr bytes.Buffer
	// #nosec G204 -- tool and arguments are built by this package, no shell is involved
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &ToolError{Tool: tool, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
