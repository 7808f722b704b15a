package installer

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"ccmenubar-installer/internal/logger"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// VerifyError reports a failed smoke test of the installed binary.
type VerifyError struct {
	Binary string
	Expect string
	Output string
	Err    error // non-nil when the command itself failed
}

func (e *VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v\nOutput: %s", e.Binary, e.Err, e.Output)
	}
	return fmt.Sprintf("%s output does not contain %q\nOutput: %s", e.Binary, e.Expect, e.Output)
}

func (e *VerifyError) Unwrap() error { return e.Err }

// Verify runs binary with args and requires a zero exit status and combined
// output containing expect.
func Verify(ctx context.Context, binary string, args []string, expect string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))

	out, err := cmd.CombinedOutput()
	if err != nil {
		return &VerifyError{Binary: binary, Expect: expect, Output: string(out), Err: err}
	}
	if !strings.Contains(string(out), expect) {
		return &VerifyError{Binary: binary, Expect: expect, Output: string(out)}
	}
	logger.Info("[INFO] %s %s: ok\n", binary, strings.Join(args, " "))
	return nil
}
