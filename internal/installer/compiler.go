package installer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"ccmenubar-installer/internal/logger"
)

// ScriptCompiler turns a script source file into an application bundle at out.
type ScriptCompiler interface {
	Compile(ctx context.Context, src, out string) error
}

// CompilerFunc adapts a plain function to ScriptCompiler.
type CompilerFunc func(ctx context.Context, src, out string) error

// Compile calls f(ctx, src, out).
func (f CompilerFunc) Compile(ctx context.Context, src, out string) error {
	return f(ctx, src, out)
}

// CompileError carries the compiler's captured output alongside the exit error.
type CompileError struct {
	Tool   string
	Output string
	Err    error
}

func (e *CompileError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s failed: %v\nOutput: %s", e.Tool, e.Err, e.Output)
}

func (e *CompileError) Unwrap() error { return e.Err }

// OSACompiler runs macOS osacompile (or a compatible tool) as
// `<Tool> -o <out> <src>`.
type OSACompiler struct {
	Tool string
}

// Compile runs the compiler and waits for it to exit.
func (c OSACompiler) Compile(ctx context.Context, src, out string) error {
	tool := c.Tool
	if tool == "" {
		tool = "osacompile"
	}
	cmd := exec.CommandContext(ctx, tool, "-o", out, src)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return &CompileError{Tool: tool, Output: strings.TrimSpace(buf.String()), Err: err}
	}
	if buf.Len() > 0 {
		logger.Debug("[DEBUG] %s output: %s\n", tool, buf.String())
	}
	return nil
}
