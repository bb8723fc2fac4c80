// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tool

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/errors"
)

// waitDelay bounds how long Run waits for output pipes after the command
// is killed, so a child that leaks its stdout cannot outlive the timeout.
const waitDelay = 500 * time.Millisecond

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Output returns stdout with surrounding whitespace removed.
func (r *Result) Output() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Stdout))
}

// ErrOutput returns stderr with surrounding whitespace removed.
func (r *Result) ErrOutput() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Stderr))
}

// Runner resolves and executes external commands.
//
// Errors returned by both methods are *errors.StructuredError classified as
// TOOL_UNAVAILABLE, TIMEOUT, TOOL_FAILURE or INTERNAL. Run returns a
// non-nil Result alongside a TOOL_FAILURE error so callers can inspect stderr.
type Runner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*Result, error)
}

// ExecRunner runs commands on the local host with os/exec.
type ExecRunner struct {
	logger *slog.Logger
}

// NewExecRunner returns a Runner backed by os/exec. A nil logger uses slog.Default().
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{logger: logger}
}

// LookPath resolves name on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", NotFoundError(name, err)
	}
	return p, nil
}

// Run executes name with args, killing it when timeout elapses.
// A zero timeout relies on ctx alone.
func (r *ExecRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	err := classify(ctx, name, timeout, res, runErr)
	observe(name, err, elapsed)

	r.logger.Debug("tool invoked",
		"tool", name,
		"args", args,
		"exit_code", res.ExitCode,
		"duration", elapsed,
		"result", resultLabel(err),
	)

	return res, err
}

func classify(ctx context.Context, name string, timeout time.Duration, res *Result, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return TimeoutError(name, timeout, ctxErr)
	}
	if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
		return NotFoundError(name, err)
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return FailureError(name, res.ExitCode, res.ErrOutput(), err)
	}
	return errors.Wrap(errors.ErrCodeInternal, "failed to run "+name, err)
}

// NotFoundError reports that name could not be resolved.
func NotFoundError(name string, cause error) *errors.StructuredError {
	return errors.WrapWithContext(errors.ErrCodeToolUnavailable,
		name+" not found in PATH", cause,
		map[string]any{"tool": name})
}

// TimeoutError reports that name did not finish within timeout.
func TimeoutError(name string, timeout time.Duration, cause error) *errors.StructuredError {
	return errors.WrapWithContext(errors.ErrCodeTimeout,
		name+" timed out", cause,
		map[string]any{"tool": name, "timeout": timeout.String()})
}

// FailureError reports that name exited with a non-zero status.
func FailureError(name string, exitCode int, stderr string, cause error) *errors.StructuredError {
	return errors.WrapWithContext(errors.ErrCodeToolFailure,
		name+" exited with non-zero status", cause,
		map[string]any{"tool": name, "exit_code": exitCode, "stderr": stderr})
}

// Stderr extracts the captured stderr from a TOOL_FAILURE error.
func Stderr(err error) string {
	var se *errors.StructuredError
	if !stderrors.As(err, &se) || se.Context == nil {
		return ""
	}
	s, _ := se.Context["stderr"].(string)
	return s
}

func toolLabel(name string) string {
	return filepath.Base(name)
}
