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

// Package tooltest provides a scripted tool.Runner for tests.
package tooltest

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/tool"
)

// Response is the scripted outcome of a command.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Err, when set, is returned as-is instead of deriving one from ExitCode.
	Err error
}

// Runner is a fake tool.Runner. Binaries must be installed to resolve, and
// commands are matched against scripted responses by the longest
// registered prefix of their space-joined command line.
type Runner struct {
	mu        sync.Mutex
	paths     map[string]string
	responses map[string]Response
	calls     []string
}

var _ tool.Runner = (*Runner)(nil)

// New returns an empty fake with no binaries installed.
func New() *Runner {
	return &Runner{
		paths:     make(map[string]string),
		responses: make(map[string]Response),
	}
}

// Install makes the named binaries resolvable under /usr/bin.
func (r *Runner) Install(names ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		r.paths[n] = "/usr/bin/" + n
	}
	return r
}

// On scripts the response for command lines starting with prefix.
func (r *Runner) On(prefix string, resp Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[prefix] = resp
	return r
}

// Calls returns the command lines run so far.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Invoked reports whether any command for binary name was run.
func (r *Runner) Invoked(name string) bool {
	for _, c := range r.Calls() {
		if c == name || strings.HasPrefix(c, name+" ") {
			return true
		}
	}
	return false
}

// LookPath implements tool.Runner.
func (r *Runner) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.paths[name]; ok {
		return p, nil
	}
	return "", tool.NotFoundError(name, exec.ErrNotFound)
}

// Run implements tool.Runner.
func (r *Runner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*tool.Result, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	r.mu.Lock()
	r.calls = append(r.calls, line)
	_, installed := r.paths[name]
	resp, matched := r.match(line)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return &tool.Result{}, tool.TimeoutError(name, timeout, err)
	}
	if !installed {
		return &tool.Result{}, tool.NotFoundError(name, exec.ErrNotFound)
	}
	if !matched {
		return &tool.Result{ExitCode: 127}, tool.FailureError(name, 127, "unscripted command: "+line, errors.New("exit status 127"))
	}

	res := &tool.Result{
		Stdout:   []byte(resp.Stdout),
		Stderr:   []byte(resp.Stderr),
		ExitCode: resp.ExitCode,
	}
	if resp.Err != nil {
		return res, resp.Err
	}
	if resp.ExitCode != 0 {
		return res, tool.FailureError(name, resp.ExitCode, res.ErrOutput(), errors.New("non-zero exit"))
	}
	return res, nil
}

func (r *Runner) match(line string) (Response, bool) {
	best := -1
	var resp Response
	for prefix, candidate := range r.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) > best {
			best = len(prefix)
			resp = candidate
		}
	}
	return resp, best >= 0
}
