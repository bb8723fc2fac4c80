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

package process

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/collector/text"
	"github.com/odin-ai/odin-monitor/pkg/defaults"
	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/tool"
)

const psCommand = "ps"

// psColumns are requested from ps in this order.
const psColumns = "user,pcpu,pmem,etime,command"

// minFields is the number of leading columns that must be present.
const minFields = 4

// Info describes a running process as reported by the process table.
type Info struct {
	User          string  `json:"user" yaml:"user"`
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent" yaml:"memory_percent"`
	Runtime       string  `json:"runtime" yaml:"runtime"`
	Command       string  `json:"command" yaml:"command"`
}

// Table looks up processes by pid.
type Table interface {
	Lookup(ctx context.Context, pid string) (*Info, error)
}

// PSTable is a Table backed by the ps command.
type PSTable struct {
	runner  tool.Runner
	timeout time.Duration
}

// NewPSTable returns a Table that shells out to ps through runner.
func NewPSTable(runner tool.Runner) *PSTable {
	return &PSTable{runner: runner, timeout: defaults.ProcessLookupTimeout}
}

// Lookup returns details for pid. A pid that is not numeric is rejected
// without running ps; a pid that no longer exists yields a TOOL_FAILURE
// error because ps exits non-zero.
func (t *PSTable) Lookup(ctx context.Context, pid string) (*Info, error) {
	if _, err := strconv.Atoi(pid); err != nil {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "pid is not numeric",
			map[string]any{"pid": pid})
	}

	res, err := t.runner.Run(ctx, t.timeout, psCommand, "-p", pid, "-o", psColumns, "--no-headers")
	if err != nil {
		return nil, err
	}
	return ParseInfo(res.Output())
}

// ParseInfo parses one line of `ps -o user,pcpu,pmem,etime,command` output.
// The command column keeps its internal spacing.
func ParseInfo(line string) (*Info, error) {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "process not found",
			map[string]any{"line": line})
	}

	cpu, err := text.Float(fields[1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "invalid cpu percent", err)
	}
	mem, err := text.Float(fields[2])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "invalid memory percent", err)
	}

	return &Info{
		User:          fields[0],
		CPUPercent:    cpu,
		MemoryPercent: mem,
		Runtime:       fields[3],
		Command:       commandColumn(line, fields),
	}, nil
}

// commandColumn returns the raw remainder of line after the first four
// columns, or "" when the command column is absent.
func commandColumn(line string, fields []string) string {
	if len(fields) <= minFields {
		return ""
	}
	rest := line
	for _, f := range fields[:minFields] {
		i := strings.Index(rest, f)
		rest = rest[i+len(f):]
	}
	return strings.TrimSpace(rest)
}
