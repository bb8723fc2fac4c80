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

package docker

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/collector/systemd"
	"github.com/odin-ai/odin-monitor/pkg/collector/text"
	"github.com/odin-ai/odin-monitor/pkg/defaults"
	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/tool"
)

const (
	dockerCommand = "docker"

	// DefaultSocketPath is where the docker daemon listens by default.
	DefaultSocketPath = "/var/run/docker.sock"

	// psFormat renders one container per line as name,status,ports.
	psFormat = "{{.Names}},{{.Status}},{{.Ports}}"
)

// Status values reported for the docker daemon.
const (
	StatusRunning         = "running"
	StatusNotRunning      = "not running"
	StatusSocketNotFound  = "socket not found"
	StatusCommandNotFound = "docker command not found"
	StatusNotAvailable    = "not available"
	StatusTimeout         = "timeout"
	StatusUnknown         = "unknown"
)

// Container is one row of `docker ps`.
type Container struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Ports  string `json:"ports" yaml:"ports"`
}

// StatFunc reports file metadata, as os.Stat does.
type StatFunc func(name string) (fs.FileInfo, error)

// UnitStater reads the state of a service-manager unit.
type UnitStater interface {
	UnitState(ctx context.Context, unit string) (string, error)
}

// Option configures a Client.
type Option func(*Client)

// WithSocketPath overrides the docker daemon socket location.
func WithSocketPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.socketPath = path
		}
	}
}

// WithBinary overrides the docker executable name or path.
func WithBinary(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.binary = name
		}
	}
}

// WithQueryTimeout overrides the timeout applied to docker ps.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.queryTimeout = d
		}
	}
}

// WithStat overrides how the socket file is inspected.
func WithStat(stat StatFunc) Option {
	return func(c *Client) {
		if stat != nil {
			c.stat = stat
		}
	}
}

// WithUnitStater enables reporting the docker service unit state in
// diagnostics. unit defaults to systemd.DockerUnit when empty.
func WithUnitStater(units UnitStater, unit string) Option {
	return func(c *Client) {
		c.units = units
		if unit != "" {
			c.unit = unit
		}
	}
}

// Client inspects the local docker daemon through its socket and CLI.
type Client struct {
	runner       tool.Runner
	binary       string
	socketPath   string
	queryTimeout time.Duration
	probeTimeout time.Duration
	stat         StatFunc
	units        UnitStater
	unit         string
}

// NewClient returns a Client that executes docker through runner.
func NewClient(runner tool.Runner, opts ...Option) *Client {
	c := &Client{
		runner:       runner,
		binary:       dockerCommand,
		socketPath:   DefaultSocketPath,
		queryTimeout: defaults.ToolQueryTimeout,
		probeTimeout: defaults.ToolProbeTimeout,
		stat:         os.Stat,
		unit:         systemd.DockerUnit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SocketPath returns the configured daemon socket location.
func (c *Client) SocketPath() string {
	return c.socketPath
}

func (c *Client) socketExists() bool {
	_, err := c.stat(c.socketPath)
	return err == nil
}

// List reports the daemon status and its running containers. It never
// fails: every problem is folded into the status and the returned
// error details. The docker CLI is not invoked when the socket is missing.
func (c *Client) List(ctx context.Context) (string, []Container, []string) {
	containers := []Container{}
	details := []string{}

	if !c.socketExists() {
		return StatusSocketNotFound, containers,
			append(details, fmt.Sprintf("Docker socket %s not found", c.socketPath))
	}

	if _, err := c.runner.LookPath(c.binary); err != nil {
		return StatusCommandNotFound, containers,
			append(details, "Docker command not found in PATH")
	}

	res, err := c.runner.Run(ctx, c.queryTimeout, c.binary, "ps", "--format", psFormat)
	if err != nil {
		slog.Warn("docker ps failed", "error", err)
		switch errors.CodeOf(err) {
		case errors.ErrCodeToolFailure:
			return StatusNotRunning, containers,
				append(details, "Docker ps failed: "+tool.Stderr(err))
		case errors.ErrCodeToolUnavailable:
			return StatusNotAvailable, containers,
				append(details, "Docker command not found")
		case errors.ErrCodeTimeout:
			return StatusTimeout, containers,
				append(details, "Docker command timed out")
		default:
			return "error: " + err.Error(), containers,
				append(details, "Exception: "+err.Error())
		}
	}

	parsed, err := ParseContainers(res.Stdout)
	if err != nil {
		return StatusRunning, containers, append(details, "Exception: "+err.Error())
	}
	return StatusRunning, parsed, details
}

// ParseContainers parses `docker ps --format {{.Names}},{{.Status}},{{.Ports}}`
// output. Ports may themselves contain commas and are kept whole.
func ParseContainers(out []byte) ([]Container, error) {
	p := text.NewParser(
		text.WithFieldDelimiter(","),
		text.WithFieldLimit(3),
		text.WithMinFields(3),
	)
	recs, err := p.Records(out)
	if err != nil {
		return nil, err
	}

	containers := make([]Container, 0, len(recs))
	for _, r := range recs {
		containers = append(containers, Container{
			Name:   r[0],
			Status: r[1],
			Ports:  r[2],
		})
	}
	return containers, nil
}
