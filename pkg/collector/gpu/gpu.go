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

package gpu

import (
	"context"
	"strings"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/defaults"
	"github.com/odin-ai/odin-monitor/pkg/tool"
)

const (
	nvidiaSMICommand = "nvidia-smi"
	csvFormat        = "--format=csv,noheader,nounits"
)

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the nvidia-smi executable name or path.
func WithBinary(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.binary = name
		}
	}
}

// WithQueryTimeout overrides the timeout applied to each query.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.queryTimeout = d
		}
	}
}

// Client queries NVIDIA GPUs through nvidia-smi.
type Client struct {
	runner       tool.Runner
	binary       string
	queryTimeout time.Duration
}

// NewClient returns a Client that executes nvidia-smi through runner.
func NewClient(runner tool.Runner, opts ...Option) *Client {
	c := &Client{
		runner:       runner,
		binary:       nvidiaSMICommand,
		queryTimeout: defaults.ToolQueryTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the configured nvidia-smi executable.
func (c *Client) Binary() string {
	return c.binary
}

// Available reports, as a TOOL_UNAVAILABLE error, whether nvidia-smi
// cannot be resolved.
func (c *Client) Available() error {
	_, err := c.runner.LookPath(c.binary)
	return err
}

func (c *Client) query(ctx context.Context, flag string, fields []string) ([]byte, error) {
	arg := flag + "=" + strings.Join(fields, ",")
	res, err := c.runner.Run(ctx, c.queryTimeout, c.binary, arg, csvFormat)
	if err != nil {
		return nil, err
	}
	return res.Stdout, nil
}

// Info returns the raw name, memory.total and memory.used listing,
// one line per GPU.
func (c *Client) Info(ctx context.Context) (string, error) {
	out, err := c.query(ctx, "--query-gpu", infoFields)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Summaries returns the lightweight per-GPU listing.
func (c *Client) Summaries(ctx context.Context) ([]Summary, error) {
	out, err := c.query(ctx, "--query-gpu", summaryFields)
	if err != nil {
		return nil, err
	}
	return ParseSummaries(out)
}

// Devices returns full per-GPU records.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	out, err := c.query(ctx, "--query-gpu", deviceFields)
	if err != nil {
		return nil, err
	}
	return ParseDevices(out)
}

// Samples returns per-GPU utilization readings stamped with now.
func (c *Client) Samples(ctx context.Context, now time.Time) ([]Sample, error) {
	out, err := c.query(ctx, "--query-gpu", sampleFields)
	if err != nil {
		return nil, err
	}
	return ParseSamples(out, now)
}

// ComputeApps returns compute processes without their process type.
func (c *Client) ComputeApps(ctx context.Context) ([]Process, error) {
	out, err := c.query(ctx, "--query-compute-apps", computeAppFields)
	if err != nil {
		return nil, err
	}
	return ParseProcesses(out, false)
}

// Processes returns compute processes including their process type.
func (c *Client) Processes(ctx context.Context) ([]Process, error) {
	out, err := c.query(ctx, "--query-compute-apps", processFields)
	if err != nil {
		return nil, err
	}
	return ParseProcesses(out, true)
}
