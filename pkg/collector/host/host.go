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

package host

import (
	"context"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/collector/text"
	"github.com/odin-ai/odin-monitor/pkg/defaults"
	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// DefaultDiskPath is the filesystem reported when none is configured.
const DefaultDiskPath = "/"

// Usage is a used/total pair in bytes.
type Usage struct {
	Total uint64
	Used  uint64
}

// Percent returns used as a share of total, 0 when total is 0.
func (u Usage) Percent() float64 {
	return text.Percent(float64(u.Used), float64(u.Total))
}

// Source reads OS resource counters.
type Source interface {
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
	CPUCount(ctx context.Context) (int, error)
	Memory(ctx context.Context) (Usage, error)
	Disk(ctx context.Context, path string) (Usage, error)
}

// PSUtilSource is a Source backed by gopsutil.
type PSUtilSource struct{}

// CPUPercent blocks for interval and returns aggregate utilization across all cores.
func (PSUtilSource) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	pct, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(pct) == 0 {
		return 0, errors.New(errors.ErrCodeInternal, "no cpu utilization reported")
	}
	return pct[0], nil
}

// CPUCount returns the number of logical cores.
func (PSUtilSource) CPUCount(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

// Memory returns virtual memory usage.
func (PSUtilSource) Memory(ctx context.Context) (Usage, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Total: vm.Total, Used: vm.Used}, nil
}

// Disk returns usage of the filesystem containing path.
func (PSUtilSource) Disk(ctx context.Context, path string) (Usage, error) {
	du, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Total: du.Total, Used: du.Used}, nil
}

// Stats is one reading of host resources.
type Stats struct {
	CPUPercent float64
	CPUCount   int
	Memory     Usage
	Disk       Usage
}

// Option configures a Collector.
type Option func(*Collector)

// WithSource overrides the counter source.
func WithSource(s Source) Option {
	return func(c *Collector) {
		if s != nil {
			c.source = s
		}
	}
}

// WithDiskPath sets the filesystem whose usage is reported.
func WithDiskPath(path string) Option {
	return func(c *Collector) {
		if path != "" {
			c.diskPath = path
		}
	}
}

// WithCPUInterval sets the CPU sampling window.
func WithCPUInterval(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.cpuInterval = d
		}
	}
}

// Collector reads CPU, memory and disk usage.
type Collector struct {
	source      Source
	diskPath    string
	cpuInterval time.Duration
}

// NewCollector returns a Collector reading from gopsutil unless overridden.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		source:      PSUtilSource{},
		diskPath:    DefaultDiskPath,
		cpuInterval: defaults.CPUSampleInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DiskPath returns the filesystem whose usage is reported.
func (c *Collector) DiskPath() string {
	return c.diskPath
}

// Collect reads all host counters. The call blocks for the CPU sampling
// interval. Any counter failing fails the whole reading.
func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	pct, err := c.source.CPUPercent(ctx, c.cpuInterval)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read cpu utilization", err)
	}

	count, err := c.source.CPUCount(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read cpu count", err)
	}

	memory, err := c.source.Memory(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read memory usage", err)
	}

	du, err := c.source.Disk(ctx, c.diskPath)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read disk usage", err,
			map[string]any{"path": c.diskPath})
	}

	return &Stats{
		CPUPercent: pct,
		CPUCount:   count,
		Memory:     memory,
		Disk:       du,
	}, nil
}
