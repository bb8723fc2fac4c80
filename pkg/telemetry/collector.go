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

package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/collector/docker"
	"github.com/odin-ai/odin-monitor/pkg/collector/gpu"
	"github.com/odin-ai/odin-monitor/pkg/collector/host"
	"github.com/odin-ai/odin-monitor/pkg/collector/process"
	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/tool"
)

// Messages surfaced to clients when GPU telemetry cannot be read.
const (
	GPUSummaryUnavailable = "Not available"
	MsgGPUUnavailable     = "nvidia-smi not available in container"
	MsgGPUQueryFailed     = "nvidia-smi command failed"
	MsgGPUProcessesFailed = "No GPU processes found or nvidia-smi error"
	ErrGPUNotAvailable    = "nvidia-smi not available"
)

type settings struct {
	logger       *slog.Logger
	hostOpts     []host.Option
	gpuOpts      []gpu.Option
	dockerOpts   []docker.Option
	processTable process.Table
	clock        func() time.Time
}

// Option configures a Collector.
type Option func(*settings)

// WithLogger sets the logger used to report degraded telemetry.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHostSource overrides where CPU, memory and disk counters come from.
func WithHostSource(src host.Source) Option {
	return func(s *settings) {
		s.hostOpts = append(s.hostOpts, host.WithSource(src))
	}
}

// WithDiskPath sets the filesystem reported as disk usage.
func WithDiskPath(path string) Option {
	return func(s *settings) {
		s.hostOpts = append(s.hostOpts, host.WithDiskPath(path))
	}
}

// WithCPUInterval sets the CPU sampling window.
func WithCPUInterval(d time.Duration) Option {
	return func(s *settings) {
		s.hostOpts = append(s.hostOpts, host.WithCPUInterval(d))
	}
}

// WithGPUBinary overrides the nvidia-smi executable.
func WithGPUBinary(name string) Option {
	return func(s *settings) {
		s.gpuOpts = append(s.gpuOpts, gpu.WithBinary(name))
	}
}

// WithDockerBinary overrides the docker executable.
func WithDockerBinary(name string) Option {
	return func(s *settings) {
		s.dockerOpts = append(s.dockerOpts, docker.WithBinary(name))
	}
}

// WithDockerSocket overrides the docker daemon socket path.
func WithDockerSocket(path string) Option {
	return func(s *settings) {
		s.dockerOpts = append(s.dockerOpts, docker.WithSocketPath(path))
	}
}

// WithQueryTimeout overrides the timeout of nvidia-smi and docker queries.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.gpuOpts = append(s.gpuOpts, gpu.WithQueryTimeout(d))
		s.dockerOpts = append(s.dockerOpts, docker.WithQueryTimeout(d))
	}
}

// WithUnitStater reports the state of the named service unit in docker
// diagnostics.
func WithUnitStater(units docker.UnitStater, unit string) Option {
	return func(s *settings) {
		s.dockerOpts = append(s.dockerOpts, docker.WithUnitStater(units, unit))
	}
}

// WithProcessTable overrides how GPU process owners are looked up.
func WithProcessTable(t process.Table) Option {
	return func(s *settings) {
		if t != nil {
			s.processTable = t
		}
	}
}

// WithClock overrides the time source used for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.clock = now
		}
	}
}

// Collector produces telemetry records. It holds no mutable state and is
// safe for concurrent use.
type Collector struct {
	logger *slog.Logger
	host   *host.Collector
	gpu    *gpu.Client
	docker *docker.Client
	procs  process.Table
	clock  func() time.Time
}

// New returns a Collector that runs external tools through runner.
func New(runner tool.Runner, opts ...Option) *Collector {
	s := &settings{
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.processTable == nil {
		s.processTable = process.NewPSTable(runner)
	}

	return &Collector{
		logger: s.logger,
		host:   host.NewCollector(s.hostOpts...),
		gpu:    gpu.NewClient(runner, s.gpuOpts...),
		docker: docker.NewClient(runner, s.dockerOpts...),
		procs:  s.processTable,
		clock:  s.clock,
	}
}

func (c *Collector) timestamp() string {
	return c.clock().Format(time.RFC3339Nano)
}

// CollectHostMetrics reads CPU, memory and disk usage and a one-line GPU
// summary. A failing GPU query yields "Not available"; a failing OS
// counter fails the reading.
func (c *Collector) CollectHostMetrics(ctx context.Context) (*HostMetrics, error) {
	stats, err := c.host.Collect(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := c.gpu.Info(ctx)
	if err != nil {
		c.logger.Debug("gpu summary unavailable", "error", err)
		summary = GPUSummaryUnavailable
	}

	return &HostMetrics{
		CPUPercent:    stats.CPUPercent,
		CPUCount:      stats.CPUCount,
		MemoryTotal:   stats.Memory.Total,
		MemoryUsed:    stats.Memory.Used,
		MemoryPercent: stats.Memory.Percent(),
		DiskTotal:     stats.Disk.Total,
		DiskUsed:      stats.Disk.Used,
		DiskPercent:   stats.Disk.Percent(),
		GPUSummary:    summary,
		GPUInfo:       summary,
		Timestamp:     c.timestamp(),
	}, nil
}

// gpuFallback maps a GPU query error to a client message or error string.
// A missing binary and a non-zero exit are expected conditions and become
// messages; anything else is reported as an error.
func (c *Collector) gpuFallback(err error, failed string) (message, errMsg string) {
	switch errors.CodeOf(err) {
	case errors.ErrCodeToolUnavailable:
		return MsgGPUUnavailable, ""
	case errors.ErrCodeToolFailure:
		c.logger.Warn("nvidia-smi query failed", "error", err, "stderr", tool.Stderr(err))
		return failed, ""
	default:
		c.logger.Error("nvidia-smi query error", "error", err)
		return "", err.Error()
	}
}

// gpuError is gpuFallback for views that report every failure as an error.
func (c *Collector) gpuError(err error) string {
	if _, errMsg := c.gpuFallback(err, ErrGPUNotAvailable); errMsg != "" {
		return errMsg
	}
	return ErrGPUNotAvailable
}

// ListGPUSummaries returns the lightweight GPU listing.
func (c *Collector) ListGPUSummaries(ctx context.Context) *GPUListResponse {
	resp := &GPUListResponse{GPUs: []gpu.Summary{}}

	if err := c.gpu.Available(); err != nil {
		resp.Message = MsgGPUUnavailable
		resp.Timestamp = c.timestamp()
		return resp
	}

	summaries, err := c.gpu.Summaries(ctx)
	if err != nil {
		resp.Message, resp.Error = c.gpuFallback(err, MsgGPUQueryFailed)
	} else {
		resp.GPUs = summaries
	}
	resp.Timestamp = c.timestamp()
	return resp
}

// ListGPUDevices returns full device records. When nvidia-smi is absent it
// returns no devices and an explanatory message rather than an error.
func (c *Collector) ListGPUDevices(ctx context.Context) ([]gpu.Device, string, error) {
	if err := c.gpu.Available(); err != nil {
		return []gpu.Device{}, MsgGPUUnavailable, nil
	}
	devices, err := c.gpu.Devices(ctx)
	if err != nil {
		return []gpu.Device{}, "", err
	}
	return devices, "", nil
}

// GPUDetails returns device records together with compute processes.
// Failing to list processes leaves the process list empty.
func (c *Collector) GPUDetails(ctx context.Context) *GPUDetailResponse {
	resp := &GPUDetailResponse{GPUs: []gpu.Device{}, Processes: []gpu.Process{}}

	devices, msg, err := c.ListGPUDevices(ctx)
	switch {
	case err != nil:
		resp.Error = c.gpuError(err)
	case msg != "":
		resp.Message = msg
	default:
		resp.GPUs = devices
		if procs, err := c.gpu.ComputeApps(ctx); err != nil {
			c.logger.Debug("gpu compute apps unavailable", "error", err)
		} else {
			resp.Processes = procs
		}
	}

	resp.Timestamp = c.timestamp()
	return resp
}

// SampleGPUs returns one chart sample per GPU.
func (c *Collector) SampleGPUs(ctx context.Context) *GPURealtimeResponse {
	resp := &GPURealtimeResponse{GPUs: []gpu.Sample{}}

	if err := c.gpu.Available(); err != nil {
		resp.Message = MsgGPUUnavailable
		resp.Timestamp = c.timestamp()
		return resp
	}

	now := c.clock()
	samples, err := c.gpu.Samples(ctx, now)
	if err != nil {
		resp.Error = c.gpuError(err)
	} else {
		resp.GPUs = samples
	}
	resp.Timestamp = now.Format(time.RFC3339Nano)
	return resp
}

// ListGPUProcesses returns compute processes, each enriched with its
// process-table entry when the pid is still alive.
func (c *Collector) ListGPUProcesses(ctx context.Context) *GPUProcessResponse {
	resp := &GPUProcessResponse{Processes: []gpu.Process{}}

	if err := c.gpu.Available(); err != nil {
		resp.Message = MsgGPUUnavailable
		resp.Timestamp = c.timestamp()
		return resp
	}

	procs, err := c.gpu.Processes(ctx)
	if err != nil {
		resp.Message, resp.Error = c.gpuFallback(err, MsgGPUProcessesFailed)
		resp.Timestamp = c.timestamp()
		return resp
	}

	for i := range procs {
		if procs[i].PID == "N/A" {
			continue
		}
		info, err := c.procs.Lookup(ctx, procs[i].PID)
		if err != nil {
			// exited between the two queries
			c.logger.Debug("process lookup failed", "pid", procs[i].PID, "error", err)
			continue
		}
		procs[i].Info = info
	}

	resp.Processes = procs
	resp.Timestamp = c.timestamp()
	return resp
}

// ListContainers reports the docker daemon status and running containers.
func (c *Collector) ListContainers(ctx context.Context) *ServicesResponse {
	status, containers, details := c.docker.List(ctx)
	if status != docker.StatusRunning {
		c.logger.Warn("docker unavailable", "status", status, "details", details)
	}
	return &ServicesResponse{
		Docker:       status,
		Containers:   containers,
		ErrorDetails: details,
		Timestamp:    c.timestamp(),
	}
}

// DiagnoseDocker gathers docker access diagnostics.
func (c *Collector) DiagnoseDocker(ctx context.Context) *docker.Diagnostics {
	return c.docker.Diagnose(ctx)
}
