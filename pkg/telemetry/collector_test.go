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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/collector/docker"
	"github.com/odin-ai/odin-monitor/pkg/collector/host"
	"github.com/odin-ai/odin-monitor/pkg/collector/process"
	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/tool/tooltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	infoQuery    = "nvidia-smi --query-gpu=name,memory.total,memory.used "
	summaryQuery = "nvidia-smi --query-gpu=name,memory.total,memory.used,temperature.gpu,utilization.gpu "
	deviceQuery  = "nvidia-smi --query-gpu=index,name,"
	sampleQuery  = "nvidia-smi --query-gpu=index,utilization.gpu,"
	appsQuery    = "nvidia-smi --query-compute-apps=gpu_uuid,pid,process_name,used_memory "
	procQuery    = "nvidia-smi --query-compute-apps=gpu_uuid,pid,process_name,used_memory,process_type "
	psQuery      = "docker ps --format"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type stubHost struct {
	err error
}

func (s stubHost) CPUPercent(context.Context, time.Duration) (float64, error) { return 12.5, s.err }
func (stubHost) CPUCount(context.Context) (int, error)                        { return 4, nil }
func (stubHost) Memory(context.Context) (host.Usage, error) {
	return host.Usage{Total: 8000, Used: 2000}, nil
}
func (stubHost) Disk(context.Context, string) (host.Usage, error) {
	return host.Usage{Total: 1000, Used: 999}, nil
}

type stubTable map[string]*process.Info

func (s stubTable) Lookup(_ context.Context, pid string) (*process.Info, error) {
	if info, ok := s[pid]; ok {
		return info, nil
	}
	return nil, errors.New(errors.ErrCodeToolFailure, "no such process")
}

func newCollector(t *testing.T, runner *tooltest.Runner, opts ...Option) *Collector {
	t.Helper()
	base := []Option{
		WithHostSource(stubHost{}),
		WithClock(func() time.Time { return fixedNow }),
		WithProcessTable(stubTable{}),
	}
	return New(runner, append(base, opts...)...)
}

func TestCollectHostMetrics(t *testing.T) {
	runner := tooltest.New().Install("nvidia-smi").
		On(infoQuery, tooltest.Response{Stdout: "Tesla T4, 16384, 2048\n"})

	m, err := newCollector(t, runner).CollectHostMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12.5, m.CPUPercent)
	assert.Equal(t, 4, m.CPUCount)
	assert.Equal(t, 25.0, m.MemoryPercent)
	assert.InDelta(t, 99.9, m.DiskPercent, 1e-9)
	assert.Equal(t, "Tesla T4, 16384, 2048", m.GPUSummary)
	assert.Equal(t, m.GPUSummary, m.GPUInfo)
	assert.Equal(t, "2025-03-01T12:00:00Z", m.Timestamp)
}

func TestCollectHostMetrics_GPUFailuresDegrade(t *testing.T) {
	tests := []struct {
		name   string
		runner *tooltest.Runner
	}{
		{"missing binary", tooltest.New()},
		{"non-zero exit", tooltest.New().Install("nvidia-smi").On(infoQuery, tooltest.Response{ExitCode: 9})},
		{"timeout", tooltest.New().Install("nvidia-smi").On(infoQuery, tooltest.Response{Err: errors.New(errors.ErrCodeTimeout, "slow")})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := newCollector(t, tt.runner).CollectHostMetrics(context.Background())
			require.NoError(t, err)
			assert.Equal(t, GPUSummaryUnavailable, m.GPUSummary)
		})
	}
}

func TestCollectHostMetrics_HostError(t *testing.T) {
	c := newCollector(t, tooltest.New(), WithHostSource(stubHost{err: errors.New(errors.ErrCodeInternal, "no /proc")}))
	_, err := c.CollectHostMetrics(context.Background())
	assert.Error(t, err)
}

func TestListGPUSummaries(t *testing.T) {
	tests := []struct {
		name        string
		runner      *tooltest.Runner
		wantCount   int
		wantMessage string
		wantError   string
	}{
		{
			name:        "absent",
			runner:      tooltest.New(),
			wantMessage: MsgGPUUnavailable,
		},
		{
			name:      "present",
			runner:    tooltest.New().Install("nvidia-smi").On(summaryQuery, tooltest.Response{Stdout: "Tesla T4, 16384, 2048, 45, 10\nA100, 40960, 0, 30, 0\n"}),
			wantCount: 2,
		},
		{
			name:        "command failed",
			runner:      tooltest.New().Install("nvidia-smi").On(summaryQuery, tooltest.Response{ExitCode: 6}),
			wantMessage: MsgGPUQueryFailed,
		},
		{
			name:      "timeout",
			runner:    tooltest.New().Install("nvidia-smi").On(summaryQuery, tooltest.Response{Err: errors.New(errors.ErrCodeTimeout, "nvidia-smi timed out")}),
			wantError: "[TIMEOUT] nvidia-smi timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newCollector(t, tt.runner).ListGPUSummaries(context.Background())
			require.NotNil(t, resp.GPUs)
			assert.Len(t, resp.GPUs, tt.wantCount)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.NotEmpty(t, resp.Timestamp)
		})
	}
}

func TestListGPUSummaries_AbsentDoesNotQuery(t *testing.T) {
	runner := tooltest.New()
	resp := newCollector(t, runner).ListGPUSummaries(context.Background())

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"gpus":[],"message":"nvidia-smi not available in container","timestamp":"2025-03-01T12:00:00Z"}`, string(b))
	assert.Empty(t, runner.Calls())
}

func TestGPUDetails(t *testing.T) {
	runner := tooltest.New().Install("nvidia-smi").
		On(deviceQuery, tooltest.Response{Stdout: "0, Tesla T4, 16384, 2048, 14336, 45, 10, 25.5, 70.0, 1200, 800\n"}).
		On(appsQuery, tooltest.Response{Stdout: "GPU-1, 42, python, 512\n"})

	resp := newCollector(t, runner).GPUDetails(context.Background())
	require.Len(t, resp.GPUs, 1)
	assert.Equal(t, 12.5, resp.GPUs[0].MemoryPercent)
	require.Len(t, resp.Processes, 1)
	assert.Equal(t, "42", resp.Processes[0].PID)
	assert.Nil(t, resp.Processes[0].Info, "detailed view does not enrich processes")
	assert.Empty(t, resp.Error)
}

func TestGPUDetails_ProcessQuerySoftFailure(t *testing.T) {
	runner := tooltest.New().Install("nvidia-smi").
		On(deviceQuery, tooltest.Response{Stdout: "0, Tesla T4, 16384, 2048, 14336, 45, 10, N/A, N/A, N/A, N/A\n"}).
		On(appsQuery, tooltest.Response{ExitCode: 2})

	resp := newCollector(t, runner).GPUDetails(context.Background())
	require.Len(t, resp.GPUs, 1)
	assert.Equal(t, 0.0, resp.GPUs[0].PowerDraw)
	assert.NotNil(t, resp.Processes)
	assert.Empty(t, resp.Processes)
	assert.Empty(t, resp.Error)
}

func TestGPUDetails_Failures(t *testing.T) {
	tests := []struct {
		name        string
		runner      *tooltest.Runner
		wantMessage string
		wantError   string
	}{
		{"absent", tooltest.New(), MsgGPUUnavailable, ""},
		{"non-zero exit", tooltest.New().Install("nvidia-smi").On(deviceQuery, tooltest.Response{ExitCode: 9}), "", ErrGPUNotAvailable},
		{"vanished", tooltest.New().Install("nvidia-smi").On(deviceQuery, tooltest.Response{Err: errors.New(errors.ErrCodeToolUnavailable, "gone")}), "", ErrGPUNotAvailable},
		{"timeout", tooltest.New().Install("nvidia-smi").On(deviceQuery, tooltest.Response{Err: errors.New(errors.ErrCodeTimeout, "slow")}), "", "[TIMEOUT] slow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newCollector(t, tt.runner).GPUDetails(context.Background())
			assert.Empty(t, resp.GPUs)
			assert.NotNil(t, resp.GPUs)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestSampleGPUs(t *testing.T) {
	runner := tooltest.New().Install("nvidia-smi").
		On(sampleQuery, tooltest.Response{Stdout: "0, 87, 4096, 16384, 71, 65.5\n"})

	resp := newCollector(t, runner).SampleGPUs(context.Background())
	require.Len(t, resp.GPUs, 1)
	assert.Equal(t, 25.0, resp.GPUs[0].MemoryPercent)
	assert.Equal(t, float64(fixedNow.Unix()), resp.GPUs[0].Timestamp)
	assert.Equal(t, "2025-03-01T12:00:00Z", resp.Timestamp)

	resp = newCollector(t, tooltest.New()).SampleGPUs(context.Background())
	assert.Equal(t, MsgGPUUnavailable, resp.Message)
	assert.Empty(t, resp.GPUs)
}

func TestListGPUProcesses(t *testing.T) {
	runner := tooltest.New().Install("nvidia-smi").
		On(procQuery, tooltest.Response{Stdout: "GPU-1, 100, python, 1024, C\n" +
			"GPU-1, 200, gone, 512, C\n" +
			"GPU-1, N/A, N/A, N/A, \n"})
	table := stubTable{"100": {User: "alice", CPUPercent: 95, Runtime: "01:00", Command: "python train.py"}}

	resp := newCollector(t, runner, WithProcessTable(table)).ListGPUProcesses(context.Background())
	require.Len(t, resp.Processes, 3)

	require.NotNil(t, resp.Processes[0].Info)
	assert.Equal(t, "alice", resp.Processes[0].User)
	assert.Nil(t, resp.Processes[1].Info, "vanished pid keeps the partial record")
	assert.Nil(t, resp.Processes[2].Info)
	assert.Equal(t, "Unknown", resp.Processes[2].ProcessType)
	assert.Empty(t, resp.Message)
}

func TestListGPUProcesses_Failures(t *testing.T) {
	tests := []struct {
		name        string
		runner      *tooltest.Runner
		wantMessage string
		wantError   string
	}{
		{"absent", tooltest.New(), MsgGPUUnavailable, ""},
		{"non-zero exit", tooltest.New().Install("nvidia-smi").On(procQuery, tooltest.Response{ExitCode: 1}), MsgGPUProcessesFailed, ""},
		{"timeout", tooltest.New().Install("nvidia-smi").On(procQuery, tooltest.Response{Err: errors.New(errors.ErrCodeTimeout, "slow")}), "", "[TIMEOUT] slow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newCollector(t, tt.runner).ListGPUProcesses(context.Background())
			assert.NotNil(t, resp.Processes)
			assert.Empty(t, resp.Processes)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestListContainers(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "docker.sock")
	require.NoError(t, os.WriteFile(socket, nil, 0o660))

	runner := tooltest.New().Install("docker").
		On(psQuery, tooltest.Response{Stdout: "web,Up 2 hours,0.0.0.0:8080->8080/tcp\n"})

	resp := newCollector(t, runner, WithDockerSocket(socket)).ListContainers(context.Background())
	assert.Equal(t, docker.StatusRunning, resp.Docker)
	assert.Equal(t, []docker.Container{{Name: "web", Status: "Up 2 hours", Ports: "0.0.0.0:8080->8080/tcp"}}, resp.Containers)
	assert.Empty(t, resp.ErrorDetails)
}

func TestListContainers_NoSocket(t *testing.T) {
	runner := tooltest.New().Install("docker")
	socket := filepath.Join(t.TempDir(), "docker.sock")

	resp := newCollector(t, runner, WithDockerSocket(socket)).ListContainers(context.Background())
	assert.Equal(t, docker.StatusSocketNotFound, resp.Docker)
	assert.False(t, runner.Invoked("docker"))

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"containers":[]`)
}

func TestDiagnoseDocker(t *testing.T) {
	runner := tooltest.New()
	socket := filepath.Join(t.TempDir(), "docker.sock")

	d := newCollector(t, runner, WithDockerSocket(socket)).DiagnoseDocker(context.Background())
	assert.False(t, d.SocketExists)
	assert.False(t, d.CommandAvailable)
	assert.Equal(t, docker.StatusUnknown, d.ServiceState)
}
