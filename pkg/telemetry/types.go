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
	"github.com/odin-ai/odin-monitor/pkg/collector/docker"
	"github.com/odin-ai/odin-monitor/pkg/collector/gpu"
)

// HostMetrics is a point-in-time reading of host resources. Byte counts
// are raw; percentages are derived from them.
type HostMetrics struct {
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
	CPUCount      int     `json:"cpu_count" yaml:"cpu_count"`
	MemoryTotal   uint64  `json:"memory_total" yaml:"memory_total"`
	MemoryUsed    uint64  `json:"memory_used" yaml:"memory_used"`
	MemoryPercent float64 `json:"memory_percent" yaml:"memory_percent"`
	DiskTotal     uint64  `json:"disk_total" yaml:"disk_total"`
	DiskUsed      uint64  `json:"disk_used" yaml:"disk_used"`
	DiskPercent   float64 `json:"disk_percent" yaml:"disk_percent"`
	GPUSummary    string  `json:"gpu_summary" yaml:"gpu_summary"`
	// GPUInfo mirrors GPUSummary under the key the dashboard reads.
	GPUInfo   string `json:"gpu_info" yaml:"-"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// GPUListResponse is the lightweight GPU listing.
type GPUListResponse struct {
	GPUs      []gpu.Summary `json:"gpus"`
	Message   string        `json:"message,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp string        `json:"timestamp"`
}

// GPUDetailResponse carries full device records and compute processes.
type GPUDetailResponse struct {
	GPUs      []gpu.Device  `json:"gpus"`
	Processes []gpu.Process `json:"processes"`
	Message   string        `json:"message,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp string        `json:"timestamp"`
}

// GPURealtimeResponse carries chart samples.
type GPURealtimeResponse struct {
	GPUs      []gpu.Sample `json:"gpus"`
	Message   string       `json:"message,omitempty"`
	Error     string       `json:"error,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// GPUProcessResponse lists compute processes enriched with process-table data.
type GPUProcessResponse struct {
	Processes []gpu.Process `json:"processes"`
	Message   string        `json:"message,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp string        `json:"timestamp"`
}

// ServicesResponse reports the container runtime state.
type ServicesResponse struct {
	Docker       string             `json:"docker"`
	Containers   []docker.Container `json:"containers"`
	ErrorDetails []string           `json:"error_details"`
	Timestamp    string             `json:"timestamp"`
}
