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

import "github.com/odin-ai/odin-monitor/pkg/collector/process"

// Device is the full per-GPU record. Memory values are MiB.
type Device struct {
	Index         int     `json:"index" yaml:"index"`
	Name          string  `json:"name" yaml:"name"`
	MemoryTotal   int     `json:"memory_total" yaml:"memory_total"`
	MemoryUsed    int     `json:"memory_used" yaml:"memory_used"`
	MemoryFree    int     `json:"memory_free" yaml:"memory_free"`
	MemoryPercent float64 `json:"memory_percent" yaml:"memory_percent"`
	Temperature   int     `json:"temperature" yaml:"temperature"`
	Utilization   int     `json:"utilization" yaml:"utilization"`
	PowerDraw     float64 `json:"power_draw" yaml:"power_draw"`
	PowerLimit    float64 `json:"power_limit" yaml:"power_limit"`
	ClockGraphics int     `json:"clock_graphics" yaml:"clock_graphics"`
	ClockMemory   int     `json:"clock_memory" yaml:"clock_memory"`
}

// Summary is the lightweight per-GPU record. Values are passed through
// exactly as nvidia-smi printed them.
type Summary struct {
	Name        string `json:"name" yaml:"name"`
	MemoryTotal string `json:"memory_total" yaml:"memory_total"`
	MemoryUsed  string `json:"memory_used" yaml:"memory_used"`
	Temperature string `json:"temperature" yaml:"temperature"`
	Utilization string `json:"utilization" yaml:"utilization"`
}

// Sample is a point-in-time reading for charting.
type Sample struct {
	Index         int     `json:"index"`
	Utilization   int     `json:"utilization"`
	MemoryUsed    int     `json:"memory_used"`
	MemoryTotal   int     `json:"memory_total"`
	MemoryPercent float64 `json:"memory_percent"`
	Temperature   int     `json:"temperature"`
	PowerDraw     float64 `json:"power_draw"`
	// Timestamp is seconds since the Unix epoch.
	Timestamp float64 `json:"timestamp"`
}

// Process is a compute process running on a GPU. PID is kept as reported
// since nvidia-smi prints "N/A" inside containers without PID namespace
// access. Process-table details are embedded when available.
type Process struct {
	GPUUUID     string `json:"gpu_uuid"`
	PID         string `json:"pid"`
	ProcessName string `json:"process_name"`
	MemoryUsed  int    `json:"memory_used"`
	ProcessType string `json:"process_type,omitempty"`

	*process.Info
}
