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

package defaults

import "time"

// External tool timeouts.
const (
	// ToolProbeTimeout bounds presence and environment probes
	// (`which`-style lookups, group listings).
	ToolProbeTimeout = 2 * time.Second

	// ToolQueryTimeout bounds a telemetry query against nvidia-smi or docker.
	ToolQueryTimeout = 5 * time.Second

	// ProcessLookupTimeout bounds a single process-table lookup.
	ProcessLookupTimeout = 2 * time.Second

	// CPUSampleInterval is the window over which CPU utilization is measured.
	CPUSampleInterval = 1 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// TelemetryHandlerTimeout caps a telemetry endpoint. The GPU process
	// view performs one lookup per process, so it must exceed ToolQueryTimeout.
	TelemetryHandlerTimeout = 25 * time.Second

	// SnapshotTimeout is the default timeout for the CLI snapshot command.
	SnapshotTimeout = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
