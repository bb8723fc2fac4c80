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

// Package defaults provides centralized timing constants for odin-monitor.
//
// Every external command the monitor shells out to runs under one of the
// tool timeouts defined here, so that a hung nvidia-smi or docker daemon
// can never hold a request open indefinitely.
//
// # Timeout Categories
//
//   - Tool timeouts: presence probes, telemetry queries, process lookups
//   - Handler timeouts: per-request ceilings for HTTP endpoints
//   - Server timeouts: HTTP server configuration
//
// # Usage
//
//	res, err := runner.Run(ctx, defaults.ToolQueryTimeout, "nvidia-smi", args...)
//
// # Timeout Guidelines
//
//   - Probes: 2s, the binary either resolves immediately or is absent
//   - Queries: 5s, nvidia-smi can stall while a driver initializes
//   - CPU sampling: 1s blocking window per status request
//   - Server shutdown: 30s for graceful shutdown
package defaults
