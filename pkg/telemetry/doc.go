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

// Package telemetry assembles host, GPU and container telemetry into the
// records served by the monitor's JSON endpoints.
//
// A Collector composes the nvidia-smi, docker, process-table and OS
// metric clients. Each operation runs its external calls sequentially,
// each under its own timeout, and degrades to an empty result with a
// message or status string when a tool is missing, slow or failing:
//
//	c := telemetry.New(tool.NewExecRunner(logger), telemetry.WithLogger(logger))
//	resp := c.ListGPUProcesses(ctx)
//	if resp.Message != "" {
//	    // no GPU telemetry on this host
//	}
//
// Only CollectHostMetrics returns an error, when the OS counters
// themselves cannot be read.
package telemetry
