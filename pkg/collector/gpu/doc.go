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

// Package gpu reads NVIDIA GPU telemetry through nvidia-smi.
//
// Every query uses nvidia-smi's machine-readable mode:
//
//	nvidia-smi --query-gpu=index,name,... --format=csv,noheader,nounits
//
// and each output line is split on ", ". Lines with fewer fields than
// requested are dropped. Numeric fields that nvidia-smi reports as "N/A"
// or "[Not Supported]" read as 0; a line whose numbers still do not parse
// is dropped rather than failing the whole query.
//
// # Record Types
//
//   - Device: full per-GPU record including power and clocks
//   - Summary: name, memory, temperature and utilization as raw strings
//   - Sample: compact reading for charts, stamped with epoch seconds
//   - Process: compute process, optionally enriched from the process table
//
// memory_percent is always derived from memory used and total, rounded
// to one decimal place, and is 0 when total memory is reported as 0.
//
// # nvidia-smi Dependency
//
// Available resolves the binary without running it. Callers probe first
// so a missing driver degrades to an empty listing:
//
//	c := gpu.NewClient(tool.NewExecRunner(logger))
//	if err := c.Available(); err != nil {
//	    return nil // no GPUs on this host
//	}
//	devices, err := c.Devices(ctx)
package gpu
