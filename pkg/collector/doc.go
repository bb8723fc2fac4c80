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

// Package collector groups the telemetry sources behind odind.
//
// Each subpackage reads one source and knows nothing about HTTP:
//
//   - host: CPU, memory and disk usage via gopsutil
//   - gpu: nvidia-smi device, sample and compute process queries
//   - process: ps lookups that enrich GPU processes
//   - docker: container listing and daemon diagnostics
//   - systemd: unit state over D-Bus
//   - text: delimited CLI output parsing shared by gpu and docker
//
// External commands run through a tool.Runner so every collector can be
// tested against tooltest fakes. The telemetry package composes them into
// the records served by the API.
package collector
