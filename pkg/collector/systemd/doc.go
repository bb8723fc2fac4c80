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

// Package systemd reads the state of systemd units over D-Bus.
//
// It backs the docker diagnostics view, which reports whether
// docker.service is running on hosts where docker is managed by systemd:
//
//	state, err := systemd.NewCollector().UnitState(ctx, systemd.DockerUnit)
//	// state == "active (running)"
//
// Hosts and containers without a system bus return a SERVICE_UNAVAILABLE
// error; callers treat the state as unknown.
package systemd
