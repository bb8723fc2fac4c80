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

// Package docker reports the state of the local docker daemon and its
// containers by way of the docker CLI.
//
// List checks, in order, that the daemon socket exists, that the docker
// binary resolves, and then runs:
//
//	docker ps --format {{.Names}},{{.Status}},{{.Ports}}
//
// Each step that fails short-circuits with a status string ("socket not
// found", "docker command not found", "not running", "timeout", ...) and a
// human-readable detail instead of an error.
//
// Diagnose gathers the facts needed to debug access problems: socket
// permissions, docker group membership, a raw docker ps attempt and,
// when a UnitStater is configured, the state of docker.service.
package docker
