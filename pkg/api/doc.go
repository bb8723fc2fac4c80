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

// Package api wires telemetry collection to HTTP.
//
// Serve builds the telemetry collector from a config.Config, registers the
// routes below on a pkg/server Server and blocks until shutdown:
//
//	GET /                    HTML dashboard with the current host metrics
//	GET /gpu                 HTML GPU monitor (polls the JSON endpoints)
//	GET /api/status          host metrics
//	GET /api/services        docker status and running containers
//	GET /api/gpu             GPU summaries
//	GET /api/gpu/detailed    GPU devices and compute processes
//	GET /api/gpu/realtime    one utilization sample per GPU
//	GET /api/gpu/processes   GPU processes enriched from the process table
//	GET /api/debug/docker    docker access diagnostics
//	GET /static/...          embedded CSS and JavaScript
//
// Missing tools never produce an HTTP error. Each JSON endpoint returns its
// fallback payload, and anything the fallbacks do not cover is returned as
// {"error": "..."} with status 200.
//
// Pages are html/template files embedded in the binary, rendered with the
// sprig function map plus bytes (IEC sizes), percent, title and ago helpers.
package api
