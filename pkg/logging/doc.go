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

// Package logging configures structured JSON logging for odin-monitor.
//
// All components log through log/slog. The logger built here writes JSON
// to stderr and tags every record with the module name and version. Debug
// level additionally records the source location.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-call tool invocations and dropped CLI output lines
//   - INFO: server lifecycle and requests (default)
//   - WARN/WARNING: degraded telemetry (tool missing, timed out)
//   - ERROR: failures surfaced to clients
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("odind", version, "debug")
//
//	logger := logging.NewStructuredLogger("odind", version, "info")
//	logger.Info("server starting", "port", 5000)
//
// # Environment Configuration
//
// LOG_LEVEL controls verbosity when no explicit level is given:
//
//	LOG_LEVEL=debug odind serve
package logging
