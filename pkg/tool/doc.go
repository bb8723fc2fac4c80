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

// Package tool runs the external command-line tools odin-monitor depends on.
//
// Runner is the seam between telemetry collection and the host. The
// production implementation, ExecRunner, executes commands with os/exec
// under a per-call timeout, captures stdout and stderr separately and
// classifies every failure:
//
//	res, err := runner.Run(ctx, defaults.ToolQueryTimeout, "docker", "ps")
//	switch errors.CodeOf(err) {
//	case errors.ErrCodeToolUnavailable: // binary missing
//	case errors.ErrCodeTimeout:         // killed after the deadline
//	case errors.ErrCodeToolFailure:     // non-zero exit, see tool.Stderr(err)
//	}
//
// Each invocation is counted in odin_tool_invocations_total{tool,result}
// and timed in odin_tool_duration_seconds{tool}.
//
// Package tooltest provides a scripted Runner for tests.
package tool
