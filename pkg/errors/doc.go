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

// Package errors provides structured, classified errors for odin-monitor.
//
// Every failure produced by an external tool call is a *StructuredError
// whose Code tells the caller which fallback to apply:
//
//   - TOOL_UNAVAILABLE: the binary is not on PATH
//   - TIMEOUT: the command exceeded its deadline
//   - TOOL_FAILURE: the command exited non-zero (stderr is in Context)
//   - INTERNAL: anything unexpected
//
// Use CodeOf or IsCode to branch on the classification:
//
//	if errors.IsCode(err, errors.ErrCodeToolUnavailable) {
//	    return nil, "nvidia-smi not available in container", nil
//	}
//
// StructuredError implements Unwrap, so the standard library errors.Is and
// errors.As see through it to the original cause.
package errors
