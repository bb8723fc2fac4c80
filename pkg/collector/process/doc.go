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

// Package process looks up running processes in the host process table.
//
// It is used to enrich GPU compute processes reported by nvidia-smi with
// the owning user, CPU and memory share, elapsed time and full command
// line, as reported by:
//
//	ps -p <pid> -o user,pcpu,pmem,etime,command --no-headers
//
// A "-" in the percentage columns is reported as 0.
package process
