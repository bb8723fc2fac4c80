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

// Package config loads odin-monitor configuration.
//
// Settings are layered: built-in defaults, then an optional config file,
// then ODIN_* environment variables. Command-line flags are applied last
// by the CLI.
//
//	server:
//	  port: 8080
//	  rateLimit: 100
//	collector:
//	  nvidiaSmi: /usr/bin/nvidia-smi
//	  dockerSocket: /var/run/docker.sock
//	  queryTimeout: 5s
//
// A file ending in .json is read as JSON with the same keys; any other
// file is YAML. Unknown keys are an error. Durations accept Go duration
// strings; JSON also takes integer nanoseconds and environment variables
// take plain integer seconds.
package config
