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

// Package cli implements the odind command line.
//
// # Commands
//
// serve (default) - run the dashboard and JSON API:
//
//	odind serve --port 8080 --docker-socket /var/run/docker.sock
//	odind --config /etc/odin/monitor.yaml
//
// snapshot - print one host metrics reading:
//
//	odind snapshot --format yaml
//	odind snapshot -f table -o host.txt
//
// # Global Flags
//
//	--config          YAML config file (ODIN_CONFIG)
//	--log-level       debug, info, warn, error (ODIN_LOG_LEVEL, LOG_LEVEL)
//	--address         listen address (ODIN_ADDRESS)
//	--port            listen port (ODIN_PORT, PORT)
//	--docker-socket   docker daemon socket (ODIN_DOCKER_SOCKET, DOCKER_SOCKET)
//	--rate-limit      API requests per second (ODIN_RATE_LIMIT)
//
// Flags override the config file. Collector settings without a flag are
// read from ODIN_* variables by pkg/config.
//
// # Exit Codes
//
//	0  Success
//	1  Invalid configuration or command failure
package cli
