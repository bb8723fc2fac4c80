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

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/collector/docker"
	"github.com/odin-ai/odin-monitor/pkg/collector/host"
	"github.com/odin-ai/odin-monitor/pkg/collector/systemd"
	"github.com/odin-ai/odin-monitor/pkg/defaults"
	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/serializer"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvNvidiaSMI    = "ODIN_NVIDIA_SMI"
	EnvDocker       = "ODIN_DOCKER"
	EnvDockerUnit   = "ODIN_DOCKER_UNIT"
	EnvDiskPath     = "ODIN_DISK_PATH"
	EnvQueryTimeout = "ODIN_QUERY_TIMEOUT"
	EnvCPUInterval  = "ODIN_CPU_INTERVAL"
	EnvSystemd      = "ODIN_SYSTEMD"
)

// Config is the monitor configuration.
type Config struct {
	Server    Server    `json:"server" yaml:"server"`
	LogLevel  string    `json:"logLevel" yaml:"logLevel"`
	Collector Collector `json:"collector" yaml:"collector"`
}

// Server configures the HTTP listener.
type Server struct {
	Address         string        `json:"address" yaml:"address"`
	Port            int           `json:"port" yaml:"port"`
	RateLimit       float64       `json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst  int           `json:"rateLimitBurst" yaml:"rateLimitBurst"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

// Collector configures the external tools telemetry is read from.
type Collector struct {
	NvidiaSMI    string        `json:"nvidiaSmi" yaml:"nvidiaSmi"`
	Docker       string        `json:"docker" yaml:"docker"`
	DockerSocket string        `json:"dockerSocket" yaml:"dockerSocket"`
	DockerUnit   string        `json:"dockerUnit" yaml:"dockerUnit"`
	Systemd      bool          `json:"systemd" yaml:"systemd"`
	DiskPath     string        `json:"diskPath" yaml:"diskPath"`
	QueryTimeout time.Duration `json:"queryTimeout" yaml:"queryTimeout"`
	CPUInterval  time.Duration `json:"cpuInterval" yaml:"cpuInterval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:            8080,
			RateLimit:       100,
			RateLimitBurst:  200,
			ShutdownTimeout: defaults.ServerShutdownTimeout,
		},
		LogLevel: "info",
		Collector: Collector{
			NvidiaSMI:    "nvidia-smi",
			Docker:       "docker",
			DockerSocket: docker.DefaultSocketPath,
			DockerUnit:   systemd.DockerUnit,
			Systemd:      true,
			DiskPath:     host.DefaultDiskPath,
			QueryTimeout: defaults.ToolQueryTimeout,
			CPUInterval:  defaults.CPUSampleInterval,
		},
	}
}

// Load returns the default configuration overlaid with the file at path,
// when path is not empty, and then with environment overrides. Files ending
// in .json are read as JSON, everything else as YAML. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		r, err := serializer.NewFileReaderAuto(path, serializer.WithStrictFields())
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to read config file", err,
				map[string]any{"path": path})
		}
		defer func() {
			if cerr := r.Close(); cerr != nil {
				slog.Warn("failed to close config file", "path", path, "error", cerr)
			}
		}()

		if err := r.Deserialize(cfg); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse config file", err,
				map[string]any{"path": path})
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides collector settings from ODIN_* environment variables.
// Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	c.Collector.NvidiaSMI = envOrDefault(EnvNvidiaSMI, c.Collector.NvidiaSMI)
	c.Collector.Docker = envOrDefault(EnvDocker, c.Collector.Docker)
	c.Collector.DockerUnit = envOrDefault(EnvDockerUnit, c.Collector.DockerUnit)
	c.Collector.DiskPath = envOrDefault(EnvDiskPath, c.Collector.DiskPath)
	c.Collector.QueryTimeout = parseDuration(EnvQueryTimeout, c.Collector.QueryTimeout)
	c.Collector.CPUInterval = parseDuration(EnvCPUInterval, c.Collector.CPUInterval)
	c.Collector.Systemd = parseBool(EnvSystemd, c.Collector.Systemd)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port < 1 || c.Server.Port > 65535:
		return invalid("server.port", c.Server.Port)
	case c.Server.RateLimit <= 0:
		return invalid("server.rateLimit", c.Server.RateLimit)
	case c.Server.RateLimitBurst < 1:
		return invalid("server.rateLimitBurst", c.Server.RateLimitBurst)
	case c.Server.ShutdownTimeout <= 0:
		return invalid("server.shutdownTimeout", c.Server.ShutdownTimeout)
	case c.Collector.NvidiaSMI == "":
		return invalid("collector.nvidiaSmi", c.Collector.NvidiaSMI)
	case c.Collector.Docker == "":
		return invalid("collector.docker", c.Collector.Docker)
	case !filepath.IsAbs(c.Collector.DockerSocket):
		return invalid("collector.dockerSocket", c.Collector.DockerSocket)
	case !filepath.IsAbs(c.Collector.DiskPath):
		return invalid("collector.diskPath", c.Collector.DiskPath)
	case c.Collector.QueryTimeout <= 0:
		return invalid("collector.queryTimeout", c.Collector.QueryTimeout)
	case c.Collector.CPUInterval <= 0:
		return invalid("collector.cpuInterval", c.Collector.CPUInterval)
	}
	return nil
}

func invalid(field string, value any) error {
	return errors.NewWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid %s: %v", field, value),
		map[string]any{"field": field})
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func parseDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(v)
	if err == nil {
		return d
	}

	// Fallback: treat as integer seconds
	secs, err := strconv.Atoi(v)
	if err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultVal
}

func parseBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
