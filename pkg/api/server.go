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

package api

import (
	"context"
	"log/slog"

	"github.com/odin-ai/odin-monitor/pkg/collector/systemd"
	"github.com/odin-ai/odin-monitor/pkg/config"
	"github.com/odin-ai/odin-monitor/pkg/logging"
	"github.com/odin-ai/odin-monitor/pkg/server"
	"github.com/odin-ai/odin-monitor/pkg/telemetry"
	"github.com/odin-ai/odin-monitor/pkg/tool"
	"golang.org/x/time/rate"
)

const name = "odind"

// NewCollector builds the telemetry collector described by cfg, running
// external tools through the process's PATH.
func NewCollector(cfg *config.Config, logger *slog.Logger) *telemetry.Collector {
	opts := []telemetry.Option{
		telemetry.WithLogger(logger),
		telemetry.WithGPUBinary(cfg.Collector.NvidiaSMI),
		telemetry.WithDockerBinary(cfg.Collector.Docker),
		telemetry.WithDockerSocket(cfg.Collector.DockerSocket),
		telemetry.WithDiskPath(cfg.Collector.DiskPath),
		telemetry.WithQueryTimeout(cfg.Collector.QueryTimeout),
		telemetry.WithCPUInterval(cfg.Collector.CPUInterval),
	}
	if cfg.Collector.Systemd {
		opts = append(opts, telemetry.WithUnitStater(systemd.NewCollector(), cfg.Collector.DockerUnit))
	}
	return telemetry.New(tool.NewExecRunner(logger), opts...)
}

// Serve starts the monitor and blocks until ctx is canceled or the process
// receives SIGINT/SIGTERM.
func Serve(ctx context.Context, cfg *config.Config, version string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewStructuredLogger(name, version, cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("starting",
		"name", name,
		"version", version,
		"nvidiaSmi", cfg.Collector.NvidiaSMI,
		"dockerSocket", cfg.Collector.DockerSocket,
		"systemd", cfg.Collector.Systemd,
	)

	h, err := NewHandler(NewCollector(cfg, logger),
		WithLogger(logger),
		WithVersion(version),
	)
	if err != nil {
		return err
	}

	s := server.New(
		server.WithConfig(serverConfig(cfg)),
		server.WithName(name),
		server.WithVersion(version),
		server.WithLogger(logger),
		server.WithHandler(h.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		logger.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func serverConfig(cfg *config.Config) *server.Config {
	sc := server.NewConfig()
	sc.Address = cfg.Server.Address
	sc.Port = cfg.Server.Port
	sc.RateLimit = rate.Limit(cfg.Server.RateLimit)
	sc.RateLimitBurst = cfg.Server.RateLimitBurst
	sc.ShutdownTimeout = cfg.Server.ShutdownTimeout
	return sc
}
