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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/odin-ai/odin-monitor/pkg/config"
	"github.com/odin-ai/odin-monitor/pkg/logging"
	"github.com/odin-ai/odin-monitor/pkg/serializer"
	"github.com/urfave/cli/v3"
)

const (
	name           = "odind"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// globalFlags are defined on the root command and inherited by every
// subcommand, so "odind --port 9000" reaches the default serve command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path to a YAML config file",
			Sources: cli.EnvVars("ODIN_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("ODIN_LOG_LEVEL", logging.LevelEnvVar),
		},
		&cli.StringFlag{
			Name:    "address",
			Usage:   "address to listen on (empty for all interfaces)",
			Sources: cli.EnvVars("ODIN_ADDRESS"),
		},
		&cli.IntFlag{
			Name:    "port",
			Usage:   "port to listen on",
			Value:   8080,
			Sources: cli.EnvVars("ODIN_PORT", "PORT"),
		},
		&cli.StringFlag{
			Name:    "docker-socket",
			Usage:   "path of the docker daemon socket",
			Sources: cli.EnvVars("ODIN_DOCKER_SOCKET", "DOCKER_SOCKET"),
		},
		&cli.FloatFlag{
			Name:    "rate-limit",
			Usage:   "API requests per second",
			Value:   100,
			Sources: cli.EnvVars("ODIN_RATE_LIMIT"),
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   fmt.Sprintf("output format %v", serializer.SupportedFormats()),
		Value:   string(serializer.FormatJSON),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "host, GPU and docker monitoring dashboard",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		DefaultCommand:        "serve",
		Flags:                 globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			snapshotCmd(),
		},
	}
}

// Execute runs the odind command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig layers the config file, ODIN_* environment and explicitly set
// flags, in that order, and validates the result.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("address") {
		cfg.Server.Address = cmd.String("address")
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("rate-limit") {
		cfg.Server.RateLimit = cmd.Float("rate-limit")
	}
	if cmd.IsSet("docker-socket") {
		cfg.Collector.DockerSocket = cmd.String("docker-socket")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %v)", f, serializer.SupportedFormats())
	}
	return f, nil
}

// commandLister prints the visible subcommands for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}
