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
	"log/slog"

	"github.com/odin-ai/odin-monitor/pkg/api"
	"github.com/odin-ai/odin-monitor/pkg/defaults"
	"github.com/odin-ai/odin-monitor/pkg/serializer"
	"github.com/odin-ai/odin-monitor/pkg/telemetry"
	"github.com/urfave/cli/v3"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Print one host metrics reading",
		Description: `Collect CPU, memory and disk usage plus the GPU summary once and
print it, the same record served on /api/status.

  odind snapshot --format yaml
  odind snapshot -f table -o /tmp/host.txt`,
		Flags: []cli.Flag{
			formatFlag(),
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.SnapshotTimeout)
			defer cancel()

			w := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
			defer func() {
				if cerr := w.Close(); cerr != nil {
					slog.Warn("failed to close output", "error", cerr)
				}
			}()

			return writeSnapshot(ctx, api.NewCollector(cfg, slog.Default()), w)
		},
	}
}

func writeSnapshot(ctx context.Context, c *telemetry.Collector, w *serializer.Writer) error {
	m, err := c.CollectHostMetrics(ctx)
	if err != nil {
		return err
	}
	return w.Serialize(ctx, m)
}
