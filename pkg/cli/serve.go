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

	"github.com/odin-ai/odin-monitor/pkg/api"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the dashboard and JSON API",
		Description: `Start the HTTP server. Pages:

  /      system dashboard
  /gpu   GPU monitor

JSON endpoints live under /api. Prometheus metrics are served on /metrics.

Settings come from, in increasing precedence: built-in defaults, the
--config file, ODIN_* environment variables and command line flags.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return api.Serve(ctx, cfg, version)
		},
	}
}
