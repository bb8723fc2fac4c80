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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/odin-ai/odin-monitor/pkg/config"
	"github.com/odin-ai/odin-monitor/pkg/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{"valid yaml format", "yaml", serializer.FormatYAML, false},
		{"valid json format", "json", serializer.FormatJSON, false},
		{"valid table format", "table", serializer.FormatTable, false},
		{"invalid format xml", "xml", "", true},
		{"empty format", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.wantFormat, got)
					return nil
				},
			}

			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestNewRootCmd(t *testing.T) {
	root := newRootCmd()

	assert.Equal(t, name, root.Name)
	assert.Equal(t, "serve", root.DefaultCommand)

	names := make([]string, 0, len(root.Commands))
	for _, c := range root.Commands {
		names = append(names, c.Name)
		assert.NotNil(t, c.Action, c.Name)
	}
	assert.ElementsMatch(t, []string{"serve", "snapshot"}, names)
}

func TestCommandLister(t *testing.T) {
	commandLister(context.Background(), nil)

	var buf bytes.Buffer
	root := &cli.Command{
		Name:   "root",
		Writer: &buf,
		Commands: []*cli.Command{
			{Name: "visible1"},
			{Name: "hidden", Hidden: true},
			{Name: "visible2"},
		},
	}
	commandLister(context.Background(), root)

	assert.Equal(t, "visible1\nvisible2\n", buf.String())
}

// runLoadConfig parses args with the global flags and returns loadConfig's result.
func runLoadConfig(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	var (
		cfg     *config.Config
		loadErr error
	)
	cmd := &cli.Command{
		Name:  "odind",
		Flags: globalFlags(),
		Action: func(_ context.Context, c *cli.Command) error {
			cfg, loadErr = loadConfig(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"odind"}, args...)))
	return cfg, loadErr
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := runLoadConfig(t)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 100.0, cfg.Server.RateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7000\n  address: 10.0.0.1\nlogLevel: warn\n"), 0o600))

	cfg, err := runLoadConfig(t, "--config", path, "--port", "9001", "--docker-socket", "/run/docker.sock")
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "10.0.0.1", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/run/docker.sock", cfg.Collector.DockerSocket)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("ODIN_RATE_LIMIT", "5")
	t.Setenv("ODIN_ADDRESS", "127.0.0.1")

	cfg, err := runLoadConfig(t)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Server.RateLimit)
	assert.Equal(t, "127.0.0.1", cfg.Server.Address)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := runLoadConfig(t, "--port", "0")
	require.Error(t, err)

	_, err = runLoadConfig(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
