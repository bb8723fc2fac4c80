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

package systemd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/odin-ai/odin-monitor/pkg/errors"
)

// DockerUnit is the unit docker runs as on systemd hosts.
const DockerUnit = "docker.service"

// Collector reads unit state from systemd over D-Bus.
type Collector struct{}

// NewCollector returns a systemd Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// UnitState returns the unit's state as "ActiveState (SubState)",
// for example "active (running)". A unit systemd has no definition for
// reports its LoadState, typically "not-found".
func (c *Collector) UnitState(ctx context.Context, unit string) (string, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnavailable, "failed to connect to systemd", err)
	}
	defer conn.Close()

	props, err := conn.GetUnitPropertiesContext(ctx, unit)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal, "failed to get unit properties", err,
			map[string]any{"unit": unit})
	}

	state := formatState(props)
	slog.Debug("read systemd unit state", "unit", unit, "state", state)
	return state, nil
}

func formatState(props map[string]any) string {
	load, _ := props["LoadState"].(string)
	if load != "" && load != "loaded" {
		return load
	}

	active, _ := props["ActiveState"].(string)
	sub, _ := props["SubState"].(string)
	switch {
	case active == "":
		return "unknown"
	case sub == "":
		return active
	default:
		return fmt.Sprintf("%s (%s)", active, sub)
	}
}
