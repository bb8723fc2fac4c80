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

package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/tool"
)

// Diagnostics explains why docker may be unreachable from this process.
type Diagnostics struct {
	SocketExists      bool     `json:"docker_socket_exists" yaml:"docker_socket_exists"`
	SocketPermissions string   `json:"docker_socket_permissions" yaml:"docker_socket_permissions"`
	CommandAvailable  bool     `json:"docker_command_available" yaml:"docker_command_available"`
	GroupExists       bool     `json:"docker_group_exists" yaml:"docker_group_exists"`
	UserGroups        []string `json:"user_groups" yaml:"user_groups"`
	PSSuccess         bool     `json:"docker_ps_success" yaml:"docker_ps_success"`
	PSOutput          string   `json:"docker_ps_output,omitempty" yaml:"docker_ps_output,omitempty"`
	PSError           string   `json:"docker_ps_error,omitempty" yaml:"docker_ps_error,omitempty"`
	ServiceState      string   `json:"docker_service_state" yaml:"docker_service_state"`
	ErrorDetails      []string `json:"error_details" yaml:"error_details"`
}

// Diagnose runs each access check independently. A failing check is
// recorded in ErrorDetails and does not stop the remaining ones.
func (c *Client) Diagnose(ctx context.Context) *Diagnostics {
	d := &Diagnostics{
		UserGroups:   []string{},
		ErrorDetails: []string{},
		ServiceState: StatusUnknown,
	}

	if fi, err := c.stat(c.socketPath); err == nil {
		d.SocketExists = true
		d.SocketPermissions = fmt.Sprintf("%03o", fi.Mode().Perm())
	}

	_, err := c.runner.LookPath(c.binary)
	d.CommandAvailable = err == nil

	// getent exits 2 when the group is missing
	_, err = c.runner.Run(ctx, c.probeTimeout, "getent", "group", "docker")
	d.GroupExists = err == nil
	d.note(err)

	if res, err := c.runner.Run(ctx, c.probeTimeout, "groups"); err == nil {
		d.UserGroups = strings.Fields(res.Output())
	} else {
		d.note(err)
	}

	res, err := c.runner.Run(ctx, c.queryTimeout, c.binary, "ps")
	switch {
	case err == nil:
		d.PSSuccess = true
		d.PSOutput = res.Output()
	case errors.IsCode(err, errors.ErrCodeToolFailure):
		d.PSError = tool.Stderr(err)
	default:
		d.PSError = err.Error()
		d.ErrorDetails = append(d.ErrorDetails, err.Error())
	}

	if c.units != nil {
		if state, err := c.units.UnitState(ctx, c.unit); err == nil {
			d.ServiceState = state
		}
	}

	return d
}

// note records errors other than a clean non-zero exit, which for the
// probes above is a valid negative answer.
func (d *Diagnostics) note(err error) {
	if err == nil || errors.IsCode(err, errors.ErrCodeToolFailure) {
		return
	}
	d.ErrorDetails = append(d.ErrorDetails, err.Error())
}
