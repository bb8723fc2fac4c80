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
	"path/filepath"
	"testing"

	"github.com/odin-ai/odin-monitor/pkg/collector/systemd"
	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/tool/tooltest"
	"github.com/stretchr/testify/assert"
)

type fakeUnits struct {
	state string
	err   error
	unit  string
}

func (f *fakeUnits) UnitState(_ context.Context, unit string) (string, error) {
	f.unit = unit
	return f.state, f.err
}

func TestClient_Diagnose_Healthy(t *testing.T) {
	socket := fakeSocket(t, 0o660)
	runner := tooltest.New().Install("docker", "getent", "groups").
		On("getent group docker", tooltest.Response{Stdout: "docker:x:998:app\n"}).
		On("groups", tooltest.Response{Stdout: "app docker\n"}).
		On("docker ps", tooltest.Response{Stdout: "CONTAINER ID   IMAGE\n"})
	units := &fakeUnits{state: "active (running)"}

	d := NewClient(runner, WithSocketPath(socket), WithUnitStater(units, "")).Diagnose(context.Background())

	assert.True(t, d.SocketExists)
	assert.Equal(t, "660", d.SocketPermissions)
	assert.True(t, d.CommandAvailable)
	assert.True(t, d.GroupExists)
	assert.Equal(t, []string{"app", "docker"}, d.UserGroups)
	assert.True(t, d.PSSuccess)
	assert.Equal(t, "CONTAINER ID   IMAGE", d.PSOutput)
	assert.Empty(t, d.PSError)
	assert.Equal(t, "active (running)", d.ServiceState)
	assert.Equal(t, systemd.DockerUnit, units.unit)
	assert.Empty(t, d.ErrorDetails)
}

func TestClient_Diagnose_NothingAvailable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "docker.sock")
	runner := tooltest.New()

	d := NewClient(runner, WithSocketPath(missing)).Diagnose(context.Background())

	assert.False(t, d.SocketExists)
	assert.Empty(t, d.SocketPermissions)
	assert.False(t, d.CommandAvailable)
	assert.False(t, d.GroupExists)
	assert.Equal(t, []string{}, d.UserGroups)
	assert.False(t, d.PSSuccess)
	assert.NotEmpty(t, d.PSError)
	assert.Equal(t, StatusUnknown, d.ServiceState)
	// getent, groups and docker ps each fail to resolve
	assert.Len(t, d.ErrorDetails, 3)
}

func TestClient_Diagnose_PermissionDenied(t *testing.T) {
	socket := fakeSocket(t, 0o600)
	runner := tooltest.New().Install("docker", "getent", "groups").
		On("getent group docker", tooltest.Response{ExitCode: 2}).
		On("groups", tooltest.Response{Stdout: "app\n"}).
		On("docker ps", tooltest.Response{
			Stderr:   "permission denied while trying to connect to the Docker daemon socket",
			ExitCode: 1,
		})
	units := &fakeUnits{err: errors.New(errors.ErrCodeUnavailable, "no system bus")}

	d := NewClient(runner, WithSocketPath(socket), WithUnitStater(units, "moby.service")).Diagnose(context.Background())

	assert.Equal(t, "600", d.SocketPermissions)
	assert.False(t, d.GroupExists)
	assert.False(t, d.PSSuccess)
	assert.Equal(t, "permission denied while trying to connect to the Docker daemon socket", d.PSError)
	assert.Equal(t, StatusUnknown, d.ServiceState)
	assert.Equal(t, "moby.service", units.unit)
	assert.Empty(t, d.ErrorDetails, "non-zero exits are answers, not errors")
}
