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

package host

import (
	"context"
	"errors"
	"testing"
	"time"

	cnserrors "github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	cpu      float64
	count    int
	mem      Usage
	disk     Usage
	diskErr  error
	interval time.Duration
	path     string
}

func (f *fakeSource) CPUPercent(_ context.Context, interval time.Duration) (float64, error) {
	f.interval = interval
	return f.cpu, nil
}

func (f *fakeSource) CPUCount(context.Context) (int, error) { return f.count, nil }

func (f *fakeSource) Memory(context.Context) (Usage, error) { return f.mem, nil }

func (f *fakeSource) Disk(_ context.Context, path string) (Usage, error) {
	f.path = path
	return f.disk, f.diskErr
}

func TestUsagePercent(t *testing.T) {
	assert.Equal(t, 25.0, Usage{Total: 400, Used: 100}.Percent())
	assert.Equal(t, 0.0, Usage{Total: 0, Used: 100}.Percent())
}

func TestCollector_Collect(t *testing.T) {
	src := &fakeSource{
		cpu:   37.5,
		count: 8,
		mem:   Usage{Total: 16 << 30, Used: 4 << 30},
		disk:  Usage{Total: 100, Used: 50},
	}
	c := NewCollector(WithSource(src), WithDiskPath("/data"), WithCPUInterval(10*time.Millisecond))

	stats, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 37.5, stats.CPUPercent)
	assert.Equal(t, 8, stats.CPUCount)
	assert.Equal(t, 25.0, stats.Memory.Percent())
	assert.Equal(t, 50.0, stats.Disk.Percent())
	assert.Equal(t, "/data", src.path)
	assert.Equal(t, 10*time.Millisecond, src.interval)
}

func TestCollector_Defaults(t *testing.T) {
	c := NewCollector(WithSource(nil), WithDiskPath(""), WithCPUInterval(0))
	assert.Equal(t, DefaultDiskPath, c.DiskPath())
	assert.Equal(t, time.Second, c.cpuInterval)
	assert.IsType(t, PSUtilSource{}, c.source)
}

func TestCollector_DiskError(t *testing.T) {
	src := &fakeSource{diskErr: errors.New("no such file or directory")}
	c := NewCollector(WithSource(src), WithDiskPath("/missing"))

	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInternal))
	assert.Contains(t, err.Error(), "disk usage")
}

func TestPSUtilSource(t *testing.T) {
	if testing.Short() {
		t.Skip("reads live host counters")
	}
	src := PSUtilSource{}
	ctx := context.Background()

	count, err := src.CPUCount(ctx)
	require.NoError(t, err)
	assert.Positive(t, count)

	m, err := src.Memory(ctx)
	require.NoError(t, err)
	assert.Positive(t, m.Total)

	d, err := src.Disk(ctx, "/")
	require.NoError(t, err)
	assert.Positive(t, d.Total)
}
