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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "odind", "v1.2.3", slog.LevelInfo)

	logger.Info("server started", "port", 5000)
	logger.Debug("suppressed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "expected exactly one JSON record")
	assert.Equal(t, "server started", rec["msg"])
	assert.Equal(t, "odind", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.EqualValues(t, 5000, rec["port"])
	assert.NotContains(t, rec, "source")
}

func TestNewLoggerDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "odind", "dev", slog.LevelDebug)

	logger.Debug("tool invoked", "tool", "nvidia-smi")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Contains(t, rec, "source")
}

func TestSetDefaultStructuredLoggerWithLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	SetDefaultStructuredLoggerWithLevel("odind", "dev", "error")
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelError))
}

func TestNewLogLoggerUsesHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "odind", "dev", slog.LevelInfo)

	NewLogLogger(logger, slog.LevelError).Print("http: TLS handshake error from 10.0.0.7:5555: EOF")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), buf.String())
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "odind", rec["module"])
	assert.Contains(t, rec["msg"], "TLS handshake error")
}

func TestNewLogLoggerNilUsesDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(newLogger(&buf, "odind", "dev", slog.LevelInfo))

	NewLogLogger(nil, slog.LevelWarn).Print("accept failed")
	assert.Contains(t, buf.String(), "accept failed")
}
