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
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// LevelEnvVar names the environment variable consulted for the default level.
const LevelEnvVar = "LOG_LEVEL"

// ParseLogLevel converts a case-insensitive level name into a slog.Level.
// Unknown or empty names yield slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON logger writing to stderr, tagged with
// the module name and version.
func NewStructuredLogger(name, version, level string) *slog.Logger {
	return newLogger(os.Stderr, name, version, ParseLogLevel(level))
}

func newLogger(w io.Writer, name, version string, lvl slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(h).With(
		slog.String("module", name),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLoggerWithLevel installs a structured logger as the
// slog default with an explicit level.
func SetDefaultStructuredLoggerWithLevel(name, version, level string) {
	slog.SetDefault(NewStructuredLogger(name, version, level))
}

// NewLogLogger adapts logger, or the slog default when nil, to a standard
// library *log.Logger for APIs such as http.Server.ErrorLog.
func NewLogLogger(logger *slog.Logger, level slog.Level) *log.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return slog.NewLogLogger(logger.Handler(), level)
}
