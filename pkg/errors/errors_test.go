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

package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")

	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	err := WrapWithContext(ErrCodeToolFailure, "docker ps failed", errors.New("exit status 1"), map[string]any{
		"tool":      "docker",
		"exit_code": 1,
		"stderr":    "Cannot connect to the Docker daemon",
	})

	if err.Code != ErrCodeToolFailure {
		t.Errorf("expected code %s, got %s", ErrCodeToolFailure, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["tool"] != "docker" {
		t.Errorf("expected tool to be docker")
	}
	if err.Context["exit_code"] != 1 {
		t.Errorf("expected exit_code 1, got %v", err.Context["exit_code"])
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeToolUnavailable, "nvidia-smi not found"),
			expected: "[TOOL_UNAVAILABLE] nvidia-smi not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeTimeout, "docker ps timed out", context.DeadlineExceeded),
			expected: "[TIMEOUT] docker ps timed out: context deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"structured", New(ErrCodeTimeout, "slow"), ErrCodeTimeout},
		{"wrapped by fmt", fmt.Errorf("query: %w", New(ErrCodeToolFailure, "exit 1")), ErrCodeToolFailure},
		{"outermost wins", Wrap(ErrCodeTimeout, "outer", New(ErrCodeToolFailure, "inner")), ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeToolUnavailable, "docker not found")

	if !IsCode(err, ErrCodeToolUnavailable) {
		t.Error("expected IsCode to match TOOL_UNAVAILABLE")
	}
	if IsCode(err, ErrCodeTimeout) {
		t.Error("expected IsCode not to match TIMEOUT")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("nil error should never match")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeRateLimitExceeded,
		ErrCodeMethodNotAllowed,
		ErrCodeUnavailable,
		ErrCodeToolUnavailable,
		ErrCodeToolFailure,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
		if seen[code] {
			t.Errorf("duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
