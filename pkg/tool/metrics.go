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

package tool

import (
	"strings"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "odin_tool_invocations_total",
			Help: "Total number of external tool invocations",
		},
		[]string{"tool", "result"}, // result: success, timeout, tool_failure, tool_unavailable, internal
	)

	toolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "odin_tool_duration_seconds",
			Help:    "External tool invocation latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"tool"},
	)
)

func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	return strings.ToLower(string(errors.CodeOf(err)))
}

func observe(name string, err error, elapsed time.Duration) {
	tool := toolLabel(name)
	toolInvocationsTotal.WithLabelValues(tool, resultLabel(err)).Inc()
	toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
