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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/defaults"
	"github.com/odin-ai/odin-monitor/pkg/serializer"
	"github.com/odin-ai/odin-monitor/pkg/telemetry"
)

// ErrorResponse is returned, with HTTP 200, when an endpoint fails in a way
// its fallbacks do not cover.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTimeout caps the time a single endpoint may spend collecting.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithVersion sets the version shown in page footers.
func WithVersion(version string) Option {
	return func(h *Handler) {
		h.version = version
	}
}

// Handler serves the dashboard pages and JSON endpoints.
type Handler struct {
	collector *telemetry.Collector
	pages     *pages
	logger    *slog.Logger
	timeout   time.Duration
	version   string
}

// NewHandler parses the embedded templates and returns a Handler backed by
// collector.
func NewHandler(collector *telemetry.Collector, opts ...Option) (*Handler, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		collector: collector,
		pages:     p,
		logger:    slog.Default(),
		timeout:   defaults.TelemetryHandlerTimeout,
		version:   "dev",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Routes returns the route table for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /{$}":               h.Dashboard,
		"GET /gpu":               h.GPUMonitor,
		"GET /api/status":        h.Status,
		"GET /api/services":      h.Services,
		"GET /api/gpu":           h.GPUs,
		"GET /api/gpu/detailed":  h.GPUDetails,
		"GET /api/gpu/realtime":  h.GPURealtime,
		"GET /api/gpu/processes": h.GPUProcesses,
		"GET /api/debug/docker":  h.DockerDebug,
		"GET /static/":           staticHandler().ServeHTTP,
	}
}

// respond runs fn under the endpoint timeout and writes its result. Errors
// and panics become {"error": msg} with HTTP 200 so polling clients keep
// rendering.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, endpoint string,
	fn func(ctx context.Context) (any, error)) {

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("endpoint panic", "endpoint", endpoint, "panic", rec)
			serializer.RespondJSON(w, http.StatusOK, ErrorResponse{Error: fmt.Sprint(rec)})
		}
	}()

	v, err := fn(ctx)
	if err != nil {
		h.logger.Error("endpoint failed", "endpoint", endpoint, "error", err)
		serializer.RespondJSON(w, http.StatusOK, ErrorResponse{Error: err.Error()})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, v)
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "status", func(ctx context.Context) (any, error) {
		return h.collector.CollectHostMetrics(ctx)
	})
}

// Services handles GET /api/services.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "services", func(ctx context.Context) (any, error) {
		return h.collector.ListContainers(ctx), nil
	})
}

// GPUs handles GET /api/gpu.
func (h *Handler) GPUs(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "gpu", func(ctx context.Context) (any, error) {
		return h.collector.ListGPUSummaries(ctx), nil
	})
}

// GPUDetails handles GET /api/gpu/detailed.
func (h *Handler) GPUDetails(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "gpu_detailed", func(ctx context.Context) (any, error) {
		return h.collector.GPUDetails(ctx), nil
	})
}

// GPURealtime handles GET /api/gpu/realtime.
func (h *Handler) GPURealtime(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "gpu_realtime", func(ctx context.Context) (any, error) {
		return h.collector.SampleGPUs(ctx), nil
	})
}

// GPUProcesses handles GET /api/gpu/processes.
func (h *Handler) GPUProcesses(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "gpu_processes", func(ctx context.Context) (any, error) {
		return h.collector.ListGPUProcesses(ctx), nil
	})
}

// DockerDebug handles GET /api/debug/docker.
func (h *Handler) DockerDebug(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "debug_docker", func(ctx context.Context) (any, error) {
		return h.collector.DiagnoseDocker(ctx), nil
	})
}
