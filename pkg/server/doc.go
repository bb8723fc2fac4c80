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

// Package server provides the HTTP server shared by odin-monitor commands.
//
// The server owns transport concerns only. Domain handlers are supplied by
// the caller through WithHandler and are wrapped in a middleware chain:
//
//   - Prometheus RED metrics (odin_http_*)
//   - API version negotiation (X-API-Version)
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery (500 with an ErrorResponse)
//   - Token bucket rate limiting (429 with Retry-After)
//   - Request logging
//
// # Usage
//
//	s := server.New(
//	    server.WithName("odind"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /api/status": h.Status,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # System Endpoints
//
// These bypass the middleware chain and the rate limiter:
//
//	GET /api/health  always 200 {"status":"healthy","timestamp":"..."}
//	GET /ready       200 once serving, 503 before Start and during shutdown
//	GET /metrics     Prometheus exposition
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
// Invalid values are ignored and the defaults kept.
//
// # Errors
//
// Middleware failures are written as:
//
//	{
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "Rate limit exceeded",
//	  "details": {"limit": 100, "burst": 200},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-02T12:00:00Z",
//	  "retryable": true
//	}
//
// WriteErrorFromErr maps a pkg/errors code to the HTTP status.
package server
