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

package server

import (
	"net/http"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/serializer"
)

// Reasons reported by the readiness endpoint while not serving.
const (
	ReasonNotStarted   = "listener not started"
	ReasonShuttingDown = "draining connections"
	ReasonListenFailed = "listener failed"
)

// HealthResponse is the body of the health and readiness endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason,omitempty"`
}

// handleHealth reports liveness only; it never touches the collectors.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   s.config.Version,
		Timestamp: time.Now(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := HealthResponse{Status: "ready", Version: s.config.Version, Timestamp: time.Now()}
	status := http.StatusOK
	if ready, reason := s.readiness(); !ready {
		resp.Status = "not_ready"
		resp.Reason = reason
		status = http.StatusServiceUnavailable
	}
	serializer.RespondJSON(w, status, resp)
}
