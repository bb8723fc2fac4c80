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
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	odinerrors "github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/serializer"
)

// ErrorResponse is the JSON body written for middleware-level failures.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code odinerrors.ErrorCode) int {
	switch code {
	case odinerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case odinerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case odinerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case odinerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case odinerrors.ErrCodeUnavailable, odinerrors.ErrCodeToolUnavailable:
		return http.StatusServiceUnavailable
	case odinerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case odinerrors.ErrCodeToolFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code odinerrors.ErrorCode) bool {
	switch code {
	case odinerrors.ErrCodeTimeout,
		odinerrors.ErrCodeUnavailable,
		odinerrors.ErrCodeRateLimitExceeded,
		odinerrors.ErrCodeToolFailure,
		odinerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code odinerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr derives status, code and details from err. Unstructured
// errors become INTERNAL with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]any) {

	var se *odinerrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), details)
		return
	}

	details := extraDetails
	if err != nil {
		details = mergeDetails(details, map[string]any{"error": err.Error()})
	}
	WriteError(w, r, http.StatusInternalServerError, odinerrors.ErrCodeInternal,
		fallbackMessage, true, details)
}
