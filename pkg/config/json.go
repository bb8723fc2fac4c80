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

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// duration decodes a JSON duration written either as a Go duration string
// ("5s") or as integer nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return err
		}
		*d = duration(parsed)
	case float64:
		*d = duration(time.Duration(val))
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
	return nil
}

// decodeStrict decodes b into v, rejecting unknown keys.
func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) UnmarshalJSON(b []byte) error {
	type plain Server
	return decodeStrict(b, &struct {
		*plain
		ShutdownTimeout *duration `json:"shutdownTimeout"`
	}{
		plain:           (*plain)(s),
		ShutdownTimeout: (*duration)(&s.ShutdownTimeout),
	})
}

func (c *Collector) UnmarshalJSON(b []byte) error {
	type plain Collector
	return decodeStrict(b, &struct {
		*plain
		QueryTimeout *duration `json:"queryTimeout"`
		CPUInterval  *duration `json:"cpuInterval"`
	}{
		plain:        (*plain)(c),
		QueryTimeout: (*duration)(&c.QueryTimeout),
		CPUInterval:  (*duration)(&c.CPUInterval),
	})
}
