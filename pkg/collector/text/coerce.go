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

package text

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// sentinels are placeholder values CLIs print when a metric is missing.
var sentinels = []string{"N/A", "[N/A]", "[Not Supported]", "-"}

// IsSentinel reports whether s is a not-available placeholder.
func IsSentinel(s string) bool {
	return slices.Contains(sentinels, strings.TrimSpace(s))
}

// Int parses s as an integer, mapping sentinel values to 0.
func Int(s string) (int, error) {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// Float parses s as a float, mapping sentinel values to 0. NaN and
// infinities are rejected since they cannot be encoded as JSON.
func Float(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

// Percent returns used/total*100, or 0 when total is not positive.
func Percent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return used / total * 100
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
