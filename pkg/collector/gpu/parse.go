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

package gpu

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/odin-ai/odin-monitor/pkg/collector/text"
)

// fieldDelimiter separates values in nvidia-smi csv output.
const fieldDelimiter = ", "

// unknownProcessType is reported when nvidia-smi leaves the type blank.
const unknownProcessType = "Unknown"

var (
	deviceFields  = []string{"index", "name", "memory.total", "memory.used", "memory.free", "temperature.gpu", "utilization.gpu", "power.draw", "power.limit", "clocks.current.graphics", "clocks.current.memory"}
	summaryFields = []string{"name", "memory.total", "memory.used", "temperature.gpu", "utilization.gpu"}
	sampleFields  = []string{"index", "utilization.gpu", "memory.used", "memory.total", "temperature.gpu", "power.draw"}
	infoFields    = []string{"name", "memory.total", "memory.used"}

	computeAppFields = []string{"gpu_uuid", "pid", "process_name", "used_memory"}
	processFields    = []string{"gpu_uuid", "pid", "process_name", "used_memory", "process_type"}
)

func records(out []byte, minFields int) ([][]string, error) {
	p := text.NewParser(
		text.WithFieldDelimiter(fieldDelimiter),
		text.WithMinFields(minFields),
	)
	return p.Records(out)
}

// ints coerces each field to an int, stopping at the first failure.
func ints(fields ...string) ([]int, error) {
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := text.Int(f)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func memoryPercent(used, total int) float64 {
	return text.Round(text.Percent(float64(used), float64(total)), 1)
}

// ParseDevices parses --query-gpu output for the device field set.
// Lines that are short or carry unparseable numbers are dropped.
func ParseDevices(out []byte) ([]Device, error) {
	recs, err := records(out, len(deviceFields))
	if err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(recs))
	for _, r := range recs {
		n, err := ints(r[0], r[2], r[3], r[4], r[5], r[6], r[9], r[10])
		if err != nil {
			slog.Debug("dropping gpu device line", "error", err, "fields", r)
			continue
		}
		draw, err := text.Float(r[7])
		if err != nil {
			slog.Debug("dropping gpu device line", "error", err, "fields", r)
			continue
		}
		limit, err := text.Float(r[8])
		if err != nil {
			slog.Debug("dropping gpu device line", "error", err, "fields", r)
			continue
		}

		devices = append(devices, Device{
			Index:         n[0],
			Name:          r[1],
			MemoryTotal:   n[1],
			MemoryUsed:    n[2],
			MemoryFree:    n[3],
			MemoryPercent: memoryPercent(n[2], n[1]),
			Temperature:   n[4],
			Utilization:   n[5],
			PowerDraw:     draw,
			PowerLimit:    limit,
			ClockGraphics: n[6],
			ClockMemory:   n[7],
		})
	}
	return devices, nil
}

// ParseSummaries parses --query-gpu output for the summary field set.
func ParseSummaries(out []byte) ([]Summary, error) {
	recs, err := records(out, len(summaryFields))
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(recs))
	for _, r := range recs {
		summaries = append(summaries, Summary{
			Name:        r[0],
			MemoryTotal: r[1],
			MemoryUsed:  r[2],
			Temperature: r[3],
			Utilization: r[4],
		})
	}
	return summaries, nil
}

// ParseSamples parses --query-gpu output for the sample field set, stamping
// every sample with now.
func ParseSamples(out []byte, now time.Time) ([]Sample, error) {
	recs, err := records(out, len(sampleFields))
	if err != nil {
		return nil, err
	}

	ts := float64(now.Unix()) + float64(now.Nanosecond())/float64(time.Second)
	samples := make([]Sample, 0, len(recs))
	for _, r := range recs {
		n, err := ints(r[0], r[1], r[2], r[3], r[4])
		if err != nil {
			slog.Debug("dropping gpu sample line", "error", err, "fields", r)
			continue
		}
		draw, err := text.Float(r[5])
		if err != nil {
			slog.Debug("dropping gpu sample line", "error", err, "fields", r)
			continue
		}

		samples = append(samples, Sample{
			Index:         n[0],
			Utilization:   n[1],
			MemoryUsed:    n[2],
			MemoryTotal:   n[3],
			MemoryPercent: memoryPercent(n[2], n[3]),
			Temperature:   n[4],
			PowerDraw:     draw,
			Timestamp:     ts,
		})
	}
	return samples, nil
}

// ParseProcesses parses --query-compute-apps output. When withType is set
// the process_type column is required.
func ParseProcesses(out []byte, withType bool) ([]Process, error) {
	minFields := len(computeAppFields)
	if withType {
		minFields = len(processFields)
	}
	recs, err := records(out, minFields)
	if err != nil {
		return nil, err
	}

	procs := make([]Process, 0, len(recs))
	for _, r := range recs {
		mem, err := text.Int(r[3])
		if err != nil {
			slog.Debug("dropping gpu process line", "error", err, "fields", r)
			continue
		}

		p := Process{
			GPUUUID:     r[0],
			PID:         r[1],
			ProcessName: r[2],
			MemoryUsed:  mem,
		}
		if withType {
			p.ProcessType = r[4]
			if p.ProcessType == "" {
				p.ProcessType = unknownProcessType
			}
		}
		procs = append(procs, p)
	}
	return procs, nil
}
