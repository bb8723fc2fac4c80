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
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser splits command output into lines and delimited records.
type Parser struct {
	delimiter      string
	fieldDelimiter string
	minFields      int
	fieldLimit     int
	maxSize        int
	skipComments   bool
	trimFields     bool
}

// WithDelimiter sets the delimiter used to split output into lines.
// Default is newline ("\n").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithFieldDelimiter sets the delimiter used to split a line into fields.
// Default is ",".
func WithFieldDelimiter(delim string) Option {
	return func(p *Parser) {
		p.fieldDelimiter = delim
	}
}

// WithMinFields sets the minimum number of fields a record must carry.
// Lines with fewer fields are dropped. Default is 1.
func WithMinFields(n int) Option {
	return func(p *Parser) {
		p.minFields = n
	}
}

// WithFieldLimit caps the number of fields a line is split into; the last
// field keeps any remaining delimiters. Zero means no limit (default).
func WithFieldLimit(n int) Option {
	return func(p *Parser) {
		p.fieldLimit = n
	}
}

// WithMaxSize sets the maximum size (in bytes) of output to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether lines starting with "#" are skipped.
// Default is false; nvidia-smi and docker never emit comments.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithTrimFields sets whether surrounding whitespace is trimmed from each field.
// Default is true.
func WithTrimFields(trim bool) Option {
	return func(p *Parser) {
		p.trimFields = trim
	}
}

// NewParser creates a new parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:      "\n",
		fieldDelimiter: ",",
		minFields:      1,
		maxSize:        1 << 20, // 1MB default
		trimFields:     true,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lines splits data into non-empty, whitespace-trimmed lines.
// Invalid UTF-8 sequences are replaced rather than rejected, since process
// names reported by drivers are not guaranteed to be valid text.
func (p *Parser) Lines(data []byte) ([]string, error) {
	if len(data) > p.maxSize {
		return nil, fmt.Errorf("output exceeds maximum size of %d bytes", p.maxSize)
	}

	s := string(data)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}

	parts := strings.Split(s, p.delimiter)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}

	return result, nil
}

// Records splits data into lines and each line into fields. Lines with
// fewer than the configured minimum number of fields are dropped.
func (p *Parser) Records(data []byte) ([][]string, error) {
	lines, err := p.Lines(data)
	if err != nil {
		return nil, err
	}

	// Line trimming eats the whitespace of a delimiter that ends a line,
	// which would hide a trailing empty field.
	core := strings.TrimRight(p.fieldDelimiter, " \t")
	padded := core != "" && core != p.fieldDelimiter

	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		if padded && strings.HasSuffix(line, core) {
			line += p.fieldDelimiter[len(core):]
		}

		var fields []string
		if p.fieldLimit > 0 {
			fields = strings.SplitN(line, p.fieldDelimiter, p.fieldLimit)
		} else {
			fields = strings.Split(line, p.fieldDelimiter)
		}

		if len(fields) < p.minFields {
			slog.Debug("dropping short record",
				"line", line,
				"fields", len(fields),
				"required", p.minFields,
			)
			continue
		}

		if p.trimFields {
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
		}
		records = append(records, fields)
	}

	return records, nil
}
