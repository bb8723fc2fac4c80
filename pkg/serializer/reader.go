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

package serializer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatFromPath picks the format from the file extension: .json is JSON,
// .yaml and .yml are YAML. Anything else is read as YAML, the format odind
// documents for its config file.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		slog.Debug("unknown file extension, reading as yaml", "path", path)
		return FormatYAML
	}
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithStrictFields rejects keys that do not map to a field of the target.
func WithStrictFields() ReaderOption {
	return func(r *Reader) {
		r.strict = true
	}
}

// Reader decodes JSON or YAML from an io.Reader. Table output cannot be
// read back.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
	strict bool
}

// NewReader returns a Reader decoding format from input. When input is an
// io.Closer, Close closes it.
func NewReader(format Format, input io.Reader, opts ...ReaderOption) (*Reader, error) {
	switch {
	case format.IsUnknown():
		return nil, fmt.Errorf("unknown format: %q", format)
	case format == FormatTable:
		return nil, fmt.Errorf("table format does not support deserialization")
	case input == nil:
		return nil, fmt.Errorf("input source is nil")
	}

	r := &Reader{format: format, input: input}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewFileReader opens path for decoding as format.
func NewFileReader(format Format, path string, opts ...ReaderOption) (*Reader, error) {
	if format.IsUnknown() || format == FormatTable {
		return nil, fmt.Errorf("format %q does not support deserialization", format)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return NewReader(format, f, opts...)
}

// NewFileReaderAuto is NewFileReader with the format taken from the extension.
func NewFileReaderAuto(path string, opts ...ReaderOption) (*Reader, error) {
	return NewFileReader(FormatFromPath(path), path, opts...)
}

// Format returns the format the reader decodes.
func (r *Reader) Format() Format {
	return r.format
}

// Deserialize decodes the first document into v. Fields of v that are not
// present in the input keep their values, and empty input leaves v as is.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}

	var err error
	switch r.format {
	case FormatJSON:
		dec := json.NewDecoder(r.input)
		if r.strict {
			dec.DisallowUnknownFields()
		}
		err = dec.Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(r.input)
		dec.KnownFields(r.strict)
		err = dec.Decode(v)
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s: %w", r.format, err)
	}
	return nil
}

// Close closes the underlying input when it is closeable. It is safe to
// call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}
