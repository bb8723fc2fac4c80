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
	"reflect"
	"strings"
	"testing"
)

func TestNewParser(t *testing.T) {
	tests := []struct {
		name           string
		opts           []Option
		wantDelimiter  string
		wantFieldDelim string
		wantMinFields  int
		wantFieldLimit int
		wantMaxSize    int
		wantTrim       bool
	}{
		{
			name:           "default options",
			wantDelimiter:  "\n",
			wantFieldDelim: ",",
			wantMinFields:  1,
			wantMaxSize:    1 << 20,
			wantTrim:       true,
		},
		{
			name: "nvidia-smi csv",
			opts: []Option{
				WithFieldDelimiter(", "),
				WithMinFields(11),
			},
			wantDelimiter:  "\n",
			wantFieldDelim: ", ",
			wantMinFields:  11,
			wantMaxSize:    1 << 20,
			wantTrim:       true,
		},
		{
			name: "all options",
			opts: []Option{
				WithDelimiter(";"),
				WithFieldDelimiter("|"),
				WithMinFields(3),
				WithFieldLimit(3),
				WithMaxSize(64),
				WithTrimFields(false),
			},
			wantDelimiter:  ";",
			wantFieldDelim: "|",
			wantMinFields:  3,
			wantFieldLimit: 3,
			wantMaxSize:    64,
			wantTrim:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(tt.opts...)
			if p.delimiter != tt.wantDelimiter {
				t.Errorf("delimiter = %q, want %q", p.delimiter, tt.wantDelimiter)
			}
			if p.fieldDelimiter != tt.wantFieldDelim {
				t.Errorf("fieldDelimiter = %q, want %q", p.fieldDelimiter, tt.wantFieldDelim)
			}
			if p.minFields != tt.wantMinFields {
				t.Errorf("minFields = %d, want %d", p.minFields, tt.wantMinFields)
			}
			if p.fieldLimit != tt.wantFieldLimit {
				t.Errorf("fieldLimit = %d, want %d", p.fieldLimit, tt.wantFieldLimit)
			}
			if p.maxSize != tt.wantMaxSize {
				t.Errorf("maxSize = %d, want %d", p.maxSize, tt.wantMaxSize)
			}
			if p.trimFields != tt.wantTrim {
				t.Errorf("trimFields = %v, want %v", p.trimFields, tt.wantTrim)
			}
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		in   string
		want []string
	}{
		{
			name: "skips blank lines",
			in:   "a\n\n  \nb\n",
			want: []string{"a", "b"},
		},
		{
			name: "trims whitespace",
			in:   "  Tesla T4, 16384  \r\n",
			want: []string{"Tesla T4, 16384"},
		},
		{
			name: "comments kept by default",
			in:   "# header\nvalue",
			want: []string{"# header", "value"},
		},
		{
			name: "comments skipped",
			opts: []Option{WithSkipComments(true)},
			in:   "# header\nvalue",
			want: []string{"value"},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.opts...).Lines([]byte(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinesMaxSize(t *testing.T) {
	p := NewParser(WithMaxSize(8))
	if _, err := p.Lines([]byte(strings.Repeat("x", 9))); err == nil {
		t.Error("expected error for oversized output")
	}
}

func TestLinesInvalidUTF8(t *testing.T) {
	got, err := NewParser().Lines([]byte("ok\nbad\xffname\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[1] != "bad�name" {
		t.Errorf("expected replacement character, got %q", got[1])
	}
}

func TestRecords(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		in   string
		want [][]string
	}{
		{
			name: "drops short lines",
			opts: []Option{WithFieldDelimiter(", "), WithMinFields(3)},
			in:   "a, b, c\nshort, line\nd, e, f",
			want: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name: "field limit keeps commas in last field",
			opts: []Option{WithFieldLimit(3), WithMinFields(3)},
			in:   "web,Up 2 hours,0.0.0.0:80->80/tcp, :::80->80/tcp",
			want: [][]string{{"web", "Up 2 hours", "0.0.0.0:80->80/tcp, :::80->80/tcp"}},
		},
		{
			name: "empty trailing field still counts",
			opts: []Option{WithFieldLimit(3), WithMinFields(3)},
			in:   "db,Exited (0) 3 days ago,",
			want: [][]string{{"db", "Exited (0) 3 days ago", ""}},
		},
		{
			name: "trailing empty field survives line trimming",
			opts: []Option{WithFieldDelimiter(", "), WithMinFields(3)},
			in:   "GPU-1, N/A, \n",
			want: [][]string{{"GPU-1", "N/A", ""}},
		},
		{
			name: "fields trimmed",
			in:   " a , b ",
			want: [][]string{{"a", "b"}},
		},
		{
			name: "fields untrimmed",
			opts: []Option{WithTrimFields(false)},
			in:   " a , b ",
			want: [][]string{{"a ", " b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.opts...).Records([]byte(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Records() = %q, want %q", got, tt.want)
			}
		})
	}
}
