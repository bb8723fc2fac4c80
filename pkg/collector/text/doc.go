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

// Package text parses line-oriented output of command-line tools.
//
// A Parser splits output into non-empty lines and, for delimited formats
// such as nvidia-smi CSV or docker --format templates, into field records:
//
//	p := text.NewParser(
//	    text.WithFieldDelimiter(", "),
//	    text.WithMinFields(11),
//	)
//	records, err := p.Records(out)
//
// Records with too few fields are dropped and logged at debug level.
//
// Int and Float coerce numeric fields, treating the placeholders tools
// print for missing values ("N/A", "[N/A]", "[Not Supported]", "-") as 0.
package text
