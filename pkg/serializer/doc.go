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

// Package serializer writes values as JSON, YAML or a flattened table.
//
// HTTP handlers use RespondJSON, which encodes into a buffer first so an
// encoding failure never leaves a half-written 200 response:
//
//	serializer.RespondJSON(w, http.StatusOK, metrics)
//
// Commands use Writer:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, metrics); err != nil {
//	    return err
//	}
//
// Reader decodes JSON or YAML, choosing the format from the file extension
// with NewFileReaderAuto:
//
//	r, err := serializer.NewFileReaderAuto(path, serializer.WithStrictFields())
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	err = r.Deserialize(cfg)
//
// Table output flattens nested values into dotted keys named after their
// json tags, e.g. "gpu_info.name" or "containers.[0].status".
package serializer
