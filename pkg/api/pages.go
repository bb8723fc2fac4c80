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

package api

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/dustin/go-humanize"
	"github.com/odin-ai/odin-monitor/pkg/errors"
	"github.com/odin-ai/odin-monitor/pkg/serializer"
	"github.com/odin-ai/odin-monitor/pkg/server"
	"github.com/odin-ai/odin-monitor/pkg/telemetry"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	dashboardTemplate = "dashboard.html"
	gpuTemplate       = "gpu.html"
)

type pages struct {
	tmpl *template.Template
}

// dashboardPage is the data rendered into dashboard.html.
type dashboardPage struct {
	Version string
	Metrics *telemetry.HostMetrics
	Error   string
}

// gpuPage is the data rendered into gpu.html.
type gpuPage struct {
	Version string
}

// funcMap is sprig's HTML function map minus environment access, plus
// formatting helpers used by the page templates.
func funcMap() template.FuncMap {
	f := sprig.HtmlFuncMap()
	delete(f, "env")
	delete(f, "expandenv")

	titleCaser := cases.Title(language.English)
	extra := template.FuncMap{
		"bytes":   humanize.IBytes,
		"title":   titleCaser.String,
		"percent": formatPercent,
		"ago": func(ts string) string {
			t, err := time.Parse(time.RFC3339Nano, ts)
			if err != nil {
				return ts
			}
			return humanize.Time(t)
		},
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func loadPages() (*pages, error) {
	tmpl, err := template.New("pages").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to parse page templates", err)
	}
	return &pages{tmpl: tmpl}, nil
}

func (p *pages) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to render page", err,
			map[string]any{"template": name})
	}
	return buf.Bytes(), nil
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	body, err := h.pages.render(name, data)
	if err != nil {
		h.logger.Error("page render failed", "template", name, "error", err)
		server.WriteErrorFromErr(w, r, err, "failed to render page", nil)
		return
	}
	serializer.RespondHTML(w, http.StatusOK, body)
}

// Dashboard handles GET /. A failed host reading renders the page with an
// explanation instead of metrics.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	data := dashboardPage{Version: h.version}
	metrics, err := h.collector.CollectHostMetrics(ctx)
	if err != nil {
		h.logger.Error("dashboard metrics unavailable", "error", err)
		data.Error = err.Error()
	} else {
		data.Metrics = metrics
	}

	h.renderPage(w, r, dashboardTemplate, data)
}

// GPUMonitor handles GET /gpu. The page polls the /api/gpu endpoints itself.
func (h *Handler) GPUMonitor(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, gpuTemplate, gpuPage{Version: h.version})
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embedded path is fixed at compile time
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
