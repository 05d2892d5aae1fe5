// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/tomtom215/marquee/internal/discover"
	"github.com/tomtom215/marquee/internal/logging"
)

//go:embed templates/index.html
var templateFS embed.FS

type pageRenderer struct {
	tmpl *template.Template
}

// newPageRenderer parses the embedded page template. A parse failure is a
// build defect, so it panics.
func newPageRenderer() *pageRenderer {
	tmpl := template.Must(template.New("index.html").
		Funcs(template.FuncMap{
			"rating": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		}).
		ParseFS(templateFS, "templates/index.html"))
	return &pageRenderer{tmpl: tmpl}
}

// render buffers the whole page so a template error never leaves a
// half-written 200 behind.
func (p *pageRenderer) render(w http.ResponseWriter, r *http.Request, page *discover.Page) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, page); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Page render failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w) //nolint:errcheck // client went away
}

// PageRequest holds the query parameters of GET /.
type PageRequest struct {
	Title string `query:"title" validate:"omitempty,movietitle"`
}

// Page renders the recommendation page for ?title=. Every section degrades
// on its own; TMDB failures show up as notices, never as an error status.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	req := PageRequest{Title: r.URL.Query().Get("title")}
	if verr := validateRequest(&req); verr != nil {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}

	page := h.discover.Page(r.Context(), req.Title)
	h.page.render(w, r, page)
}
