// Package views renders the HTML pages. Every page is parsed together with
// layout.html and executed through the "layout" template.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

type Renderer struct {
	pages map[string]*template.Template
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"hasID": func(ids []int, id int) bool {
			for _, v := range ids {
				if v == id {
					return true
				}
			}
			return false
		},
		"date": func(t time.Time) string {
			return t.Format("Mon Jan 2 2006, 3:04 PM")
		},
	}
}

// New parses every page template found next to layout.html.
func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(Funcs()).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Pages() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	return names
}

// HTML renders page with data and writes it with the given status. Nothing is
// written when rendering fails.
func (r *Renderer) HTML(w http.ResponseWriter, status int, page string, data map[string]interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
