// Package web holds the HTML templates of the two UI modes.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}

// Templates parses the embedded templates. Pages are addressed by file name,
// e.g. "analyze.tmpl".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}
