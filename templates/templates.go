// Package templates holds the HTML pages, embedded into the binary.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// Load parses every page. Names are the file names, e.g. "index.tmpl"
func Load() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.tmpl"))
}
