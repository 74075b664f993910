// Package web embeds the single-page form.
package web

import (
	"embed"
	"html/template"
)

//go:embed index.html
var files embed.FS

var Index = template.Must(template.ParseFS(files, "index.html"))
