// Package web holds the landing page and its static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed views public
var files embed.FS

// IndexHTML returns the landing page.
func IndexHTML() ([]byte, error) {
	return files.ReadFile("views/index.html")
}

// Public serves the files under public/.
func Public() http.FileSystem {
	sub, err := fs.Sub(files, "public")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
