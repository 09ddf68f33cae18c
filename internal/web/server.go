// Package web serves the chat UI.
package web

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"
)

const indexFile = "index.html"

//go:embed public
var embedded embed.FS

// Server serves files from Dir, or from the embedded copy of public/ when Dir
// is empty. Paths that do not name a file get index.html.
type Server struct {
	Dir string
}

func (s *Server) root() (fs.FS, error) {
	if s.Dir != "" {
		return os.DirFS(s.Dir), nil
	}
	return fs.Sub(embedded, "public")
}

// Handler returns the static file handler with single-page-app fallback.
func (s *Server) Handler() http.Handler {
	root, err := s.root()
	if err != nil {
		// fs.Sub only fails on an invalid path; "public" is valid.
		panic(err)
	}
	files := http.FileServer(http.FS(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" || name == indexFile || !isFile(root, name) {
			serveIndex(w, r, root)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func isFile(root fs.FS, name string) bool {
	info, err := fs.Stat(root, name)
	return err == nil && !info.IsDir()
}

func serveIndex(w http.ResponseWriter, r *http.Request, root fs.FS) {
	data, err := fs.ReadFile(root, indexFile)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, indexFile, time.Time{}, bytes.NewReader(data))
}
