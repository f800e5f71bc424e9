package web

import (
	"net/http"
	"os"
	"path/filepath"
)

// SPAHandler serves the prebuilt client bundle from dir, falling back to
// index.html for any path that doesn't match a file so client-side routing
// keeps working on hard reloads.
func SPAHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	})
}
