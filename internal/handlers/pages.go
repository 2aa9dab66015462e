package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

// PageHandler serves /path as <staticDir>/path.html if the file exists;
// "/" maps to index. Unknown paths 404.
func PageHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" {
			path = "/index"
		}

		filePath := filepath.Join(staticDir, path+".html")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}
