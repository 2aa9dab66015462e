package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

// ModelInfoHandler reports what the server knows about the configured model
// artifact without forcing a load.
func ModelInfoHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		_, err := os.Stat(d.Config.ModelPath)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"model":            filepath.Base(d.Config.ModelPath),
			"artifact_present": err == nil,
			"classes":          len(d.Vocab),
		})
	}
}
