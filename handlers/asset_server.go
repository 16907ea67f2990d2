package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const assetCacheDuration = 24 * time.Hour

// MediaServer serves stored media files from the local storage tree.
// It is mounted at /media/* and maps the remainder of the URL path to a
// file under the storage root, refusing anything that resolves outside
// it.
func MediaServer(storagePath string) http.HandlerFunc {
	storagePath = filepath.Clean(storagePath)
	log.Printf("Serving media for '/media/*' from directory: %s", storagePath)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, "/media/")

		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid media path", http.StatusBadRequest)
			return
		}

		requestedPath := filepath.Join(storagePath, filepath.FromSlash(relativePath))
		cleanedPath := filepath.Clean(requestedPath)

		if !strings.HasPrefix(cleanedPath, storagePath) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			log.Printf("SECURITY: Attempted media access outside storage directory: Request='%s', Resolved='%s'",
				r.URL.Path, cleanedPath)
			return
		}

		info, err := os.Stat(cleanedPath)
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			log.Printf("Error stating media file %s: %v", cleanedPath, err)
			return
		}
		if info.IsDir() {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(assetCacheDuration.Seconds())))
		w.Header().Set("Expires", time.Now().Add(assetCacheDuration).Format(http.TimeFormat))

		http.ServeFile(w, r, cleanedPath)
	}
}
