package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/mux"

	catalogpkg "moviebuddy/services/catalog"
)

var allowedPosterSizes = map[string]bool{
	"w92": true, "w154": true, "w185": true, "w342": true,
	"w500": true, "w780": true, "w1280": true, "original": true,
}

// PosterHandler proxies poster and backdrop art from the image CDN, caching
// each rendition on disk so repeat views never leave the box. Browsers that
// cannot attach auth headers to <img> tags load art through this endpoint.
type PosterHandler struct {
	cacheDir string
	httpc    *http.Client

	mu         sync.Mutex
	inProgress map[string]chan struct{}
}

func NewPosterHandler(cacheDir string) *PosterHandler {
	dir := filepath.Join(cacheDir, "posters")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[posters] warning: could not create cache dir %s: %v", dir, err)
	}
	return &PosterHandler{
		cacheDir:   dir,
		httpc:      &http.Client{Timeout: 30 * time.Second},
		inProgress: make(map[string]chan struct{}),
	}
}

// Serve answers /posters/{size}/{path}, e.g. /posters/w500/abc.jpg.
func (h *PosterHandler) Serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	size, imagePath := vars["size"], vars["path"]
	if !allowedPosterSizes[size] || imagePath == "" {
		http.Error(w, "unknown poster rendition", http.StatusBadRequest)
		return
	}

	sourceURL := catalogpkg.ImageURL("/"+imagePath, size)
	key := posterCacheKey(sourceURL)
	cachePath := filepath.Join(h.cacheDir, key+".img")

	if h.serveCached(w, cachePath, "HIT") {
		return
	}

	// Collapse concurrent fetches of the same rendition into one download.
	h.mu.Lock()
	if ch, exists := h.inProgress[key]; exists {
		h.mu.Unlock()
		<-ch
		if h.serveCached(w, cachePath, "HIT") {
			return
		}
		http.Error(w, "failed to load image", http.StatusBadGateway)
		return
	}
	ch := make(chan struct{})
	h.inProgress[key] = ch
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.inProgress, key)
		close(ch)
		h.mu.Unlock()
	}()

	resp, err := h.httpc.Get(sourceURL)
	if err != nil {
		log.Printf("[posters] fetch %s: %v", sourceURL, err)
		http.Error(w, "failed to fetch image", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		http.Error(w, "image source error", resp.StatusCode)
		return
	}

	tmp := cachePath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		// Cache is best-effort; stream straight through.
		w.Header().Set("Content-Type", resp.Header.Get("Content-Type"))
		w.Header().Set("X-Cache", "MISS-NOCACHE")
		io.Copy(w, resp.Body)
		return
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		http.Error(w, "failed to fetch image", http.StatusBadGateway)
		return
	}
	f.Close()
	if err := os.Rename(tmp, cachePath); err != nil {
		os.Remove(tmp)
	}

	if !h.serveCached(w, cachePath, "MISS") {
		http.Error(w, "failed to read cached image", http.StatusInternalServerError)
	}
}

func (h *PosterHandler) serveCached(w http.ResponseWriter, cachePath, cacheState string) bool {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return false
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=2592000") // 30 days
	w.Header().Set("X-Cache", cacheState)
	w.Write(data)
	return true
}

func posterCacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:16])
}
