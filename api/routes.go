package api

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"moviebuddy/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware tags every request with a short id so log lines for one
// request can be correlated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[api] %s %s %s (%s)", id, r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Microsecond))
	})
}

// handleOptions handles OPTIONS requests for CORS preflight
func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	catalogHandler *handlers.CatalogHandler,
	browseHandler *handlers.BrowseHandler,
	suggestHandler *handlers.SuggestHandler,
	watchlistHandler *handlers.WatchlistHandler,
	posterHandler *handlers.PosterHandler,
) {
	api := r.PathPrefix("/api").Subrouter()

	api.Use(corsMiddleware)
	api.Use(requestIDMiddleware)

	// Shelves and browse
	api.HandleFunc("/trending", catalogHandler.Trending).Methods(http.MethodGet)
	api.HandleFunc("/trending", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/genres", catalogHandler.Genres).Methods(http.MethodGet)
	api.HandleFunc("/genres", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/browse", browseHandler.Browse).Methods(http.MethodGet)
	api.HandleFunc("/browse", handleOptions).Methods(http.MethodOptions)

	// Search and typeahead
	api.HandleFunc("/search/movies", browseHandler.SearchMovies).Methods(http.MethodGet)
	api.HandleFunc("/search/movies", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/search/people", browseHandler.SearchPeople).Methods(http.MethodGet)
	api.HandleFunc("/search/people", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/suggest", suggestHandler.Suggest).Methods(http.MethodGet)
	api.HandleFunc("/suggest", handleOptions).Methods(http.MethodOptions)

	// Movie detail pages
	api.HandleFunc("/movies/{id}", catalogHandler.MovieDetails).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id}", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/movies/{id}/credits", catalogHandler.MovieCredits).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id}/credits", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/movies/{id}/recommendations", catalogHandler.MovieRecommendations).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id}/recommendations", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/movies/{id}/providers", catalogHandler.WatchProviders).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id}/providers", handleOptions).Methods(http.MethodOptions)

	// Person detail pages
	api.HandleFunc("/people/{id}", catalogHandler.PersonDetails).Methods(http.MethodGet)
	api.HandleFunc("/people/{id}", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/people/{id}/credits", catalogHandler.PersonCredits).Methods(http.MethodGet)
	api.HandleFunc("/people/{id}/credits", handleOptions).Methods(http.MethodOptions)

	// Mood presets
	api.HandleFunc("/moods", catalogHandler.Moods).Methods(http.MethodGet)
	api.HandleFunc("/moods", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/moods/{moodID}", catalogHandler.MoodPicks).Methods(http.MethodGet)
	api.HandleFunc("/moods/{moodID}", handleOptions).Methods(http.MethodOptions)

	// Poster art proxy
	api.HandleFunc("/posters/{size}/{path:.+}", posterHandler.Serve).Methods(http.MethodGet)
	api.HandleFunc("/posters/{size}/{path:.+}", handleOptions).Methods(http.MethodOptions)

	// Watchlist
	api.HandleFunc("/watchlist/{kind}", watchlistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/watchlist/{kind}", watchlistHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/watchlist/{kind}", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/watchlist/{kind}/{id}", watchlistHandler.Contains).Methods(http.MethodGet)
	api.HandleFunc("/watchlist/{kind}/{id}", watchlistHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/watchlist/{kind}/{id}", handleOptions).Methods(http.MethodOptions)
}
