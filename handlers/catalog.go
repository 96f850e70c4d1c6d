package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"moviebuddy/models"
	catalogpkg "moviebuddy/services/catalog"
)

type catalogService interface {
	Trending(context.Context) models.MoviePage
	GenreList(context.Context) []models.Genre
	MovieDetails(context.Context, int64) (*models.MovieDetails, error)
	MovieCredits(context.Context, int64) (*models.Credits, error)
	MovieRecommendations(context.Context, int64) models.MoviePage
	WatchProviders(context.Context, int64) (*models.WatchProviders, error)
	PersonDetails(context.Context, int64) (*models.PersonDetails, error)
	PersonMovieCredits(context.Context, int64) models.MoviePage
	Moods() []catalogpkg.Mood
	MoodPicks(context.Context, string) (models.MoviePage, error)
}

var _ catalogService = (*catalogpkg.Service)(nil)

type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(s catalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// pathID extracts the numeric {id} route variable, writing a 400 and
// returning false when it is missing or not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	page := h.Service.Trending(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres := h.Service.GenreList(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.Genre{"genres": genres})
}

func (h *CatalogHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	details, err := h.Service.MovieDetails(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

func (h *CatalogHandler) MovieCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	credits, err := h.Service.MovieCredits(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(credits)
}

func (h *CatalogHandler) MovieRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	page := h.Service.MovieRecommendations(r.Context(), id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func (h *CatalogHandler) WatchProviders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	providers, err := h.Service.WatchProviders(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(providers)
}

func (h *CatalogHandler) PersonDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	details, err := h.Service.PersonDetails(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

func (h *CatalogHandler) PersonCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	page := h.Service.PersonMovieCredits(r.Context(), id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func (h *CatalogHandler) Moods(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]catalogpkg.Mood{"moods": h.Service.Moods()})
}

func (h *CatalogHandler) MoodPicks(w http.ResponseWriter, r *http.Request) {
	moodID := mux.Vars(r)["moodID"]
	page, err := h.Service.MoodPicks(r.Context(), moodID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

// writeCatalogError maps a catalog error to the right status: unknown ids are
// 404, everything else is an upstream failure.
func writeCatalogError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if errors.Is(err, catalogpkg.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		return
	}
	w.WriteHeader(http.StatusBadGateway)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
