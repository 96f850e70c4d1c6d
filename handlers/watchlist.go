package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"moviebuddy/models"
	watchlistpkg "moviebuddy/services/watchlist"
)

type watchlistStore interface {
	Movies() []models.Movie
	People() []models.Person
	ContainsMovie(int64) bool
	ContainsPerson(int64) bool
	AddMovie(models.Movie)
	RemoveMovie(int64)
	AddPerson(models.Person)
	RemovePerson(int64)
}

var _ watchlistStore = (*watchlistpkg.Store)(nil)

type WatchlistHandler struct {
	Store watchlistStore
}

func NewWatchlistHandler(store watchlistStore) *WatchlistHandler {
	return &WatchlistHandler{Store: store}
}

// pathKind extracts and validates the {kind} route variable, writing a 400
// when it names neither collection.
func pathKind(w http.ResponseWriter, r *http.Request) (models.WatchlistKind, bool) {
	kind, ok := models.ParseWatchlistKind(mux.Vars(r)["kind"])
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "unknown watchlist kind"})
		return "", false
	}
	return kind, true
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch kind {
	case models.WatchlistMovies:
		json.NewEncoder(w).Encode(map[string][]models.Movie{"items": h.Store.Movies()})
	case models.WatchlistPeople:
		json.NewEncoder(w).Encode(map[string][]models.Person{"items": h.Store.People()})
	}
}

func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	switch kind {
	case models.WatchlistMovies:
		var movie models.Movie
		if err := json.NewDecoder(r.Body).Decode(&movie); err != nil || movie.ID <= 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
			return
		}
		h.Store.AddMovie(movie)
	case models.WatchlistPeople:
		var person models.Person
		if err := json.NewDecoder(r.Body).Decode(&person); err != nil || person.ID <= 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
			return
		}
		h.Store.AddPerson(person)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"saved": true})
}

func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	saved := false
	switch kind {
	case models.WatchlistMovies:
		saved = h.Store.ContainsMovie(id)
	case models.WatchlistPeople:
		saved = h.Store.ContainsPerson(id)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"saved": saved})
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	switch kind {
	case models.WatchlistMovies:
		h.Store.RemoveMovie(id)
	case models.WatchlistPeople:
		h.Store.RemovePerson(id)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"saved": false})
}
