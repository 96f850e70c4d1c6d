package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"moviebuddy/models"
	catalogpkg "moviebuddy/services/catalog"
	"moviebuddy/services/discovery"
)

type browseService interface {
	Trending(context.Context) models.MoviePage
	Discover(context.Context, catalogpkg.DiscoverFilters, int) models.MoviePage
	SearchMovies(context.Context, string, int) models.MoviePage
	SearchPeople(context.Context, string, int) models.PersonPage
}

var _ browseService = (*catalogpkg.Service)(nil)

type BrowseHandler struct {
	Service browseService
}

func NewBrowseHandler(s browseService) *BrowseHandler {
	return &BrowseHandler{Service: s}
}

// BrowseResponse is one page of browse results plus the canonical encoding of
// the query that produced it, so clients can mirror it into their own URL.
type BrowseResponse struct {
	Mode  discovery.Mode `json:"mode"`
	Query string         `json:"query"`
	models.MoviePage
}

// Browse resolves a filter/search query expressed as URL parameters. A
// non-blank search term runs a title search; otherwise the structured filters
// run a discover query, with a completely default query falling through to
// the trending shelf.
func (h *BrowseHandler) Browse(w http.ResponseWriter, r *http.Request) {
	query := discovery.ParseQuery(r.URL.Query())

	var page models.MoviePage
	switch {
	case query.Mode() == discovery.ModeSearch:
		page = h.Service.SearchMovies(r.Context(), query.Search, query.Page)
	case query.IsDefault():
		page = h.Service.Trending(r.Context())
	default:
		page = h.Service.Discover(r.Context(), discoverFilters(query), query.Page)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BrowseResponse{
		Mode:      query.Mode(),
		Query:     query.Encode(),
		MoviePage: page,
	})
}

func (h *BrowseHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	page := pageParam(r)
	result := h.Service.SearchMovies(r.Context(), term, page)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *BrowseHandler) SearchPeople(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	page := pageParam(r)
	result := h.Service.SearchPeople(r.Context(), term, page)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func pageParam(r *http.Request) int {
	return discovery.ParseQuery(r.URL.Query()).Page
}

// discoverFilters translates browse-state filters to catalog query parameters.
func discoverFilters(q discovery.Query) catalogpkg.DiscoverFilters {
	return catalogpkg.DiscoverFilters{
		WithGenres: q.Genre,
		Year:       q.Year,
		Language:   q.Language,
		SortBy:     q.Sort,
	}
}
