package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviebuddy/models"
	catalogpkg "moviebuddy/services/catalog"
)

type fakeBrowse struct {
	lastOp      string
	lastFilters catalogpkg.DiscoverFilters
	lastTerm    string
	lastPage    int
}

func (f *fakeBrowse) Trending(ctx context.Context) models.MoviePage {
	f.lastOp = "trending"
	return models.MoviePage{Page: 1, Results: []models.Movie{{ID: 550}}, TotalPages: 1}
}

func (f *fakeBrowse) Discover(ctx context.Context, filters catalogpkg.DiscoverFilters, page int) models.MoviePage {
	f.lastOp = "discover"
	f.lastFilters = filters
	f.lastPage = page
	return models.MoviePage{Page: page, Results: []models.Movie{{ID: 238}}, TotalPages: 5}
}

func (f *fakeBrowse) SearchMovies(ctx context.Context, term string, page int) models.MoviePage {
	f.lastOp = "search"
	f.lastTerm = term
	f.lastPage = page
	return models.MoviePage{Page: page, Results: []models.Movie{{ID: 680}}, TotalPages: 2}
}

func (f *fakeBrowse) SearchPeople(ctx context.Context, term string, page int) models.PersonPage {
	f.lastOp = "people"
	f.lastTerm = term
	return models.PersonPage{Page: page, Results: []models.Person{{ID: 287}}, TotalPages: 1}
}

func browseResponse(t *testing.T, rec *httptest.ResponseRecorder) BrowseResponse {
	t.Helper()
	var resp BrowseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding browse response: %v", err)
	}
	return resp
}

func TestBrowseDefaultServesTrending(t *testing.T) {
	fake := &fakeBrowse{}
	h := NewBrowseHandler(fake)
	rec := httptest.NewRecorder()

	h.Browse(rec, httptest.NewRequest(http.MethodGet, "/api/browse", nil))

	if fake.lastOp != "trending" {
		t.Fatalf("default query should serve trending, got %q", fake.lastOp)
	}
	resp := browseResponse(t, rec)
	if resp.Query != "" {
		t.Errorf("default query should encode empty, got %q", resp.Query)
	}
}

func TestBrowseSearchModeWins(t *testing.T) {
	fake := &fakeBrowse{}
	h := NewBrowseHandler(fake)
	rec := httptest.NewRecorder()

	h.Browse(rec, httptest.NewRequest(http.MethodGet, "/api/browse?search=heat&genre=35&page=2", nil))

	if fake.lastOp != "search" {
		t.Fatalf("search term should win over filters, got %q", fake.lastOp)
	}
	if fake.lastTerm != "heat" || fake.lastPage != 2 {
		t.Errorf("expected term heat page 2, got %q page %d", fake.lastTerm, fake.lastPage)
	}
}

func TestBrowseDiscoverPassesFilters(t *testing.T) {
	fake := &fakeBrowse{}
	h := NewBrowseHandler(fake)
	rec := httptest.NewRecorder()

	h.Browse(rec, httptest.NewRequest(http.MethodGet, "/api/browse?genre=878&year=2016&sort=vote_average.desc&language=ja&page=3", nil))

	if fake.lastOp != "discover" {
		t.Fatalf("expected discover, got %q", fake.lastOp)
	}
	want := catalogpkg.DiscoverFilters{WithGenres: "878", Year: "2016", Language: "ja", SortBy: "vote_average.desc"}
	if fake.lastFilters != want {
		t.Errorf("expected filters %+v, got %+v", want, fake.lastFilters)
	}
	if fake.lastPage != 3 {
		t.Errorf("expected page 3, got %d", fake.lastPage)
	}

	resp := browseResponse(t, rec)
	if resp.Query == "" {
		t.Error("non-default query should echo a canonical encoding")
	}
}

func TestSearchPeopleEndpoint(t *testing.T) {
	fake := &fakeBrowse{}
	h := NewBrowseHandler(fake)
	rec := httptest.NewRecorder()

	h.SearchPeople(rec, httptest.NewRequest(http.MethodGet, "/api/search/people?q=pitt", nil))

	if fake.lastOp != "people" || fake.lastTerm != "pitt" {
		t.Fatalf("expected a people search for pitt, got %q %q", fake.lastOp, fake.lastTerm)
	}
	var page models.PersonPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != 287 {
		t.Errorf("unexpected results %+v", page.Results)
	}
}
