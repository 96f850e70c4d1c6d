package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"moviebuddy/models"
	catalogpkg "moviebuddy/services/catalog"
)

type fakeCatalog struct {
	details map[int64]*models.MovieDetails
}

func (f *fakeCatalog) Trending(ctx context.Context) models.MoviePage {
	return models.MoviePage{Page: 1, Results: []models.Movie{{ID: 550, Title: "Fight Club"}}, TotalPages: 1, TotalResults: 1}
}

func (f *fakeCatalog) GenreList(ctx context.Context) []models.Genre {
	return []models.Genre{{ID: 35, Name: "Comedy"}}
}

func (f *fakeCatalog) MovieDetails(ctx context.Context, id int64) (*models.MovieDetails, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, catalogpkg.ErrNotFound
}

func (f *fakeCatalog) MovieCredits(ctx context.Context, id int64) (*models.Credits, error) {
	if _, ok := f.details[id]; !ok {
		return nil, catalogpkg.ErrNotFound
	}
	return &models.Credits{ID: id, Cast: []models.CastMember{}, Crew: []models.CrewMember{}}, nil
}

func (f *fakeCatalog) MovieRecommendations(ctx context.Context, id int64) models.MoviePage {
	return models.MoviePage{Page: 1, Results: []models.Movie{}, TotalPages: 1}
}

func (f *fakeCatalog) WatchProviders(ctx context.Context, id int64) (*models.WatchProviders, error) {
	return &models.WatchProviders{ID: id, Results: map[string]models.RegionProviders{}}, nil
}

func (f *fakeCatalog) PersonDetails(ctx context.Context, id int64) (*models.PersonDetails, error) {
	return nil, catalogpkg.ErrNotFound
}

func (f *fakeCatalog) PersonMovieCredits(ctx context.Context, id int64) models.MoviePage {
	return models.MoviePage{Page: 1, Results: []models.Movie{}, TotalPages: 1}
}

func (f *fakeCatalog) Moods() []catalogpkg.Mood {
	return []catalogpkg.Mood{{ID: "comedy", Name: "Comedy Gold"}}
}

func (f *fakeCatalog) MoodPicks(ctx context.Context, moodID string) (models.MoviePage, error) {
	if moodID != "comedy" {
		return models.MoviePage{}, catalogpkg.ErrNotFound
	}
	return models.MoviePage{Page: 1, Results: []models.Movie{{ID: 680}}, TotalPages: 1}, nil
}

func newCatalogHandlerForTest() *CatalogHandler {
	return NewCatalogHandler(&fakeCatalog{
		details: map[int64]*models.MovieDetails{
			550: {Movie: models.Movie{ID: 550, Title: "Fight Club"}},
		},
	})
}

func TestTrendingEndpoint(t *testing.T) {
	h := newCatalogHandlerForTest()
	req := httptest.NewRequest(http.MethodGet, "/api/trending", nil)
	rec := httptest.NewRecorder()

	h.Trending(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page models.MoviePage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != 550 {
		t.Errorf("unexpected payload %+v", page)
	}
}

func TestMovieDetailsEndpoint(t *testing.T) {
	h := newCatalogHandlerForTest()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/550", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "550"})
	rec := httptest.NewRecorder()

	h.MovieDetails(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var details models.MovieDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if details.Title != "Fight Club" {
		t.Errorf("unexpected title %q", details.Title)
	}
}

func TestMovieDetailsUnknownIDReturns404(t *testing.T) {
	h := newCatalogHandlerForTest()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/999", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "999"})
	rec := httptest.NewRecorder()

	h.MovieDetails(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error envelope")
	}
}

func TestMovieDetailsBadIDReturns400(t *testing.T) {
	h := newCatalogHandlerForTest()
	for _, raw := range []string{"abc", "-1", ""} {
		req := httptest.NewRequest(http.MethodGet, "/api/movies/"+raw, nil)
		req = mux.SetURLVars(req, map[string]string{"id": raw})
		rec := httptest.NewRecorder()

		h.MovieDetails(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", raw, rec.Code)
		}
	}
}

func TestMoodPicksUnknownReturns404(t *testing.T) {
	h := newCatalogHandlerForTest()
	req := httptest.NewRequest(http.MethodGet, "/api/moods/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"moodID": "nope"})
	rec := httptest.NewRecorder()

	h.MoodPicks(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCatalogErrorMapping(t *testing.T) {
	rec := httptest.NewRecorder()
	writeCatalogError(rec, catalogpkg.ErrNotFound)
	if rec.Code != http.StatusNotFound {
		t.Errorf("ErrNotFound should map to 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	writeCatalogError(rec, errors.New("upstream exploded"))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("other failures should map to 502, got %d", rec.Code)
	}
}
