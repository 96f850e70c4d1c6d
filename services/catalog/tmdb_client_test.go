package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/json"}},
	}
}

func newTestClient(rt roundTripFunc) *tmdbClient {
	c := newTMDBClient("test-key", "en", &http.Client{Transport: rt})
	c.minInterval = 0
	return c
}

func TestGetSendsKeyAndLanguage(t *testing.T) {
	var seen *http.Request
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		seen = r
		return jsonResponse(http.StatusOK, `{"page":1,"results":[]}`), nil
	})

	if _, err := client.trending(context.Background()); err != nil {
		t.Fatalf("trending: %v", err)
	}

	if seen == nil {
		t.Fatal("no request issued")
	}
	q := seen.URL.Query()
	if q.Get("api_key") != "test-key" {
		t.Errorf("expected api_key to be sent, got %q", q.Get("api_key"))
	}
	if q.Get("language") != "en-US" {
		t.Errorf("expected normalized language en-US, got %q", q.Get("language"))
	}
	if seen.URL.Path != "/3/trending/movie/day" {
		t.Errorf("unexpected path %q", seen.URL.Path)
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		attempts++
		if attempts == 1 {
			return jsonResponse(http.StatusBadGateway, `{}`), nil
		}
		return jsonResponse(http.StatusOK, `{"page":1,"results":[{"id":550,"title":"Fight Club"}]}`), nil
	})

	page, err := client.trending(context.Background())
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if len(page.Results) != 1 || page.Results[0].ID != 550 {
		t.Errorf("unexpected payload %+v", page)
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusNotFound, `{"status_message":"not found"}`), nil
	})

	_, err := client.movieDetails(context.Background(), 999)
	if err == nil {
		t.Fatal("expected an error")
	}
	if attempts != 1 {
		t.Errorf("4xx must not be retried, got %d attempts", attempts)
	}
	var se *statusError
	if !errors.As(err, &se) || se.code != http.StatusNotFound {
		t.Errorf("expected a 404 statusError, got %v", err)
	}
}

func TestDiscoverFilterValues(t *testing.T) {
	filters := DiscoverFilters{
		WithGenres:     "878,12",
		Year:           "2016",
		Language:       "ja",
		SortBy:         "vote_average.desc",
		VoteAverageGTE: 8.0,
		VoteCountGTE:   2000,
	}
	params := filters.values(3)

	checks := map[string]string{
		"page":                   "3",
		"sort_by":                "vote_average.desc",
		"with_genres":            "878,12",
		"primary_release_year":   "2016",
		"with_original_language": "ja",
		"vote_average.gte":       "8",
		"vote_count.gte":         "2000",
	}
	for key, want := range checks {
		if got := params.Get(key); got != want {
			t.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}
}

func TestDiscoverFilterDefaults(t *testing.T) {
	params := DiscoverFilters{}.values(1)
	if got := params.Get("sort_by"); got != "popularity.desc" {
		t.Errorf("expected default sort, got %q", got)
	}
	for _, key := range []string{"with_genres", "primary_release_year", "with_original_language", "vote_average.gte", "vote_count.gte"} {
		if params.Has(key) {
			t.Errorf("zero-valued filter %s must be omitted", key)
		}
	}
}

func TestPersonMovieCreditsWrapsCastAsPage(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"cast":[{"id":550,"title":"Fight Club"},{"id":16869,"title":"Inglourious Basterds"}]}`), nil
	})

	page, err := client.personMovieCredits(context.Background(), 287)
	if err != nil {
		t.Fatalf("personMovieCredits: %v", err)
	}
	if page.Page != 1 || page.TotalPages != 1 {
		t.Errorf("expected a single synthetic page, got %+v", page)
	}
	if len(page.Results) != 2 || page.Results[1].ID != 16869 {
		t.Errorf("unexpected results %+v", page.Results)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"en":    "en-US",
		"ja":    "ja-US",
		"en_GB": "en-GB",
		"pt-br": "pt-BR",
		"x":     "en-US",
	}
	for in, want := range cases {
		if got := normalizeLanguage(in); got != want {
			t.Errorf("normalizeLanguage(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestImageURL(t *testing.T) {
	if got := ImageURL("/abc.jpg", ""); got != "https://image.tmdb.org/t/p/w500/abc.jpg" {
		t.Errorf("unexpected url %q", got)
	}
	if got := ImageURL("/abc.jpg", "w1280"); got != "https://image.tmdb.org/t/p/w1280/abc.jpg" {
		t.Errorf("unexpected url %q", got)
	}
	if got := ImageURL("  ", ""); got != "" {
		t.Errorf("blank path should yield empty url, got %q", got)
	}
}
