package catalog

import (
	"context"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"moviebuddy/models"
)

// ErrNotFound reports that the catalog has no entity with the requested id.
var ErrNotFound = errors.New("catalog: not found")

// Service is the remote catalog collaborator. Listing reads (discover, search,
// trending, genres, recommendations, providers) never fail: on transport
// failure they degrade to fixture data or an empty well-typed envelope.
// Single-entity lookups return ErrNotFound for unknown ids and propagate only
// failures that have no sane default.
type Service struct {
	client *tmdbClient
	cache  *fileCache
}

func NewService(apiKey, language, cacheDir string, ttlHours int) *Service {
	return &Service{
		client: newTMDBClient(apiKey, language, &http.Client{}),
		cache:  newFileCache(filepath.Join(cacheDir, "catalog"), ttlHours),
	}
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

// Trending returns the day's trending movies, cached briefly on disk, or the
// fixture catalog when the upstream is unreachable.
func (s *Service) Trending(ctx context.Context) models.MoviePage {
	if !s.client.isConfigured() {
		return fallbackMovies()
	}

	key := cacheKey("trending", "movie", "day")
	var cached models.MoviePage
	if ok, _ := s.cache.get(key, &cached); ok && len(cached.Results) > 0 {
		return cached
	}

	page, err := s.client.trending(ctx)
	if err != nil || len(page.Results) == 0 {
		log.Printf("[catalog] trending unavailable (%v); serving fixture catalog", err)
		return fallbackMovies()
	}
	_ = s.cache.set(key, page)
	return page
}

// Discover runs a structured filter query. The first page degrades to the
// fixture catalog on failure; deeper pages degrade to an empty page so a
// load-more caller never appends duplicates.
func (s *Service) Discover(ctx context.Context, filters DiscoverFilters, page int) models.MoviePage {
	if page < 1 {
		page = 1
	}
	if s.client.isConfigured() {
		result, err := s.client.discover(ctx, filters, page)
		if err == nil {
			return result
		}
		log.Printf("[catalog] discover page %d failed: %v", page, err)
	}
	if page == 1 {
		return fallbackMovies()
	}
	return emptyMoviePage(page)
}

// SearchMovies runs a free-text title search. A blank term short-circuits to
// an empty page without touching the network.
func (s *Service) SearchMovies(ctx context.Context, term string, page int) models.MoviePage {
	if page < 1 {
		page = 1
	}
	if !hasQuery(term) {
		return emptyMoviePage(page)
	}
	if s.client.isConfigured() {
		result, err := s.client.searchMovies(ctx, term, page)
		if err == nil {
			return result
		}
		log.Printf("[catalog] movie search %q failed: %v", term, err)
	}
	return emptyMoviePage(page)
}

// SearchPeople runs a free-text person search with the same degradation rules
// as SearchMovies.
func (s *Service) SearchPeople(ctx context.Context, term string, page int) models.PersonPage {
	if page < 1 {
		page = 1
	}
	if !hasQuery(term) {
		return models.PersonPage{Page: page, Results: []models.Person{}, TotalPages: 1}
	}
	if s.client.isConfigured() {
		result, err := s.client.searchPeople(ctx, term, page)
		if err == nil {
			return result
		}
		log.Printf("[catalog] person search %q failed: %v", term, err)
	}
	return models.PersonPage{Page: page, Results: []models.Person{}, TotalPages: 1}
}

// GenreList returns the catalog's genre vocabulary, cached on disk. Falls back
// to the fixture list so startup never blocks on the upstream.
func (s *Service) GenreList(ctx context.Context) []models.Genre {
	if !s.client.isConfigured() {
		return fallbackGenres()
	}

	key := cacheKey("genres", "movie")
	var cached []models.Genre
	if ok, _ := s.cache.get(key, &cached); ok && len(cached) > 0 {
		return cached
	}

	genres, err := s.client.genreList(ctx)
	if err != nil || len(genres) == 0 {
		log.Printf("[catalog] genre list unavailable (%v); serving fixture genres", err)
		return fallbackGenres()
	}
	_ = s.cache.set(key, genres)
	return genres
}

// MovieDetails looks up a single movie. Unknown ids yield ErrNotFound; a
// transport failure is recovered from the fixture catalog when the id is part
// of it.
func (s *Service) MovieDetails(ctx context.Context, movieID int64) (*models.MovieDetails, error) {
	if s.client.isConfigured() {
		details, err := s.client.movieDetails(ctx, movieID)
		if err == nil {
			return details, nil
		}
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		log.Printf("[catalog] movie details %d failed: %v", movieID, err)
	}
	if details := fallbackDetails(movieID); details != nil {
		return details, nil
	}
	return nil, ErrNotFound
}

// MovieCredits returns cast and crew; transport failures degrade to empty
// lists, unknown ids to ErrNotFound.
func (s *Service) MovieCredits(ctx context.Context, movieID int64) (*models.Credits, error) {
	if s.client.isConfigured() {
		credits, err := s.client.movieCredits(ctx, movieID)
		if err == nil {
			if credits.Cast == nil {
				credits.Cast = []models.CastMember{}
			}
			if credits.Crew == nil {
				credits.Crew = []models.CrewMember{}
			}
			return credits, nil
		}
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		log.Printf("[catalog] movie credits %d failed: %v", movieID, err)
	}
	return &models.Credits{ID: movieID, Cast: []models.CastMember{}, Crew: []models.CrewMember{}}, nil
}

func (s *Service) MovieRecommendations(ctx context.Context, movieID int64) models.MoviePage {
	if s.client.isConfigured() {
		page, err := s.client.movieRecommendations(ctx, movieID)
		if err == nil {
			return page
		}
		log.Printf("[catalog] recommendations %d failed: %v", movieID, err)
	}
	return emptyMoviePage(1)
}

// WatchProviders returns the per-region streaming/rent/buy offerings for a
// movie; transport failures degrade to an empty region map.
func (s *Service) WatchProviders(ctx context.Context, movieID int64) (*models.WatchProviders, error) {
	if s.client.isConfigured() {
		providers, err := s.client.watchProviders(ctx, movieID)
		if err == nil {
			if providers.Results == nil {
				providers.Results = map[string]models.RegionProviders{}
			}
			return providers, nil
		}
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		log.Printf("[catalog] watch providers %d failed: %v", movieID, err)
	}
	return &models.WatchProviders{ID: movieID, Results: map[string]models.RegionProviders{}}, nil
}

// PersonDetails looks up a single person. There is no fixture fallback for
// people, so transport failures propagate.
func (s *Service) PersonDetails(ctx context.Context, personID int64) (*models.PersonDetails, error) {
	if !s.client.isConfigured() {
		return nil, ErrNotFound
	}
	details, err := s.client.personDetails(ctx, personID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return details, nil
}

func (s *Service) PersonMovieCredits(ctx context.Context, personID int64) models.MoviePage {
	if s.client.isConfigured() {
		page, err := s.client.personMovieCredits(ctx, personID)
		if err == nil {
			return page
		}
		log.Printf("[catalog] person credits %d failed: %v", personID, err)
	}
	return emptyMoviePage(1)
}

func emptyMoviePage(page int) models.MoviePage {
	return models.MoviePage{Page: page, Results: []models.Movie{}, TotalPages: 1}
}

func hasQuery(term string) bool {
	return strings.TrimSpace(term) != ""
}
