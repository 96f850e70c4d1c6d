package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"moviebuddy/models"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	// w500 is plenty for poster cards; clients asking for backdrops can
	// request w1280 via ImageURL.
	posterSize = "w500"
)

// statusError carries a non-2xx upstream response code so callers can tell a
// missing entity from a transport failure.
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("tmdb request failed: %s", e.status)
}

type tmdbClient struct {
	apiKey   string
	language string
	baseURL  string
	httpc    *http.Client

	// Rate limiting
	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newTMDBClient(apiKey, language string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		apiKey:      strings.TrimSpace(apiKey),
		language:    language,
		baseURL:     defaultBaseURL,
		httpc:       httpc,
		minInterval: 20 * time.Millisecond, // TMDB has generous rate limits
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

// get performs a rate-limited GET against the given API path and decodes the
// JSON body into v. Transport errors, 429 and 5xx responses are retried with
// exponential backoff; other 4xx responses abort immediately as statusError.
func (c *tmdbClient) get(ctx context.Context, apiPath string, params url.Values, v any) error {
	endpoint, err := url.Parse(c.baseURL + apiPath)
	if err != nil {
		return err
	}

	q := endpoint.Query()
	q.Set("api_key", c.apiKey)
	if lang := strings.TrimSpace(c.language); lang != "" {
		q.Set("language", normalizeLanguage(lang))
	}
	for key, values := range params {
		for _, value := range values {
			q.Set(key, value)
		}
	}
	endpoint.RawQuery = q.Encode()

	return retry.Do(
		func() error {
			c.throttle()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return &statusError{code: resp.StatusCode, status: resp.Status}
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(&statusError{code: resp.StatusCode, status: resp.Status})
			}

			if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (c *tmdbClient) throttle() {
	c.throttleMu.Lock()
	defer c.throttleMu.Unlock()
	if since := time.Since(c.lastRequest); since < c.minInterval {
		time.Sleep(c.minInterval - since)
	}
	c.lastRequest = time.Now()
}

// DiscoverFilters are the structured (non-text) query parameters for the
// discover endpoint. Zero values are omitted from the request; SortBy always
// has a default applied by the caller.
type DiscoverFilters struct {
	WithGenres     string
	Year           string
	Language       string
	SortBy         string
	VoteAverageGTE float64
	VoteCountGTE   int
}

func (f DiscoverFilters) values(page int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)
	if f.WithGenres != "" {
		params.Set("with_genres", f.WithGenres)
	}
	if f.Year != "" {
		params.Set("primary_release_year", f.Year)
	}
	if f.Language != "" {
		params.Set("with_original_language", f.Language)
	}
	if f.VoteAverageGTE > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(f.VoteAverageGTE, 'f', -1, 64))
	}
	if f.VoteCountGTE > 0 {
		params.Set("vote_count.gte", strconv.Itoa(f.VoteCountGTE))
	}
	return params
}

func (c *tmdbClient) discover(ctx context.Context, filters DiscoverFilters, page int) (models.MoviePage, error) {
	var payload models.MoviePage
	err := c.get(ctx, "/discover/movie", filters.values(page), &payload)
	return payload, err
}

func (c *tmdbClient) searchMovies(ctx context.Context, term string, page int) (models.MoviePage, error) {
	params := url.Values{}
	params.Set("query", term)
	params.Set("page", strconv.Itoa(page))
	var payload models.MoviePage
	err := c.get(ctx, "/search/movie", params, &payload)
	return payload, err
}

func (c *tmdbClient) searchPeople(ctx context.Context, term string, page int) (models.PersonPage, error) {
	params := url.Values{}
	params.Set("query", term)
	params.Set("page", strconv.Itoa(page))
	var payload models.PersonPage
	err := c.get(ctx, "/search/person", params, &payload)
	return payload, err
}

func (c *tmdbClient) trending(ctx context.Context) (models.MoviePage, error) {
	var payload models.MoviePage
	err := c.get(ctx, "/trending/movie/day", nil, &payload)
	return payload, err
}

func (c *tmdbClient) movieDetails(ctx context.Context, movieID int64) (*models.MovieDetails, error) {
	var payload models.MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(movieID, 10), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) movieCredits(ctx context.Context, movieID int64) (*models.Credits, error) {
	var payload models.Credits
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(movieID, 10)+"/credits", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) movieRecommendations(ctx context.Context, movieID int64) (models.MoviePage, error) {
	var payload models.MoviePage
	err := c.get(ctx, "/movie/"+strconv.FormatInt(movieID, 10)+"/recommendations", nil, &payload)
	return payload, err
}

func (c *tmdbClient) watchProviders(ctx context.Context, movieID int64) (*models.WatchProviders, error) {
	var payload models.WatchProviders
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(movieID, 10)+"/watch/providers", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) genreList(ctx context.Context) ([]models.Genre, error) {
	var payload struct {
		Genres []models.Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

func (c *tmdbClient) personDetails(ctx context.Context, personID int64) (*models.PersonDetails, error) {
	var payload models.PersonDetails
	if err := c.get(ctx, "/person/"+strconv.FormatInt(personID, 10), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) personMovieCredits(ctx context.Context, personID int64) (models.MoviePage, error) {
	var payload struct {
		Cast []models.Movie `json:"cast"`
	}
	if err := c.get(ctx, "/person/"+strconv.FormatInt(personID, 10)+"/movie_credits", nil, &payload); err != nil {
		return models.MoviePage{}, err
	}
	return models.MoviePage{
		Page:         1,
		Results:      payload.Cast,
		TotalPages:   1,
		TotalResults: len(payload.Cast),
	}, nil
}

func normalizeLanguage(lang string) string {
	lang = strings.ReplaceAll(lang, "_", "-")
	if len(lang) == 2 {
		return strings.ToLower(lang) + "-US"
	}
	if len(lang) >= 5 {
		return strings.ToLower(lang[:2]) + "-" + strings.ToUpper(lang[3:])
	}
	return "en-US"
}

// ImageURL joins a relative image path fragment with the image base URL. Empty
// paths yield an empty string so callers can fall back to a placeholder.
func ImageURL(imagePath, size string) string {
	trimmed := strings.TrimSpace(imagePath)
	if trimmed == "" {
		return ""
	}
	if size == "" {
		size = posterSize
	}
	return fmt.Sprintf("%s/%s/%s", defaultImageBaseURL, size, strings.TrimPrefix(trimmed, "/"))
}
