package discovery

import (
	"context"
	"strings"
	"sync"

	"moviebuddy/models"
)

// Status is the controller's lifecycle phase.
type Status string

const (
	// StatusInitializing covers the window before the first load completes.
	StatusInitializing Status = "initializing"
	// StatusIdle means the current results match the current query.
	StatusIdle Status = "idle"
	// StatusFetching means a replacing fetch for a new query is in flight.
	StatusFetching Status = "fetching"
	// StatusLoadingMore means the next page is being appended.
	StatusLoadingMore Status = "loading_more"
	// StatusErrored means the last fetch failed; prior results are retained.
	StatusErrored Status = "errored"
)

// Fetcher resolves a query to one page of movies.
type Fetcher interface {
	FetchPage(ctx context.Context, q Query) (models.MoviePage, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, q Query) (models.MoviePage, error)

func (f FetcherFunc) FetchPage(ctx context.Context, q Query) (models.MoviePage, error) {
	return f(ctx, q)
}

// Snapshot is a point-in-time copy of the controller state, safe to hold
// after the controller moves on.
type Snapshot struct {
	Status       Status
	Query        Query
	Results      []models.Movie
	TotalPages   int
	TotalResults int
	Err          error
}

// CanLoadMore reports whether a further page exists and the controller is in
// a state that accepts a load-more request.
func (s Snapshot) CanLoadMore() bool {
	return s.Status == StatusIdle && s.Query.Page < s.TotalPages
}

// Controller drives the browse view: it owns the current query, the
// accumulated result window and the fetch lifecycle. Every filter mutation
// resets the pagination cursor and replaces the results; LoadMore appends the
// next page. Each replacing fetch carries a generation token, and a response
// whose token no longer matches is dropped, so out-of-order completions can
// never clobber a newer query's results.
type Controller struct {
	fetcher Fetcher

	mu           sync.Mutex
	generation   uint64
	status       Status
	query        Query
	results      []models.Movie
	totalPages   int
	totalResults int
	err          error
	loaded       bool
}

// NewController creates a controller with the default query. No fetch happens
// until Load is called.
func NewController(fetcher Fetcher) *Controller {
	return &Controller{
		fetcher: fetcher,
		status:  StatusInitializing,
		query:   Query{Sort: DefaultSort, Page: 1},
	}
}

// NewControllerFromURL restores a controller from previously encoded URL
// parameters, e.g. a shared link.
func NewControllerFromURL(fetcher Fetcher, rawQuery string) *Controller {
	c := NewController(fetcher)
	c.query = parseRaw(rawQuery)
	return c
}

// Load fetches page one of the current query, replacing any prior results.
// It is the initial load and also serves as retry after an error.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.query.Page = 1
	c.refreshLocked(ctx)
}

// SetSearch switches to free-text search mode. Structured filters are cleared
// because the two modes are mutually exclusive; a blank term switches back to
// discover mode.
func (c *Controller) SetSearch(ctx context.Context, term string) {
	c.mu.Lock()
	c.query.Search = strings.TrimSpace(term)
	c.query.Genre = ""
	c.query.Year = ""
	c.query.Page = 1
	c.refreshLocked(ctx)
}

// SetGenre applies a genre filter, leaving search mode if active.
func (c *Controller) SetGenre(ctx context.Context, genreID string) {
	c.mu.Lock()
	c.query.Genre = genreID
	c.query.Search = ""
	c.query.Page = 1
	c.refreshLocked(ctx)
}

// SetYear applies a release-year filter, leaving search mode if active.
func (c *Controller) SetYear(ctx context.Context, year string) {
	c.mu.Lock()
	c.query.Year = year
	c.query.Search = ""
	c.query.Page = 1
	c.refreshLocked(ctx)
}

// SetSort changes the result ordering.
func (c *Controller) SetSort(ctx context.Context, sort string) {
	c.mu.Lock()
	if sort == "" {
		sort = DefaultSort
	}
	c.query.Sort = sort
	c.query.Page = 1
	c.refreshLocked(ctx)
}

// SetLanguage filters by original language.
func (c *Controller) SetLanguage(ctx context.Context, language string) {
	c.mu.Lock()
	c.query.Language = language
	c.query.Page = 1
	c.refreshLocked(ctx)
}

// ClearFilters resets the query to its defaults and reloads.
func (c *Controller) ClearFilters(ctx context.Context) {
	c.mu.Lock()
	c.query = Query{Sort: DefaultSort, Page: 1}
	c.refreshLocked(ctx)
}

// refreshLocked starts a replacing fetch for the current query. The caller
// must hold c.mu; the lock is released before the fetch runs.
func (c *Controller) refreshLocked(ctx context.Context) {
	c.generation++
	gen := c.generation
	q := c.query
	if c.loaded {
		c.status = StatusFetching
	} else {
		c.status = StatusInitializing
	}
	c.mu.Unlock()

	page, err := c.fetcher.FetchPage(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// A newer mutation superseded this fetch; its result owns the state.
		return
	}
	if err != nil {
		c.status = StatusErrored
		c.err = err
		return
	}
	c.results = page.Results
	c.totalPages = page.TotalPages
	c.totalResults = page.TotalResults
	c.status = StatusIdle
	c.err = nil
	c.loaded = true
}

// LoadMore fetches the page after the current cursor and appends it. The call
// is a no-op unless the controller is idle with pages remaining. The cursor
// only advances when the fetch succeeds, so a failed load-more can be retried
// without skipping a page.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.status != StatusIdle || c.query.Page >= c.totalPages {
		c.mu.Unlock()
		return
	}
	gen := c.generation
	next := c.query
	next.Page++
	c.status = StatusLoadingMore
	c.mu.Unlock()

	page, err := c.fetcher.FetchPage(ctx, next)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	if err != nil {
		c.status = StatusErrored
		c.err = err
		return
	}
	c.results = append(c.results, page.Results...)
	c.query.Page = next.Page
	c.totalPages = page.TotalPages
	c.totalResults = page.TotalResults
	c.status = StatusIdle
	c.err = nil
}

// Retry re-runs the current query from the first page after an error.
func (c *Controller) Retry(ctx context.Context) {
	c.mu.Lock()
	if c.status != StatusErrored {
		c.mu.Unlock()
		return
	}
	c.query.Page = 1
	c.refreshLocked(ctx)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	results := make([]models.Movie, len(c.results))
	copy(results, c.results)
	return Snapshot{
		Status:       c.status,
		Query:        c.query,
		Results:      results,
		TotalPages:   c.totalPages,
		TotalResults: c.totalResults,
		Err:          c.err,
	}
}

// EncodedQuery renders the current query as a shareable query string.
func (c *Controller) EncodedQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Encode()
}
