package suggest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"moviebuddy/models"
)

const (
	// DefaultDelay is how long input must stay quiet before a lookup fires.
	DefaultDelay = 300 * time.Millisecond

	maxMovieSuggestions  = 5
	maxPersonSuggestions = 3
)

// Searcher runs the two typeahead lookups. Both are expected to degrade to an
// empty page instead of failing.
type Searcher interface {
	SearchMovies(ctx context.Context, term string, page int) models.MoviePage
	SearchPeople(ctx context.Context, term string, page int) models.PersonPage
}

// Suggestions is one committed typeahead result set.
type Suggestions struct {
	Term   string          `json:"term"`
	Movies []models.Movie  `json:"movies"`
	People []models.Person `json:"people"`
}

func emptySuggestions() Suggestions {
	return Suggestions{Movies: []models.Movie{}, People: []models.Person{}}
}

// Controller debounces raw keystrokes into typeahead lookups. Each Input call
// opens a new window and invalidates every earlier one; only the lookup
// belonging to the latest window may commit its results, so slow responses
// for abandoned terms are dropped. A blank input clears the suggestions
// immediately, without waiting out the delay.
type Controller struct {
	searcher Searcher
	delay    time.Duration
	onUpdate func(Suggestions)

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	current    Suggestions
}

// NewController creates a controller. A non-positive delay falls back to
// DefaultDelay. onUpdate, if non-nil, is called after every commit or clear.
func NewController(searcher Searcher, delay time.Duration, onUpdate func(Suggestions)) *Controller {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Controller{
		searcher: searcher,
		delay:    delay,
		onUpdate: onUpdate,
		current:  emptySuggestions(),
	}
}

// Input feeds one keystroke's worth of text. The lookup fires only after the
// debounce delay passes with no further input.
func (c *Controller) Input(ctx context.Context, term string) {
	term = strings.TrimSpace(term)

	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if term == "" {
		c.current = emptySuggestions()
		notify := c.onUpdate
		snap := c.current
		c.mu.Unlock()
		if notify != nil {
			notify(snap)
		}
		return
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.fire(ctx, gen, term)
	})
	c.mu.Unlock()
}

// Cancel drops any pending lookup without touching the current suggestions.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Current returns the last committed suggestions.
func (c *Controller) Current() Suggestions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// fire runs the lookup for a window, committing only if the window is still
// the latest both before and after the fetch.
func (c *Controller) fire(ctx context.Context, gen uint64, term string) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	result := c.Lookup(ctx, term)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.current = result
	notify := c.onUpdate
	c.mu.Unlock()
	if notify != nil {
		notify(result)
	}
}

// Lookup runs the movie and person searches in parallel and trims the result
// to suggestion size. It bypasses the debounce entirely.
func (c *Controller) Lookup(ctx context.Context, term string) Suggestions {
	term = strings.TrimSpace(term)
	if term == "" {
		return emptySuggestions()
	}

	var (
		movies models.MoviePage
		people models.PersonPage
		wg     conc.WaitGroup
	)
	wg.Go(func() {
		movies = c.searcher.SearchMovies(ctx, term, 1)
	})
	wg.Go(func() {
		people = c.searcher.SearchPeople(ctx, term, 1)
	})
	wg.Wait()

	return Suggestions{
		Term:   term,
		Movies: capMovies(movies.Results, maxMovieSuggestions),
		People: capPeople(people.Results, maxPersonSuggestions),
	}
}

func capMovies(movies []models.Movie, n int) []models.Movie {
	if movies == nil {
		return []models.Movie{}
	}
	if len(movies) > n {
		movies = movies[:n]
	}
	return movies
}

func capPeople(people []models.Person, n int) []models.Person {
	if people == nil {
		return []models.Person{}
	}
	if len(people) > n {
		people = people[:n]
	}
	return people
}
