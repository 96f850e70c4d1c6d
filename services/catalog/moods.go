package catalog

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"moviebuddy/models"
)

// Mood is a curated discover preset: a named bundle of genres (or, for the
// acclaimed pick, a rating threshold) used for one-tap browsing.
type Mood struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GenreIDs    []int  `json:"genreIds,omitempty"`
}

var moods = []Mood{
	{ID: "spooky", Name: "Spooky/Horror", Description: "For thriller lovers", GenreIDs: []int{27, 53}},
	{ID: "comedy", Name: "Comedy Gold", Description: "Laugh-out-loud movies", GenreIDs: []int{35}},
	{ID: "mind-bending", Name: "Mind-Bending", Description: "Complex plots, twists", GenreIDs: []int{878, 9648}},
	{ID: "adrenaline", Name: "Adrenaline Rush", Description: "Fast-paced action", GenreIDs: []int{28, 12}},
	{ID: "emotional", Name: "Emotional Journey", Description: "Drama and tearjerkers", GenreIDs: []int{18, 10749}},
	{ID: "sci-fi", Name: "Sci-Fi Adventure", Description: "Space and future themes", GenreIDs: []int{878, 12}},
	{ID: "mystery", Name: "Mystery Detective", Description: "Whodunit films", GenreIDs: []int{9648, 80}},
	{ID: "oscar", Name: "Critically Acclaimed", Description: "Highly-rated masterpieces"},
}

// Moods lists the available presets in display order.
func (s *Service) Moods() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods)
	return out
}

// MoodPicks runs the discover query behind a preset and shuffles the first
// page so repeat visits surface different titles. Unknown mood ids yield
// ErrNotFound.
func (s *Service) MoodPicks(ctx context.Context, moodID string) (models.MoviePage, error) {
	var mood *Mood
	for i := range moods {
		if moods[i].ID == moodID {
			mood = &moods[i]
			break
		}
	}
	if mood == nil {
		return models.MoviePage{}, ErrNotFound
	}

	filters := DiscoverFilters{SortBy: "popularity.desc"}
	if mood.ID == "oscar" {
		// High ratings with substantial vote counts
		filters.VoteAverageGTE = 8.0
		filters.VoteCountGTE = 2000
		filters.SortBy = "vote_average.desc"
	} else {
		filters.WithGenres = joinGenreIDs(mood.GenreIDs)
	}

	page := s.Discover(ctx, filters, 1)
	rand.Shuffle(len(page.Results), func(i, j int) {
		page.Results[i], page.Results[j] = page.Results[j], page.Results[i]
	})
	return page, nil
}

func joinGenreIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
