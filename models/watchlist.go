package models

import "strings"

// WatchlistKind selects which of the two persisted collections an operation
// targets.
type WatchlistKind string

const (
	WatchlistMovies WatchlistKind = "movie"
	WatchlistPeople WatchlistKind = "person"
)

// ParseWatchlistKind normalizes a route/query value into a kind. The second
// return is false for anything other than the two known collections.
func ParseWatchlistKind(raw string) (WatchlistKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "movie", "movies":
		return WatchlistMovies, true
	case "person", "people":
		return WatchlistPeople, true
	}
	return "", false
}
