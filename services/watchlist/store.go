package watchlist

import (
	"encoding/json"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"moviebuddy/models"
)

// Stable file names for the two persisted collections. Each file holds a
// plain JSON array of entities in insertion order.
const (
	movieFile  = "movie_watchlist.json"
	personFile = "person_watchlist.json"
)

// Store persists the user's saved movies and people as two independent
// JSON-array files. Every operation is a full read-modify-write of the whole
// collection, so reads always return an independent snapshot of what is on
// disk. There is no cross-process locking: two concurrent writers race and the
// last whole-file write wins.
//
// Storage failures are absorbed: mutations become best-effort no-ops and reads
// degrade to an empty collection, never an error.
type Store struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

// NewStore creates a store rooted at dir on the given filesystem. The
// directory is created lazily on first write.
func NewStore(fsys afero.Fs, dir string) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fs: fsys, dir: dir}
}

// Movies returns the persisted movie collection in insertion order.
func (s *Store) Movies() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	var movies []models.Movie
	s.read(movieFile, &movies)
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies
}

// People returns the persisted person collection in insertion order.
func (s *Store) People() []models.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	var people []models.Person
	s.read(personFile, &people)
	if people == nil {
		people = []models.Person{}
	}
	return people
}

// ContainsMovie reports whether a movie with the given id is saved.
func (s *Store) ContainsMovie(id int64) bool {
	for _, m := range s.Movies() {
		if m.ID == id {
			return true
		}
	}
	return false
}

// ContainsPerson reports whether a person with the given id is saved.
func (s *Store) ContainsPerson(id int64) bool {
	for _, p := range s.People() {
		if p.ID == id {
			return true
		}
	}
	return false
}

// AddMovie appends the movie unless an entry with its id already exists.
func (s *Store) AddMovie(movie models.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var movies []models.Movie
	s.read(movieFile, &movies)
	for _, m := range movies {
		if m.ID == movie.ID {
			return
		}
	}
	s.write(movieFile, append(movies, movie))
}

// RemoveMovie deletes the entry with the given id; a no-op when absent.
func (s *Store) RemoveMovie(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var movies []models.Movie
	s.read(movieFile, &movies)
	kept := movies[:0]
	for _, m := range movies {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(movies) {
		return
	}
	s.write(movieFile, kept)
}

// AddPerson appends the person unless an entry with their id already exists.
func (s *Store) AddPerson(person models.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var people []models.Person
	s.read(personFile, &people)
	for _, p := range people {
		if p.ID == person.ID {
			return
		}
	}
	s.write(personFile, append(people, person))
}

// RemovePerson deletes the entry with the given id; a no-op when absent.
func (s *Store) RemovePerson(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var people []models.Person
	s.read(personFile, &people)
	kept := people[:0]
	for _, p := range people {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(people) {
		return
	}
	s.write(personFile, kept)
}

// read decodes the named collection into v. Absent or corrupt files leave v
// untouched (callers treat that as empty).
func (s *Store) read(name string, v any) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("[watchlist] ignoring corrupt %s: %v", name, err)
	}
}

// write replaces the named collection with a whole-file rewrite through a
// temp file. Failures are logged and swallowed.
func (s *Store) write(name string, v any) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		log.Printf("[watchlist] cannot create %s: %v", s.dir, err)
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("[watchlist] encode %s: %v", name, err)
		return
	}

	target := filepath.Join(s.dir, name)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		log.Printf("[watchlist] write %s: %v", name, err)
		return
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		log.Printf("[watchlist] replace %s: %v", name, err)
		_ = s.fs.Remove(tmp)
	}
}
