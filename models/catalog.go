package models

// Catalog entities as served by the metadata API. Field shapes follow the
// upstream wire format so responses round-trip without translation.

// Movie is a single catalog entry from a paginated listing.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
	Video            bool    `json:"video,omitempty"`
}

// Genre is an id+name pair from the catalog's genre list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

// MovieDetails extends Movie with the fields only present on the
// single-entity endpoint.
type MovieDetails struct {
	Movie
	Runtime             int                 `json:"runtime"`
	Genres              []Genre             `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
	Budget              int64               `json:"budget,omitempty"`
	Revenue             int64               `json:"revenue,omitempty"`
	Tagline             string              `json:"tagline,omitempty"`
	IMDBID              string              `json:"imdb_id,omitempty"`
}

// Person is a people-search result or credit subject.
type Person struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	ProfilePath        *string `json:"profile_path"`
	KnownForDepartment string  `json:"known_for_department,omitempty"`
	Popularity         float64 `json:"popularity,omitempty"`
}

// PersonDetails extends Person with biography fields from the single-entity
// endpoint.
type PersonDetails struct {
	Person
	Biography    string  `json:"biography,omitempty"`
	Birthday     *string `json:"birthday"`
	Deathday     *string `json:"deathday"`
	PlaceOfBirth *string `json:"place_of_birth"`
}

type CastMember struct {
	Person
	Character string `json:"character,omitempty"`
	Order     int    `json:"order"`
}

type CrewMember struct {
	Person
	Job        string `json:"job,omitempty"`
	Department string `json:"department,omitempty"`
}

// Credits holds the cast and crew of a single movie.
type Credits struct {
	ID   int64        `json:"id,omitempty"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// MoviePage is the paginated envelope returned by discover, search and
// trending calls.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// PersonPage is the paginated envelope returned by people search.
type PersonPage struct {
	Page         int      `json:"page"`
	Results      []Person `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// StreamingProvider is one entry in a region's provider list. DisplayPriority
// orders providers for presentation only.
type StreamingProvider struct {
	ProviderID      int64  `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

// RegionProviders groups a region's provider lists by monetization kind.
type RegionProviders struct {
	Link     string              `json:"link,omitempty"`
	Flatrate []StreamingProvider `json:"flatrate,omitempty"`
	Rent     []StreamingProvider `json:"rent,omitempty"`
	Buy      []StreamingProvider `json:"buy,omitempty"`
}

// WatchProviders maps region codes (ISO 3166-1) to that region's offerings.
type WatchProviders struct {
	ID      int64                      `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}
