package catalog

import "moviebuddy/models"

// Curated fallback catalog served when the metadata API is unreachable. The
// entries are stable, well-known titles so the UI stays browsable offline.

func strptr(s string) *string { return &s }

func fallbackMovies() models.MoviePage {
	return models.MoviePage{
		Page: 1,
		Results: []models.Movie{
			{
				ID:           550,
				Title:        "Fight Club",
				Overview:     "A ticking-time-bomb insomniac and a slippery soap salesman channel primal male aggression into a shocking new form of therapy.",
				PosterPath:   strptr("/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"),
				BackdropPath: strptr("/52AfXWuXCHn3UjD17rBruA9f5qb.jpg"),
				ReleaseDate:  "1999-10-15",
				VoteAverage:  8.4,
				VoteCount:    26280,
				GenreIDs:     []int{18, 53},
			},
			{
				ID:           238,
				Title:        "The Godfather",
				Overview:     "Spanning the years 1945 to 1955, a chronicle of the fictional Italian-American Corleone crime family.",
				PosterPath:   strptr("/3bhkrj58Vtu7enYsRolD1fZdja1.jpg"),
				BackdropPath: strptr("/tmU7GeKVybMWFButWEGl2M4GeiP.jpg"),
				ReleaseDate:  "1972-03-14",
				VoteAverage:  8.7,
				VoteCount:    19611,
				GenreIDs:     []int{18, 80},
			},
			{
				ID:           424,
				Title:        "Schindler's List",
				Overview:     "The true story of how businessman Oskar Schindler saved over a thousand Jewish lives from the Nazis while they worked as slaves in his factory during World War II.",
				PosterPath:   strptr("/sF1U4EUQS8YHUYjNl3pMGNIQyr0.jpg"),
				BackdropPath: strptr("/loRmRzQXZeqG78TqZuyvSlEQfZb.jpg"),
				ReleaseDate:  "1993-12-15",
				VoteAverage:  8.6,
				VoteCount:    15374,
				GenreIDs:     []int{18, 36, 10752},
			},
			{
				ID:           372058,
				Title:        "Your Name",
				Overview:     "High schoolers Mitsuha and Taki are complete strangers living separate lives. But one night, they suddenly switch places.",
				PosterPath:   strptr("/q719jXXEzOoYaps6babgKnONONX.jpg"),
				BackdropPath: strptr("/F6KZyJNEyql5pn4xSJgZ6BtcXE.jpg"),
				ReleaseDate:  "2016-08-26",
				VoteAverage:  8.5,
				VoteCount:    10662,
				GenreIDs:     []int{16, 18, 10749},
			},
			{
				ID:           278,
				Title:        "The Shawshank Redemption",
				Overview:     "Framed in the 1940s for the double murder of his wife and her lover, upstanding banker Andy Dufresne begins a new life at the Shawshank prison.",
				PosterPath:   strptr("/9cqNxx0GxF0bflyCy3dznLCsa6z.jpg"),
				BackdropPath: strptr("/iNh3BivHyg5sQRPP1KOkzguEX0H.jpg"),
				ReleaseDate:  "1994-09-23",
				VoteAverage:  8.7,
				VoteCount:    26280,
				GenreIDs:     []int{18, 80},
			},
			{
				ID:           680,
				Title:        "Pulp Fiction",
				Overview:     "A burger-loving hit man, his philosophical partner, a drug-addicted gangster's moll and a washed-up boxer converge in this sprawling crime caper.",
				PosterPath:   strptr("/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg"),
				BackdropPath: strptr("/4cDFJr4HnXN5AdPw4AKrmLlMWdO.jpg"),
				ReleaseDate:  "1994-09-10",
				VoteAverage:  8.5,
				VoteCount:    27280,
				GenreIDs:     []int{18, 80},
			},
		},
		TotalPages:   1,
		TotalResults: 6,
	}
}

func fallbackGenres() []models.Genre {
	return []models.Genre{
		{ID: 28, Name: "Action"},
		{ID: 12, Name: "Adventure"},
		{ID: 16, Name: "Animation"},
		{ID: 35, Name: "Comedy"},
		{ID: 80, Name: "Crime"},
		{ID: 99, Name: "Documentary"},
		{ID: 18, Name: "Drama"},
		{ID: 10751, Name: "Family"},
		{ID: 14, Name: "Fantasy"},
		{ID: 36, Name: "History"},
		{ID: 27, Name: "Horror"},
		{ID: 10402, Name: "Music"},
		{ID: 9648, Name: "Mystery"},
		{ID: 10749, Name: "Romance"},
		{ID: 878, Name: "Science Fiction"},
		{ID: 10770, Name: "TV Movie"},
		{ID: 53, Name: "Thriller"},
		{ID: 10752, Name: "War"},
		{ID: 37, Name: "Western"},
	}
}

func fallbackDetails(movieID int64) *models.MovieDetails {
	for _, m := range fallbackMovies().Results {
		if m.ID != movieID {
			continue
		}
		details := &models.MovieDetails{Movie: m}
		details.Genres = make([]models.Genre, 0, len(m.GenreIDs))
		for _, gid := range m.GenreIDs {
			for _, g := range fallbackGenres() {
				if g.ID == gid {
					details.Genres = append(details.Genres, g)
				}
			}
		}
		return details
	}
	return nil
}
