package enrich

import (
	"github.com/rajeshbyreddy95/server/internal/models"
	"github.com/rajeshbyreddy95/server/internal/tmdb"
)

// genreNamesByID resolves the numeric genre ids that list fetches carry
// instead of full genre records.
var genreNamesByID = map[int64]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// SummaryOption controls which optional fields a reshaped summary carries.
type SummaryOption int

const (
	// PlainSummary keeps only the base fields plus overview.
	PlainSummary SummaryOption = iota
	// WithGenres resolves the genre-id list instead of the overview.
	WithGenres
	// WithGenresAndOverview carries both.
	WithGenresAndOverview
)

// Summarize reshapes a base item into a flat list-view record without
// any enrichment fan-out.
func (e *Enricher) Summarize(base tmdb.MovieSummary, opt SummaryOption) models.Summary {
	summary := models.Summary{
		ID:          base.ID,
		Title:       base.DisplayTitle(),
		Poster:      e.imageURL(base.PosterPath),
		Banner:      e.imageURL(base.BackdropPath),
		ReleaseYear: releaseYear(base.FirstReleaseDate()),
		Rating:      base.VoteAverage,
	}

	switch opt {
	case WithGenres:
		summary.Genres = resolveGenreIDs(base.GenreIDs)
	case WithGenresAndOverview:
		summary.Genres = resolveGenreIDs(base.GenreIDs)
		summary.Overview = overview(base.Overview)
	default:
		summary.Overview = overview(base.Overview)
	}
	return summary
}

// SummarizeAll reshapes a page of base items, preserving order.
func (e *Enricher) SummarizeAll(bases []tmdb.MovieSummary, opt SummaryOption) []models.Summary {
	summaries := make([]models.Summary, 0, len(bases))
	for _, base := range bases {
		summaries = append(summaries, e.Summarize(base, opt))
	}
	return summaries
}

// ReshapePerson maps an upstream person record onto the served shape,
// including the gender enum mapping.
func (e *Enricher) ReshapePerson(person *tmdb.Person) models.Person {
	gender := "Other"
	switch person.Gender {
	case 1:
		gender = "Female"
	case 2:
		gender = "Male"
	}

	return models.Person{
		ID:           person.ID,
		Name:         person.Name,
		Biography:    defaultString(person.Biography, "No biography available"),
		Birthday:     defaultString(person.Birthday, YearFallback),
		Deathday:     defaultString(person.Deathday, YearFallback),
		Gender:       gender,
		KnownFor:     defaultString(person.KnownForDepartment, YearFallback),
		PlaceOfBirth: defaultString(person.PlaceOfBirth, YearFallback),
		Popularity:   person.Popularity,
		Profile:      e.imageURL(person.ProfilePath),
		Homepage:     person.Homepage,
	}
}

func resolveGenreIDs(ids []int64) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genreNamesByID[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, "Unknown")
		}
	}
	return names
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
