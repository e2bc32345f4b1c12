package tmdb

// MovieSummary is the minimal record returned by an upstream list fetch,
// before any enrichment. TV listings use Name/FirstAirDate instead of
// Title/ReleaseDate; DisplayTitle and FirstReleaseDate paper over that.
type MovieSummary struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int64 `json:"genre_ids"`
	VoteAverage  float64 `json:"vote_average"`
	Overview     string  `json:"overview"`
}

// DisplayTitle returns the movie title, falling back to the TV name.
func (m MovieSummary) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// FirstReleaseDate returns the release date, falling back to the TV
// first air date.
func (m MovieSummary) FirstReleaseDate() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// MoviePage is a single page of list results.
type MoviePage struct {
	Page    int            `json:"page"`
	Results []MovieSummary `json:"results"`
}

// Genre is an upstream genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreList is the upstream genre catalogue response.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// MovieDetails is the full per-movie detail record.
type MovieDetails struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	Genres       []Genre `json:"genres"`
	VoteAverage  float64 `json:"vote_average"`
	Runtime      int     `json:"runtime"`
	Budget       int64   `json:"budget"`
	Revenue      int64   `json:"revenue"`
	Tagline      string  `json:"tagline"`
}

// CastCredit is a credited actor on a movie.
type CastCredit struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// CrewCredit is a credited crew member on a movie.
type CrewCredit struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits holds the cast and crew of a movie.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

// Video is a hosted clip attached to a movie.
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoList is the upstream videos response.
type VideoList struct {
	ID      int64   `json:"id"`
	Results []Video `json:"results"`
}

// Person is the upstream person lookup record.
type Person struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	Birthday           string  `json:"birthday"`
	Deathday           string  `json:"deathday"`
	Gender             int     `json:"gender"`
	KnownForDepartment string  `json:"known_for_department"`
	PlaceOfBirth       string  `json:"place_of_birth"`
	Popularity         float64 `json:"popularity"`
	ProfilePath        *string `json:"profile_path"`
	Homepage           *string `json:"homepage"`
}
