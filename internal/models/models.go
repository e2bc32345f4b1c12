// Package models defines the response shapes served to the frontend.
// Every field carries a documented default so enriched records are total:
// a failed upstream sub-request leaves the default in place, it never
// removes the key from the response.
package models

// CastMember is a single credited actor. Profile is nil when the
// upstream has no profile image for the person.
type CastMember struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"name"`
	Character string  `json:"character,omitempty"`
	Profile   *string `json:"profile"`
}

// Movie is a fully enriched list item: base fields from the list fetch
// plus details and credits merged in.
type Movie struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Poster      *string      `json:"poster"`
	Banner      *string      `json:"banner"`
	ReleaseYear string       `json:"releaseYear"`
	Genres      []string     `json:"genres"`
	Rating      float64      `json:"rating"`
	Director    string       `json:"director"`
	Cast        []CastMember `json:"cast"`
}

// MovieDetails is the full detail-view record, adding overview, runtime,
// trailer and financials on top of the enriched list fields.
type MovieDetails struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Overview    string       `json:"overview"`
	Poster      *string      `json:"poster"`
	Banner      *string      `json:"banner"`
	ReleaseYear string       `json:"releaseYear"`
	Genres      []string     `json:"genres"`
	Rating      float64      `json:"rating"`
	Runtime     int          `json:"runtime"`
	Director    string       `json:"director"`
	Cast        []CastMember `json:"cast"`
	Trailer     *string      `json:"trailer"`
	Budget      int64        `json:"budget"`
	Revenue     int64        `json:"revenue"`
	Tagline     string       `json:"tagline"`
}

// Summary is the flat list-view record built from a single upstream call,
// with no enrichment fan-out. Genres and Overview are populated only by
// the endpoints whose upstream response carries them.
type Summary struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Poster      *string  `json:"poster"`
	Banner      *string  `json:"banner"`
	ReleaseYear string   `json:"releaseYear"`
	Rating      float64  `json:"rating"`
	Genres      []string `json:"genres,omitempty"`
	Overview    string   `json:"overview,omitempty"`
}

// Person is the reshaped person lookup served by the cast endpoint.
type Person struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Biography    string  `json:"biography"`
	Birthday     string  `json:"birthday"`
	Deathday     string  `json:"deathday"`
	Gender       string  `json:"gender"`
	KnownFor     string  `json:"knownFor"`
	PlaceOfBirth string  `json:"placeOfBirth"`
	Popularity   float64 `json:"popularity"`
	Profile      *string `json:"profile"`
	Homepage     *string `json:"homepage"`
}

// Genre mirrors the upstream genre list entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
