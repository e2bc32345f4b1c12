// Package enrich implements the enrichment fan-out engine and the
// aggregate list builder. For one item the engine issues its upstream
// sub-requests concurrently, waits for all of them to settle, and merges
// whatever arrived into a total record: a failed sub-request degrades the
// affected fields to their documented defaults, it never fails the item.
package enrich

import (
	"context"
	"sync"

	"github.com/rajeshbyreddy95/server/internal/common/logging"
	"github.com/rajeshbyreddy95/server/internal/models"
	"github.com/rajeshbyreddy95/server/internal/tmdb"
)

const (
	// ListCastLimit caps the credited cast on list views.
	ListCastLimit = 5
	// DetailCastLimit caps the credited cast on the detail view.
	DetailCastLimit = 10

	// DirectorFallback is served when no crew member is credited as director.
	DirectorFallback = "Unknown"
	// YearFallback is served when the upstream release date is absent.
	YearFallback = "N/A"
	// OverviewFallback is served when the upstream overview is absent.
	OverviewFallback = "No overview available"

	trailerSite   = "YouTube"
	trailerType   = "Trailer"
	trailerPrefix = "https://www.youtube.com/watch?v="
)

// Enricher merges upstream sub-request results into normalized records.
type Enricher struct {
	client   *tmdb.Client
	images   string
	pageSize int
	logger   logging.Logger
}

// New creates an Enricher. pageSize bounds how many items a list build
// will enrich; it is the only fan-out limiter, so total upstream volume
// per request is at most pageSize items times two sub-requests each.
func New(client *tmdb.Client, imageBaseURL string, pageSize int, logger logging.Logger) *Enricher {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Enricher{
		client:   client,
		images:   imageBaseURL,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Enrich augments one base item with its details and credits. Both
// sub-requests run concurrently and the merge is total: whichever branch
// failed contributes defaults instead of data.
func (e *Enricher) Enrich(ctx context.Context, base tmdb.MovieSummary) models.Movie {
	var (
		wg      sync.WaitGroup
		details *tmdb.MovieDetails
		credits *tmdb.Credits
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		d, err := e.client.Details(ctx, base.ID)
		if err != nil {
			e.logger.Warn("details sub-request failed",
				logging.Int64("movie_id", base.ID), logging.Err(err))
			return
		}
		details = d
	}()
	go func() {
		defer wg.Done()
		c, err := e.client.Credits(ctx, base.ID)
		if err != nil {
			e.logger.Warn("credits sub-request failed",
				logging.Int64("movie_id", base.ID), logging.Err(err))
			return
		}
		credits = c
	}()
	wg.Wait()

	movie := e.fallbackMovie(base)
	if details != nil {
		movie.ReleaseYear = releaseYear(details.ReleaseDate)
		movie.Genres = genreNames(details.Genres)
		movie.Rating = details.VoteAverage
	}
	if credits != nil {
		movie.Director = director(credits.Crew)
		movie.Cast = e.castMembers(credits.Cast, ListCastLimit, false)
	}
	return movie
}

// EnrichDetails builds the full detail-view record for one movie. The
// details call is the base item here, so its failure is the only one
// that surfaces; credits and videos degrade to defaults.
func (e *Enricher) EnrichDetails(ctx context.Context, id int64) (*models.MovieDetails, error) {
	var (
		wg         sync.WaitGroup
		details    *tmdb.MovieDetails
		detailsErr error
		credits    *tmdb.Credits
		videos     []tmdb.Video
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		details, detailsErr = e.client.Details(ctx, id)
	}()
	go func() {
		defer wg.Done()
		c, err := e.client.Credits(ctx, id)
		if err != nil {
			e.logger.Warn("credits sub-request failed",
				logging.Int64("movie_id", id), logging.Err(err))
			return
		}
		credits = c
	}()
	go func() {
		defer wg.Done()
		v, err := e.client.Videos(ctx, id)
		if err != nil {
			e.logger.Warn("videos sub-request failed",
				logging.Int64("movie_id", id), logging.Err(err))
			return
		}
		videos = v
	}()
	wg.Wait()

	if detailsErr != nil {
		return nil, detailsErr
	}

	record := &models.MovieDetails{
		ID:          details.ID,
		Title:       details.Title,
		Overview:    overview(details.Overview),
		Poster:      e.imageURL(details.PosterPath),
		Banner:      e.imageURL(details.BackdropPath),
		ReleaseYear: releaseYear(details.ReleaseDate),
		Genres:      genreNames(details.Genres),
		Rating:      details.VoteAverage,
		Runtime:     details.Runtime,
		Director:    DirectorFallback,
		Cast:        []models.CastMember{},
		Trailer:     trailerURL(videos),
		Budget:      details.Budget,
		Revenue:     details.Revenue,
		Tagline:     details.Tagline,
	}
	if credits != nil {
		record.Director = director(credits.Crew)
		record.Cast = e.castMembers(credits.Cast, DetailCastLimit, true)
	}
	return record, nil
}

// BuildList enriches a page of base items, capped at the configured page
// size. Items are enriched in parallel and the output always has the
// same length and order as the (capped) input; an item whose enrichment
// degraded entirely still appears as its fallback record.
func (e *Enricher) BuildList(ctx context.Context, bases []tmdb.MovieSummary) []models.Movie {
	if len(bases) > e.pageSize {
		bases = bases[:e.pageSize]
	}

	movies := make([]models.Movie, len(bases))
	var wg sync.WaitGroup
	for i, base := range bases {
		wg.Add(1)
		go func(i int, base tmdb.MovieSummary) {
			defer wg.Done()
			movies[i] = e.Enrich(ctx, base)
		}(i, base)
	}
	wg.Wait()
	return movies
}

// fallbackMovie is the minimal record known from the base item alone,
// with every enrichment field at its documented default.
func (e *Enricher) fallbackMovie(base tmdb.MovieSummary) models.Movie {
	return models.Movie{
		ID:          base.ID,
		Title:       base.DisplayTitle(),
		Poster:      e.imageURL(base.PosterPath),
		Banner:      e.imageURL(base.BackdropPath),
		ReleaseYear: releaseYear(base.FirstReleaseDate()),
		Genres:      []string{},
		Rating:      base.VoteAverage,
		Director:    DirectorFallback,
		Cast:        []models.CastMember{},
	}
}

// imageURL absolutizes an upstream image path. An absent or empty path
// stays nil; a URL is never built from an empty path.
func (e *Enricher) imageURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	full := e.images + *path
	return &full
}

func (e *Enricher) castMembers(cast []tmdb.CastCredit, limit int, detail bool) []models.CastMember {
	if len(cast) > limit {
		cast = cast[:limit]
	}
	members := make([]models.CastMember, 0, len(cast))
	for _, actor := range cast {
		member := models.CastMember{
			Name:    actor.Name,
			Profile: e.imageURL(actor.ProfilePath),
		}
		if detail {
			member.ID = actor.ID
			member.Character = actor.Character
		}
		members = append(members, member)
	}
	return members
}

// director selects the first crew member credited as Director.
func director(crew []tmdb.CrewCredit) string {
	for _, member := range crew {
		if member.Job == "Director" {
			return member.Name
		}
	}
	return DirectorFallback
}

// trailerURL selects the first YouTube trailer and builds its watch URL.
func trailerURL(videos []tmdb.Video) *string {
	for _, video := range videos {
		if video.Type == trailerType && video.Site == trailerSite && video.Key != "" {
			url := trailerPrefix + video.Key
			return &url
		}
	}
	return nil
}

func genreNames(genres []tmdb.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, genre := range genres {
		names = append(names, genre.Name)
	}
	return names
}

// releaseYear extracts "YYYY" from an upstream date string.
func releaseYear(date string) string {
	if len(date) < 4 {
		return YearFallback
	}
	return date[:4]
}

func overview(text string) string {
	if text == "" {
		return OverviewFallback
	}
	return text
}
