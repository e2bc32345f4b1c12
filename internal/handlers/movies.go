package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rajeshbyreddy95/server/internal/common/logging"
	"github.com/rajeshbyreddy95/server/internal/enrich"
)

// Home confirms the server is up.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.respondMessage(w, http.StatusOK, "Server is running")
}

// Movies returns the popular movies page, each item enriched with its
// details and credits.
// @Summary List popular movies
// @Produce json
// @Success 200 {array} models.Movie
// @Failure 500 {object} handlers.messageResponse
// @Router /movies [get]
func (h *Handlers) Movies(w http.ResponseWriter, r *http.Request) {
	bases, err := h.tmdb.Popular(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch movies")
		return
	}

	movies := h.enricher.BuildList(r.Context(), bases)
	h.respondJSON(w, http.StatusOK, movies)
}

// MovieDetails returns the full detail record for one movie.
// @Summary Get movie details
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.MovieDetails
// @Failure 400 {object} handlers.messageResponse
// @Failure 500 {object} handlers.messageResponse
// @Router /movieDetails/{id} [get]
func (h *Handlers) MovieDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	details, err := h.enricher.EnrichDetails(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch movie details")
		return
	}
	h.respondJSON(w, http.StatusOK, details)
}

// Trending returns this week's trending movies, served from the
// single-slot cache while it is fresh.
// @Summary List trending movies
// @Produce json
// @Success 200 {array} models.Summary
// @Failure 500 {object} handlers.messageResponse
// @Router /trending [get]
func (h *Handlers) Trending(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.trending.Get(r.Context()); ok {
		h.respondJSON(w, http.StatusOK, cached)
		return
	}

	bases, err := h.tmdb.TrendingWeekly(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch trending movies")
		return
	}

	summaries := h.enricher.SummarizeAll(bases, enrich.WithGenres)
	if err := h.trending.Put(r.Context(), summaries); err != nil {
		h.logger.Warn("failed to cache trending list", logging.Err(err))
	}
	h.respondJSON(w, http.StatusOK, summaries)
}

// Cast returns a reshaped person record.
// @Summary Get cast member details
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} models.Person
// @Failure 400 {object} handlers.messageResponse
// @Failure 500 {object} handlers.messageResponse
// @Router /cast/{id} [get]
func (h *Handlers) Cast(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid cast ID")
		return
	}

	person, err := h.tmdb.Person(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch cast details")
		return
	}
	h.respondJSON(w, http.StatusOK, h.enricher.ReshapePerson(person))
}

// Series returns the popular TV series page.
// @Summary List popular series
// @Produce json
// @Success 200 {array} models.Summary
// @Failure 500 {object} handlers.messageResponse
// @Router /series [get]
func (h *Handlers) Series(w http.ResponseWriter, r *http.Request) {
	bases, err := h.tmdb.PopularSeries(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch series")
		return
	}
	h.respondJSON(w, http.StatusOK, h.enricher.SummarizeAll(bases, enrich.PlainSummary))
}

// Upcoming returns the upcoming movies page.
// @Summary List upcoming movies
// @Produce json
// @Success 200 {array} models.Summary
// @Failure 500 {object} handlers.messageResponse
// @Router /upcoming [get]
func (h *Handlers) Upcoming(w http.ResponseWriter, r *http.Request) {
	bases, err := h.tmdb.Upcoming(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch upcoming movies")
		return
	}
	h.respondJSON(w, http.StatusOK, h.enricher.SummarizeAll(bases, enrich.PlainSummary))
}

// TopRated returns the top rated movies page.
// @Summary List top rated movies
// @Produce json
// @Success 200 {array} models.Summary
// @Failure 500 {object} handlers.messageResponse
// @Router /top-rated [get]
func (h *Handlers) TopRated(w http.ResponseWriter, r *http.Request) {
	bases, err := h.tmdb.TopRated(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch top-rated movies")
		return
	}
	h.respondJSON(w, http.StatusOK, h.enricher.SummarizeAll(bases, enrich.PlainSummary))
}

// Genre returns the most popular movies for one genre.
// @Summary List movies by genre
// @Produce json
// @Param genreId path int true "Genre ID"
// @Success 200 {array} models.Summary
// @Failure 400 {object} handlers.messageResponse
// @Failure 500 {object} handlers.messageResponse
// @Router /genre/{genreId} [get]
func (h *Handlers) Genre(w http.ResponseWriter, r *http.Request) {
	genreID, err := strconv.ParseInt(mux.Vars(r)["genreId"], 10, 64)
	if err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid genre ID")
		return
	}

	bases, err := h.tmdb.DiscoverByGenre(r.Context(), genreID)
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch genre movies")
		return
	}
	h.respondJSON(w, http.StatusOK, h.enricher.SummarizeAll(bases, enrich.WithGenresAndOverview))
}

// Genres returns the upstream genre catalogue.
// @Summary List genres
// @Produce json
// @Success 200 {array} models.Genre
// @Failure 500 {object} handlers.messageResponse
// @Router /genres [get]
func (h *Handlers) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.tmdb.Genres(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch genres")
		return
	}
	h.respondJSON(w, http.StatusOK, genres)
}

// HealthCheck reports process and store health.
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok"}
	code := http.StatusOK
	if err := h.storage.Health(r.Context()); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	}
	h.respondJSON(w, code, status)
}
