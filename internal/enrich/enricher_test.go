package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajeshbyreddy95/server/internal/tmdb"
)

const testImageBase = "https://images.test"

func newTestEnricher(t *testing.T, handler http.HandlerFunc, pageSize int) (*Enricher, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})
	return New(client, testImageBase, pageSize, nil), server
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func strPtr(s string) *string { return &s }

func baseSummary() tmdb.MovieSummary {
	return tmdb.MovieSummary{
		ID:          603,
		Title:       "The Matrix",
		PosterPath:  strPtr("/matrix.jpg"),
		ReleaseDate: "1999-03-31",
		VoteAverage: 8.2,
	}
}

func TestEnrich_MergesDetailsAndCredits(t *testing.T) {
	cast := make([]map[string]interface{}, 0, 7)
	for i := 0; i < 7; i++ {
		cast = append(cast, map[string]interface{}{
			"id":           100 + i,
			"name":         fmt.Sprintf("Actor %d", i),
			"character":    fmt.Sprintf("Role %d", i),
			"profile_path": fmt.Sprintf("/actor%d.jpg", i),
		})
	}

	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/603":
			writeJSON(t, w, map[string]interface{}{
				"id":           603,
				"title":        "The Matrix",
				"release_date": "1999-03-31",
				"genres":       []map[string]interface{}{{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}},
				"vote_average": 8.2,
			})
		case "/movie/603/credits":
			writeJSON(t, w, map[string]interface{}{
				"id": 603,
				"cast": cast,
				"crew": []map[string]interface{}{
					{"name": "Joel Silver", "job": "Producer"},
					{"name": "Lana Wachowski", "job": "Director"},
					{"name": "Lilly Wachowski", "job": "Director"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}, 10)

	movie := enricher.Enrich(context.Background(), baseSummary())

	assert.Equal(t, int64(603), movie.ID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, "1999", movie.ReleaseYear)
	assert.Equal(t, []string{"Action", "Science Fiction"}, movie.Genres)
	assert.Equal(t, 8.2, movie.Rating)
	assert.Equal(t, "Lana Wachowski", movie.Director, "first credited director wins")
	require.Len(t, movie.Cast, ListCastLimit)
	assert.Equal(t, "Actor 0", movie.Cast[0].Name)
	assert.Empty(t, movie.Cast[0].Character, "list view omits character names")
	require.NotNil(t, movie.Cast[0].Profile)
	assert.Equal(t, testImageBase+"/actor0.jpg", *movie.Cast[0].Profile)
	require.NotNil(t, movie.Poster)
	assert.Equal(t, testImageBase+"/matrix.jpg", *movie.Poster)
}

func TestEnrich_DetailsFailureDegrades(t *testing.T) {
	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/603/credits":
			writeJSON(t, w, map[string]interface{}{
				"id":   603,
				"crew": []map[string]interface{}{{"name": "Lana Wachowski", "job": "Director"}},
			})
		default:
			http.Error(w, "upstream down", http.StatusInternalServerError)
		}
	}, 10)

	movie := enricher.Enrich(context.Background(), baseSummary())

	assert.Equal(t, int64(603), movie.ID)
	assert.Equal(t, "1999", movie.ReleaseYear, "year falls back to the base item")
	assert.Empty(t, movie.Genres)
	assert.Equal(t, 8.2, movie.Rating, "rating falls back to the base item")
	assert.Equal(t, "Lana Wachowski", movie.Director, "credits still merge")
}

func TestEnrich_CreditsFailureDegrades(t *testing.T) {
	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/603":
			writeJSON(t, w, map[string]interface{}{
				"id":           603,
				"title":        "The Matrix",
				"release_date": "1999-03-31",
				"vote_average": 8.2,
			})
		default:
			http.Error(w, "upstream down", http.StatusInternalServerError)
		}
	}, 10)

	movie := enricher.Enrich(context.Background(), baseSummary())

	assert.Equal(t, DirectorFallback, movie.Director)
	assert.NotNil(t, movie.Cast)
	assert.Empty(t, movie.Cast)
}

func TestEnrich_BothFailuresServeFallbackRecord(t *testing.T) {
	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}, 10)

	base := baseSummary()
	base.ReleaseDate = ""
	movie := enricher.Enrich(context.Background(), base)

	assert.Equal(t, base.ID, movie.ID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, YearFallback, movie.ReleaseYear)
	assert.Equal(t, DirectorFallback, movie.Director)
	assert.Empty(t, movie.Genres)
	assert.Empty(t, movie.Cast)
}

func TestEnrichDetails_FullRecord(t *testing.T) {
	cast := make([]map[string]interface{}, 0, 12)
	for i := 0; i < 12; i++ {
		cast = append(cast, map[string]interface{}{
			"id":        200 + i,
			"name":      fmt.Sprintf("Actor %d", i),
			"character": fmt.Sprintf("Role %d", i),
		})
	}

	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/27205":
			writeJSON(t, w, map[string]interface{}{
				"id":            27205,
				"title":         "Inception",
				"overview":      "A thief who steals corporate secrets.",
				"poster_path":   "/inception.jpg",
				"backdrop_path": "/inception-banner.jpg",
				"release_date":  "2010-07-15",
				"genres":        []map[string]interface{}{{"id": 28, "name": "Action"}},
				"vote_average":  8.3,
				"runtime":       148,
				"budget":        160000000,
				"revenue":       825532764,
				"tagline":       "Your mind is the scene of the crime.",
			})
		case "/movie/27205/credits":
			writeJSON(t, w, map[string]interface{}{
				"id":   27205,
				"cast": cast,
				"crew": []map[string]interface{}{
					{"name": "Emma Thomas", "job": "Producer"},
					{"name": "Christopher Nolan", "job": "Director"},
				},
			})
		case "/movie/27205/videos":
			writeJSON(t, w, map[string]interface{}{
				"id": 27205,
				"results": []map[string]interface{}{
					{"key": "teaser1", "site": "YouTube", "type": "Teaser"},
					{"key": "vimeo1", "site": "Vimeo", "type": "Trailer"},
					{"key": "8hP9D6kZseM", "site": "YouTube", "type": "Trailer"},
					{"key": "second", "site": "YouTube", "type": "Trailer"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}, 10)

	details, err := enricher.EnrichDetails(context.Background(), 27205)
	require.NoError(t, err)

	assert.Equal(t, int64(27205), details.ID)
	assert.Equal(t, "Inception", details.Title)
	assert.Equal(t, "A thief who steals corporate secrets.", details.Overview)
	assert.Equal(t, "2010", details.ReleaseYear)
	assert.Equal(t, 148, details.Runtime)
	assert.Equal(t, int64(160000000), details.Budget)
	assert.Equal(t, int64(825532764), details.Revenue)
	assert.Equal(t, "Your mind is the scene of the crime.", details.Tagline)
	assert.Equal(t, "Christopher Nolan", details.Director)
	require.Len(t, details.Cast, DetailCastLimit)
	assert.Equal(t, int64(200), details.Cast[0].ID)
	assert.Equal(t, "Role 0", details.Cast[0].Character, "detail view keeps character names")
	require.NotNil(t, details.Trailer)
	assert.Equal(t, "https://www.youtube.com/watch?v=8hP9D6kZseM", *details.Trailer,
		"first YouTube trailer wins")
	require.NotNil(t, details.Banner)
	assert.Equal(t, testImageBase+"/inception-banner.jpg", *details.Banner)
}

func TestEnrichDetails_DetailsFailureSurfaces(t *testing.T) {
	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}, 10)

	details, err := enricher.EnrichDetails(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, details)
}

func TestEnrichDetails_SideBranchFailuresDegrade(t *testing.T) {
	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/42" {
			writeJSON(t, w, map[string]interface{}{
				"id":    42,
				"title": "Untitled",
			})
			return
		}
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}, 10)

	details, err := enricher.EnrichDetails(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, OverviewFallback, details.Overview)
	assert.Equal(t, YearFallback, details.ReleaseYear)
	assert.Equal(t, DirectorFallback, details.Director)
	assert.Empty(t, details.Cast)
	assert.Nil(t, details.Trailer)
	assert.Nil(t, details.Poster)
}

func TestEnrichDetails_NoYouTubeTrailer(t *testing.T) {
	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/42":
			writeJSON(t, w, map[string]interface{}{"id": 42, "title": "Untitled"})
		case "/movie/42/videos":
			writeJSON(t, w, map[string]interface{}{
				"id": 42,
				"results": []map[string]interface{}{
					{"key": "clip", "site": "YouTube", "type": "Clip"},
					{"key": "vimeo", "site": "Vimeo", "type": "Trailer"},
				},
			})
		default:
			writeJSON(t, w, map[string]interface{}{"id": 42})
		}
	}, 10)

	details, err := enricher.EnrichDetails(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, details.Trailer)
}

func TestBuildList_PreservesOrderAndCapsAtPageSize(t *testing.T) {
	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		// Odd-numbered movies fail both sub-requests.
		var id int64
		fmt.Sscanf(r.URL.Path, "/movie/%d", &id)
		if id%2 == 1 {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, map[string]interface{}{
			"id":           id,
			"release_date": "2020-01-01",
		})
	}, 10)

	bases := make([]tmdb.MovieSummary, 0, 15)
	for i := 0; i < 15; i++ {
		bases = append(bases, tmdb.MovieSummary{
			ID:    int64(i),
			Title: fmt.Sprintf("Movie %d", i),
		})
	}

	movies := enricher.BuildList(context.Background(), bases)

	require.Len(t, movies, 10, "list is capped at the page size")
	for i, movie := range movies {
		assert.Equal(t, int64(i), movie.ID, "output order matches input order")
		assert.Equal(t, fmt.Sprintf("Movie %d", i), movie.Title)
		if i%2 == 1 {
			assert.Equal(t, YearFallback, movie.ReleaseYear, "failed item degrades to fallback")
		} else {
			assert.Equal(t, "2020", movie.ReleaseYear)
		}
	}
}

func TestBuildList_ShortPagePassesThrough(t *testing.T) {
	enricher, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}, 10)

	movies := enricher.BuildList(context.Background(), []tmdb.MovieSummary{{ID: 1}, {ID: 2}})
	assert.Len(t, movies, 2)
}

func TestImageURL(t *testing.T) {
	enricher := &Enricher{images: testImageBase}

	assert.Nil(t, enricher.imageURL(nil))
	assert.Nil(t, enricher.imageURL(strPtr("")))

	url := enricher.imageURL(strPtr("/poster.jpg"))
	require.NotNil(t, url)
	assert.Equal(t, testImageBase+"/poster.jpg", *url)
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "1999", releaseYear("1999-03-31"))
	assert.Equal(t, YearFallback, releaseYear(""))
	assert.Equal(t, YearFallback, releaseYear("99"))
}

func TestDirector(t *testing.T) {
	assert.Equal(t, DirectorFallback, director(nil))
	assert.Equal(t, DirectorFallback, director([]tmdb.CrewCredit{{Name: "A", Job: "Producer"}}))
	assert.Equal(t, "B", director([]tmdb.CrewCredit{
		{Name: "A", Job: "Producer"},
		{Name: "B", Job: "Director"},
		{Name: "C", Job: "Director"},
	}))
}
