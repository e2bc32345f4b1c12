package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/rajeshbyreddy95/server/internal/auth"
	"github.com/rajeshbyreddy95/server/internal/cache"
	"github.com/rajeshbyreddy95/server/internal/config"
	"github.com/rajeshbyreddy95/server/internal/enrich"
	"github.com/rajeshbyreddy95/server/internal/handlers"
	"github.com/rajeshbyreddy95/server/internal/storage/memory"
	"github.com/rajeshbyreddy95/server/internal/tmdb"
)

// fakeTMDB is an in-process stand-in for the upstream metadata API. It
// counts requests per path so tests can assert what was (not) called.
type fakeTMDB struct {
	mu       sync.Mutex
	requests map[string]int
}

func newFakeTMDB() *fakeTMDB {
	return &fakeTMDB{requests: map[string]int{}}
}

func (f *fakeTMDB) hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *fakeTMDB) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := 0
	for _, n := range f.requests {
		sum += n
	}
	return sum
}

func (f *fakeTMDB) handler() http.HandlerFunc {
	page := func(ids ...int64) map[string]interface{} {
		results := make([]map[string]interface{}, 0, len(ids))
		for _, id := range ids {
			results = append(results, map[string]interface{}{
				"id":           id,
				"title":        fmt.Sprintf("Movie %d", id),
				"release_date": "2020-01-01",
				"genre_ids":    []int64{28},
				"vote_average": 7.5,
				"overview":     "An overview.",
			})
		}
		return map[string]interface{}{"page": 1, "results": results}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests[r.URL.Path]++
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		var payload interface{}

		switch {
		case r.URL.Path == "/movie/popular":
			payload = page(1, 2, 3)
		case r.URL.Path == "/trending/movie/week":
			payload = page(10, 11)
		case r.URL.Path == "/movie/upcoming":
			payload = page(20)
		case r.URL.Path == "/movie/top_rated":
			payload = page(30)
		case r.URL.Path == "/tv/popular":
			payload = page(40)
		case r.URL.Path == "/discover/movie":
			payload = page(50, 51)
		case r.URL.Path == "/genre/movie/list":
			payload = map[string]interface{}{
				"genres": []map[string]interface{}{
					{"id": 28, "name": "Action"},
					{"id": 35, "name": "Comedy"},
				},
			}
		case strings.HasSuffix(r.URL.Path, "/credits"):
			payload = map[string]interface{}{
				"cast": []map[string]interface{}{
					{"id": 100, "name": "Lead Actor", "character": "Lead"},
				},
				"crew": []map[string]interface{}{
					{"name": "The Director", "job": "Director"},
				},
			}
		case strings.HasSuffix(r.URL.Path, "/videos"):
			payload = map[string]interface{}{
				"results": []map[string]interface{}{
					{"key": "trailer123", "site": "YouTube", "type": "Trailer"},
				},
			}
		case strings.HasPrefix(r.URL.Path, "/person/"):
			payload = map[string]interface{}{
				"id":     6384,
				"name":   "Keanu Reeves",
				"gender": 2,
			}
		case strings.HasPrefix(r.URL.Path, "/movie/"):
			var id int64
			fmt.Sscanf(r.URL.Path, "/movie/%d", &id)
			payload = map[string]interface{}{
				"id":           id,
				"title":        fmt.Sprintf("Movie %d", id),
				"overview":     "A detailed overview.",
				"release_date": "2020-01-01",
				"genres":       []map[string]interface{}{{"id": 28, "name": "Action"}},
				"vote_average": 7.5,
				"runtime":      120,
			}
		default:
			http.NotFound(w, r)
			return
		}

		_ = json.NewEncoder(w).Encode(payload)
	}
}

type testApp struct {
	server *httptest.Server
	store  *memory.Adapter
	tmdb   *fakeTMDB
}

func newTestApp(t *testing.T) *testApp {
	upstream := newFakeTMDB()
	upstreamServer := httptest.NewServer(upstream.handler())
	t.Cleanup(upstreamServer.Close)

	cfg := &config.Config{
		Port:          "5000",
		AllowedOrigin: "http://localhost:3000",
		JWTSecret:     "test-secret-that-is-long-enough-123",
	}

	store := memory.New()
	client := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL: upstreamServer.URL,
		APIKey:  "test-key",
	})
	enricher := enrich.New(client, "https://images.test", 10, nil)
	trending := cache.NewTrendingCache(cache.NewLocalCache(time.Minute, time.Minute), time.Minute)
	authService := auth.New(store, cfg.JWTSecret, time.Hour)

	h := handlers.New(store, client, enricher, trending, authService, cfg)

	router := mux.NewRouter()
	router.HandleFunc("/", h.Home).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/movies", h.Movies).Methods("GET")
	router.HandleFunc("/movieDetails/{id}", h.MovieDetails).Methods("GET")
	router.HandleFunc("/trending", h.Trending).Methods("GET")
	router.HandleFunc("/cast/{id}", h.Cast).Methods("GET")
	router.HandleFunc("/series", h.Series).Methods("GET")
	router.HandleFunc("/upcoming", h.Upcoming).Methods("GET")
	router.HandleFunc("/top-rated", h.TopRated).Methods("GET")
	router.HandleFunc("/genre/{genreId}", h.Genre).Methods("GET")
	router.HandleFunc("/genres", h.Genres).Methods("GET")
	router.HandleFunc("/auth/signup", h.Signup).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/auth/me", h.Me).Methods("GET")
	router.HandleFunc("/favourites", h.AddFavourite).Methods("POST")
	router.HandleFunc("/favourites", h.GetFavourites).Methods("GET")
	router.HandleFunc("/favourites/{movieId}", h.RemoveFavourite).Methods("DELETE")

	appServer := httptest.NewServer(router)
	t.Cleanup(appServer.Close)

	return &testApp{server: appServer, store: store, tmdb: upstream}
}

func (a *testApp) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (a *testApp) requestList(t *testing.T, path string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded []map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (a *testApp) signup(t *testing.T, email, username, password string) {
	t.Helper()

	resp, body := a.request(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":           email,
		"username":        username,
		"name":            "Test User",
		"password":        password,
		"confirmPassword": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup failed: %v", body)
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()

	resp, body := a.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
