// Package tmdb implements the client for the upstream movie metadata API.
// Every call carries its own timeout; a timed-out or failed call is
// reported as a typed error and never retried.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rajeshbyreddy95/server/internal/common/errors"
)

// ClientConfig holds upstream client configuration
type ClientConfig struct {
	BaseURL             string
	APIKey              string
	RequestTimeout      time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// DefaultClientConfig returns default upstream client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		RequestTimeout:      8 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// Client is an HTTP client for the metadata API. It is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg ClientConfig) *Client {
	defaults := DefaultClientConfig()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = defaults.MaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost <= 0 {
		cfg.MaxIdleConnsPerHost = defaults.MaxIdleConnsPerHost
	}
	if cfg.IdleConnTimeout <= 0 {
		cfg.IdleConnTimeout = defaults.IdleConnTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timeout:    cfg.RequestTimeout,
	}
}

// get performs a single upstream call with the client's per-request
// timeout and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", "en-US")

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.InternalError("failed to create upstream request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.TimeoutError("upstream call " + path)
		}
		return errors.UpstreamError("upstream request failed", err).WithContext("path", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.UpstreamError("failed to read upstream response", err).WithContext("path", path)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.UpstreamError(fmt.Sprintf("upstream returned HTTP %d", resp.StatusCode), nil).
			WithContext("path", path).
			WithContext("status", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.UpstreamError("failed to decode upstream response", err).WithContext("path", path)
	}

	return nil
}

// Popular fetches the first page of popular movies.
func (c *Client) Popular(ctx context.Context) ([]MovieSummary, error) {
	return c.page(ctx, "/movie/popular")
}

// TrendingWeekly fetches this week's trending movies.
func (c *Client) TrendingWeekly(ctx context.Context) ([]MovieSummary, error) {
	return c.page(ctx, "/trending/movie/week")
}

// Upcoming fetches the first page of upcoming movies.
func (c *Client) Upcoming(ctx context.Context) ([]MovieSummary, error) {
	return c.page(ctx, "/movie/upcoming")
}

// TopRated fetches the first page of top rated movies.
func (c *Client) TopRated(ctx context.Context) ([]MovieSummary, error) {
	return c.page(ctx, "/movie/top_rated")
}

// PopularSeries fetches the first page of popular TV series.
func (c *Client) PopularSeries(ctx context.Context) ([]MovieSummary, error) {
	return c.page(ctx, "/tv/popular")
}

// DiscoverByGenre fetches the first page of movies for a genre,
// sorted by popularity.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int64) ([]MovieSummary, error) {
	query := url.Values{}
	query.Set("with_genres", strconv.FormatInt(genreID, 10))
	query.Set("sort_by", "popularity.desc")
	query.Set("page", "1")

	var page MoviePage
	if err := c.get(ctx, "/discover/movie", query, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Genres fetches the movie genre catalogue.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var list GenreList
	if err := c.get(ctx, "/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}
	return list.Genres, nil
}

// Details fetches the detail record of a movie.
func (c *Client) Details(ctx context.Context, id int64) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Credits fetches the cast and crew of a movie.
func (c *Client) Credits(ctx context.Context, id int64) (*Credits, error) {
	var credits Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// Videos fetches the clips attached to a movie.
func (c *Client) Videos(ctx context.Context, id int64) ([]Video, error) {
	var list VideoList
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", id), nil, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// Person fetches a person record.
func (c *Client) Person(ctx context.Context, id int64) (*Person, error) {
	var person Person
	if err := c.get(ctx, fmt.Sprintf("/person/%d", id), nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (c *Client) page(ctx context.Context, path string) ([]MovieSummary, error) {
	query := url.Values{}
	query.Set("page", "1")

	var page MoviePage
	if err := c.get(ctx, path, query, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
