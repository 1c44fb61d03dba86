package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultLanguage = "pt-BR"

// Result caps applied by the client, not the API.
const (
	CastLimit    = 10
	PopularLimit = 10
	PreviewLimit = 10
)

// Client is a TMDB API client.
type Client struct {
	apiKey       string
	language     string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	log          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage sets the language tag sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithImageBaseURL sets the image host used by PosterURL/ProfileURL on the client.
func WithImageBaseURL(url string) Option {
	return func(c *Client) {
		c.imageBaseURL = url
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		language:     defaultLanguage,
		baseURL:      defaultBaseURL,
		imageBaseURL: DefaultImageBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: slog.Default().With("component", "tmdb"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PosterURL builds an artwork URL on the configured image host.
func (c *Client) PosterURL(size, path string) string {
	return ImageURL(c.imageBaseURL, size, path)
}

type listResponse struct {
	Results *[]MovieSummary `json:"results"`
}

type genreResponse struct {
	Genres *[]Genre `json:"genres"`
}

type creditsResponse struct {
	Cast *[]CastMember `json:"cast"`
}

// MovieDetail fetches full movie metadata by TMDB ID.
func (c *Client) MovieDetail(ctx context.Context, id int64) (*MovieDetail, error) {
	var movie MovieDetail
	path := fmt.Sprintf("/3/movie/%d", id)
	if err := c.get(ctx, "movie detail", path, nil, &movie); err != nil {
		return nil, err
	}
	if movie.ID == 0 {
		return nil, &ParseError{Resource: "movie detail", Err: errors.New("missing id")}
	}
	return &movie, nil
}

// MovieCast fetches the first CastLimit credited actors, in billing order.
func (c *Client) MovieCast(ctx context.Context, id int64) ([]CastMember, error) {
	var resp creditsResponse
	path := fmt.Sprintf("/3/movie/%d/credits", id)
	if err := c.get(ctx, "movie credits", path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Cast == nil {
		return nil, &ParseError{Resource: "movie credits", Err: errors.New("missing cast")}
	}
	return capSlice(*resp.Cast, CastLimit), nil
}

// Search finds movies by free text. A blank query resolves to an empty
// result without a request.
func (c *Client) Search(ctx context.Context, query string) ([]MovieSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		c.log.Debug("search skipped", "reason", ErrEmptyQuery)
		return []MovieSummary{}, nil
	}
	return c.list(ctx, "search", "/3/search/movie", url.Values{"query": {query}}, 0)
}

// Popular returns the first PopularLimit popular movies.
func (c *Client) Popular(ctx context.Context) ([]MovieSummary, error) {
	return c.list(ctx, "popular", "/3/movie/popular", nil, PopularLimit)
}

// Upcoming returns every movie on the first page of upcoming releases.
func (c *Client) Upcoming(ctx context.Context) ([]MovieSummary, error) {
	return c.list(ctx, "upcoming", "/3/movie/upcoming", nil, 0)
}

// Genres returns the movie genre list.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var resp genreResponse
	if err := c.get(ctx, "genre list", "/3/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Genres == nil {
		return nil, &ParseError{Resource: "genre list", Err: errors.New("missing genres")}
	}
	return *resp.Genres, nil
}

// MoviesByGenre discovers movies in a genre. limit <= 0 means uncapped.
func (c *Client) MoviesByGenre(ctx context.Context, genreID int, limit int) ([]MovieSummary, error) {
	params := url.Values{"with_genres": {strconv.Itoa(genreID)}}
	return c.list(ctx, "discover", "/3/discover/movie", params, limit)
}

func (c *Client) list(ctx context.Context, resource, path string, params url.Values, limit int) ([]MovieSummary, error) {
	var resp listResponse
	if err := c.get(ctx, resource, path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, &ParseError{Resource: resource, Err: errors.New("missing results")}
	}
	return capSlice(*resp.Results, limit), nil
}

// get performs one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, resource, path string, params url.Values, out any) error {
	start := time.Now()

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("request failed", "resource", resource, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
		return &RemoteError{Resource: resource, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Resource: resource, Err: err}
	}

	c.log.Debug("request done", "resource", resource, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func capSlice[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
