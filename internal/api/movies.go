package api

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-resty/resty/v2"

	coreconfig "funbot/core/config"
	"funbot/core/logger"
)

// MovieClient fetches popular movies from the catalog provider.
type MovieClient struct {
	http       *resty.Client
	apiKey     string
	posterBase string
}

// NewMovieClient builds a client for the movie catalog.
func NewMovieClient(cfg coreconfig.MoviesConfig) *MovieClient {
	return &MovieClient{
		http:       newRestyClient(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		posterBase: cfg.PosterBaseURL,
	}
}

// Movie is a single catalog entry. Overview and PosterPath may be absent.
type Movie struct {
	Title      string  `json:"title"`
	Overview   *string `json:"overview"`
	PosterPath *string `json:"poster_path"`
}

// Popular returns one page of popular movies, localized to Russian.
func (c *MovieClient) Popular(ctx context.Context, page int) ([]Movie, error) {
	var payload struct {
		Results []Movie `json:"results"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":  c.apiKey,
			"language": "ru-RU",
			"page":     strconv.Itoa(page),
		}).
		SetResult(&payload).
		Get("/movie/popular")
	if err != nil {
		return nil, fmt.Errorf("movies: %w", err)
	}
	if resp.IsError() {
		logger.Warn(ctx, "api", "movies.fetch.failed",
			slog.Int("status", resp.StatusCode()),
			slog.Int("page", page),
		)
		return nil, fmt.Errorf("movies: status %d", resp.StatusCode())
	}
	return payload.Results, nil
}

// PosterURL resolves a movie's poster to an absolute URL, or "" when it has none.
func (c *MovieClient) PosterURL(m Movie) string {
	if m.PosterPath == nil || *m.PosterPath == "" {
		return ""
	}
	return c.posterBase + *m.PosterPath
}
