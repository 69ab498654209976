package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	coreconfig "funbot/core/config"
	"funbot/core/logger"
)

// CatClient fetches random cat images.
type CatClient struct {
	http *resty.Client
}

// NewCatClient builds a client for the cat image provider.
func NewCatClient(cfg coreconfig.CatsConfig) *CatClient {
	return &CatClient{http: newRestyClient(cfg.BaseURL)}
}

type catImage struct {
	URL string `json:"url"`
}

// Random returns the URL of a random cat image.
func (c *CatClient) Random(ctx context.Context) (string, error) {
	var images []catImage
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&images).
		Get("/images/search")
	if err != nil {
		return "", fmt.Errorf("cat api: %w", err)
	}
	if resp.IsError() {
		logger.Warn(ctx, "api", "cats.fetch.failed", slog.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("cat api: status %d", resp.StatusCode())
	}
	if len(images) == 0 || images[0].URL == "" {
		return "", fmt.Errorf("cat api: empty response")
	}
	return images[0].URL, nil
}
