package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	coreconfig "funbot/core/config"
	"funbot/core/logger"
)

// GeocodeClient resolves free-form city names to coordinates.
type GeocodeClient struct {
	http *resty.Client
}

// NewGeocodeClient builds a client for the geocoding provider.
func NewGeocodeClient(cfg coreconfig.WeatherConfig) *GeocodeClient {
	return &GeocodeClient{http: newRestyClient(cfg.GeocodeURL)}
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup returns the coordinates of the first match for the given city.
// A city the provider does not know yields found=false without an error.
func (c *GeocodeClient) Lookup(ctx context.Context, city string) (lat, lon string, found bool, err error) {
	var places []place
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      city,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&places).
		Get("/search")
	if err != nil {
		return "", "", false, fmt.Errorf("geocode: %w", err)
	}
	if resp.IsError() {
		logger.Warn(ctx, "api", "geocode.failed", slog.Int("status", resp.StatusCode()))
		return "", "", false, fmt.Errorf("geocode: status %d", resp.StatusCode())
	}
	if len(places) == 0 || places[0].Lat == "" {
		return "", "", false, nil
	}
	return places[0].Lat, places[0].Lon, true, nil
}
