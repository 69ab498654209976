package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	coreconfig "funbot/core/config"
	"funbot/core/logger"
)

// WeatherClient fetches current weather facts by coordinates.
type WeatherClient struct {
	http   *resty.Client
	apiKey string
}

// NewWeatherClient builds a client for the forecast provider.
func NewWeatherClient(cfg coreconfig.WeatherConfig) *WeatherClient {
	return &WeatherClient{
		http:   newRestyClient(cfg.BaseURL),
		apiKey: cfg.APIKey,
	}
}

// Fact describes current conditions at a location.
type Fact struct {
	Temp       int     `json:"temp"`
	FeelsLike  int     `json:"feels_like"`
	Condition  string  `json:"condition"`
	WindSpeed  float64 `json:"wind_speed"`
	PressureMM int     `json:"pressure_mm"`
	Humidity   int     `json:"humidity"`
}

// Current returns the weather fact for the given coordinates. Coordinates are
// passed through verbatim as returned by the geocoder.
func (c *WeatherClient) Current(ctx context.Context, lat, lon string) (Fact, error) {
	var payload struct {
		Fact Fact `json:"fact"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Yandex-API-Key", c.apiKey).
		SetQueryParams(map[string]string{"lat": lat, "lon": lon}).
		SetResult(&payload).
		Get("/forecast")
	if err != nil {
		return Fact{}, fmt.Errorf("weather: %w", err)
	}
	if resp.IsError() {
		logger.Warn(ctx, "api", "weather.fetch.failed", slog.Int("status", resp.StatusCode()))
		return Fact{}, fmt.Errorf("weather: status %d", resp.StatusCode())
	}
	return payload.Fact, nil
}
