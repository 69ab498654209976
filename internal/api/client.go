// Package api contains thin HTTP clients for the external services the bot
// talks to: cat images, geocoding, weather forecasts, and the movie catalog.
package api

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "funbot/1.0"

func newRestyClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", userAgent)
}
