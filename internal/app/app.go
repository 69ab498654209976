// Package app assembles the bot: menu wiring, conversational state
// handlers, and the external service clients behind them.
package app

import (
	"context"
	"math/rand/v2"

	coreconfig "funbot/core/config"
	tg "funbot/core/telegram"
	"funbot/core/telegram/router"
	"funbot/core/telegram/state"
	"funbot/internal/api"
	"funbot/internal/quiz"
)

// CatProvider supplies random cat image URLs.
type CatProvider interface {
	Random(ctx context.Context) (string, error)
}

// Geocoder resolves city names to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, city string) (lat, lon string, found bool, err error)
}

// WeatherProvider supplies current weather facts.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon string) (api.Fact, error)
}

// MovieProvider supplies pages of popular movies.
type MovieProvider interface {
	Popular(ctx context.Context, page int) ([]api.Movie, error)
	PosterURL(m api.Movie) string
}

// App wires bot handlers to their collaborators.
type App struct {
	cfg       *coreconfig.Config
	store     state.Store
	questions []quiz.Question

	cats    CatProvider
	geo     Geocoder
	weather WeatherProvider
	movies  MovieProvider

	// randInt returns a uniform value in [0, n).
	randInt func(n int) int
}

// New builds the application with real service clients.
func New(cfg *coreconfig.Config, questions []quiz.Question) *App {
	return &App{
		cfg:       cfg,
		store:     state.NewMemoryStore(cfg.Session.TTL()),
		questions: questions,
		cats:      api.NewCatClient(cfg.Cats),
		geo:       api.NewGeocodeClient(cfg.Weather),
		weather:   api.NewWeatherClient(cfg.Weather),
		movies:    api.NewMovieClient(cfg.Movies),
		randInt:   rand.IntN,
	}
}

// TelegramRunOptions builds the bot runtime configuration.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	a.registerCommands(reg)
	a.registerMenu(reg)

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.TextRoute(reg, router.TextOptions{
		Store:       a.store,
		States:      a,
		ReturnLabel: labelReturn,
		OnReturn:    a.handleReturn,
	}))

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ tg.Runtime) error {
			go state.RunSweeper(ctx, a.store, a.cfg.Session.SweepInterval())
			return nil
		},
	}, nil
}
