package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// WeatherConfig configures the geocoding and forecast providers.
type WeatherConfig struct {
	APIKey     string `yaml:"api_key" envconfig:"WEATHER_API_KEY"`
	BaseURL    string `yaml:"base_url" envconfig:"WEATHER_BASE_URL"`
	GeocodeURL string `yaml:"geocode_url" envconfig:"GEOCODE_BASE_URL"`
}

// MoviesConfig configures the movie catalog provider.
type MoviesConfig struct {
	APIKey  string `yaml:"api_key" envconfig:"TMDB_API_KEY"`
	BaseURL string `yaml:"base_url" envconfig:"TMDB_BASE_URL"`
	// PosterBaseURL prefixes relative poster paths returned by the catalog.
	PosterBaseURL string `yaml:"poster_base_url" envconfig:"TMDB_POSTER_BASE_URL"`
}

// CatsConfig configures the cat image provider.
type CatsConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"CAT_API_BASE_URL"`
}

// QuizConfig points at the quiz content file.
type QuizConfig struct {
	File string `yaml:"file" envconfig:"QUIZ_FILE"`
}

// SessionConfig bounds the in-memory session store.
type SessionConfig struct {
	TTLMinutes           int `yaml:"ttl_minutes" envconfig:"SESSION_TTL_MINUTES"`
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes" envconfig:"SESSION_SWEEP_INTERVAL_MINUTES"`
}

// TTL returns the session idle lifetime as a duration.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// SweepInterval returns how often expired sessions are evicted.
func (s SessionConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalMinutes) * time.Minute
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	defaultGeocodeURL       = "https://nominatim.openstreetmap.org"
	defaultWeatherURL       = "https://api.weather.yandex.ru/v2"
	defaultCatsURL          = "https://api.thecatapi.com/v1"
	defaultMoviesURL        = "https://api.themoviedb.org/3"
	defaultPosterURL        = "https://image.tmdb.org/t/p/w500"
	defaultQuizFile         = "question.json"
	defaultSessionTTLMin    = 60
	defaultSweepIntervalMin = 10
)

// Config aggregates the full bot configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Logging  LoggingConfig  `yaml:"logging"`
	Weather  WeatherConfig  `yaml:"weather"`
	Movies   MoviesConfig   `yaml:"movies"`
	Cats     CatsConfig     `yaml:"cats"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Session  SessionConfig  `yaml:"session"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if cfg.Weather.APIKey == "" {
		return fmt.Errorf("weather api key is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if strings.TrimSpace(cfg.Weather.GeocodeURL) == "" {
		cfg.Weather.GeocodeURL = defaultGeocodeURL
	}
	if strings.TrimSpace(cfg.Weather.BaseURL) == "" {
		cfg.Weather.BaseURL = defaultWeatherURL
	}
	if strings.TrimSpace(cfg.Cats.BaseURL) == "" {
		cfg.Cats.BaseURL = defaultCatsURL
	}
	if strings.TrimSpace(cfg.Movies.BaseURL) == "" {
		cfg.Movies.BaseURL = defaultMoviesURL
	}
	if strings.TrimSpace(cfg.Movies.PosterBaseURL) == "" {
		cfg.Movies.PosterBaseURL = defaultPosterURL
	}
	if strings.TrimSpace(cfg.Quiz.File) == "" {
		cfg.Quiz.File = defaultQuizFile
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = defaultSessionTTLMin
	}
	if cfg.Session.SweepIntervalMinutes <= 0 {
		cfg.Session.SweepIntervalMinutes = defaultSweepIntervalMin
	}
	return nil
}
