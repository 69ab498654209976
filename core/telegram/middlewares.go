package telegram

import (
	"funbot/core/telegram/middleware"
)

// DefaultMiddlewares builds the shared middleware chain for the bot.
func DefaultMiddlewares() []Middleware {
	return []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	}
}
