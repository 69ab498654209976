package router

import (
	"context"

	"funbot/core/logger"
	tg "funbot/core/telegram"
	"funbot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes prepares slash command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		h = middleware.RecoverMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  wrapCommandSummary(cmd, h),
		})
	}

	logger.Info(context.Background(), "tg.wire", "routes.complete",
		slog.Int("commands", len(reg.Commands())),
		slog.Int("menu", reg.MenuSize()),
	)

	return routes
}

func wrapCommandSummary(cmd string, h tele.HandlerFunc) tele.HandlerFunc {
	name := normalizeHandlerName(cmd)
	return func(c tele.Context) error {
		return handleWithSummary(c, name, nowFunc(), "", "", func() error {
			return h(c)
		})
	}
}
