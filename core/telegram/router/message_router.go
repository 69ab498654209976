package router

import (
	"time"

	"funbot/core/logger"
	tg "funbot/core/telegram"
	tghelpers "funbot/core/telegram/helpers"
	"funbot/core/telegram/middleware"
	"funbot/core/telegram/state"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// StateHandlers dispatches the non-idle conversational states. The
// router matches states explicitly so that adding a state without a
// handler is a compile-time hole here, not a silent runtime miss.
type StateHandlers interface {
	HandleQuizAnswer(c tele.Context) error
	HandleCity(c tele.Context) error
}

// TextOptions wires the text route.
type TextOptions struct {
	Store  state.Store
	States StateHandlers

	// ReturnLabel is intercepted before any state handler and always
	// routes to OnReturn, resetting the conversation.
	ReturnLabel string
	OnReturn    tele.HandlerFunc
}

// TextRoute builds the handler for plain text updates.
//
// Dispatch precedence for one inbound message:
//  1. the literal return-to-menu label, from any state;
//  2. the session's state handler when the user is mid-conversation;
//  3. exact-text match against the menu table;
//  4. otherwise the message is dropped without a reply.
//
// Exactly one handler runs per message. Dropping unmatched text is
// deliberate; the bot stays silent instead of answering "unknown
// command".
func TextRoute(reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if opts.ReturnLabel != "" && text == opts.ReturnLabel && opts.OnReturn != nil {
			return handleWithSummary(c, "return_to_menu", start, "", "", func() error {
				return opts.OnReturn(c)
			})
		}

		if opts.Store != nil && opts.States != nil && opts.Store.InProgress(c.Sender().ID) {
			sess := opts.Store.Get(c.Sender().ID)
			extra := slog.String("state", sess.State.String())
			switch sess.State {
			case state.AwaitingQuizAnswer:
				return handleWithSummary(c, "quiz_answer", start, "", "", func() error {
					return opts.States.HandleQuizAnswer(c)
				}, extra)
			case state.AwaitingCity:
				return handleWithSummary(c, "weather_city", start, "", "", func() error {
					return opts.States.HandleCity(c)
				}, extra)
			case state.Idle:
				// session reset between the check and the read
			}
		}

		if reg != nil {
			if entry, ok := reg.LookupMenu(text); ok {
				return handleWithSummary(c, entry.Name, start, "", "", func() error {
					return entry.Handler(c)
				})
			}
		}

		ctx := tghelpers.BuildContext(c)
		logger.Debug(ctx, "tg", "text.unmatched",
			slog.String("handler", "unknown_text"),
			slog.String("status", "skip"),
			slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
		)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
