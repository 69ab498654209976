package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"funbot/core/logger"
	"funbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func currentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := currentDispatcher()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	if err := disp.Enqueue(ctx, action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("action", action),
				slog.String("endpoint", endpoint),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

// SendText sends raw text (no parse mode) to the current recipient with
// an optional reply keyboard.
func SendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return sendAsync(c, "send.text", "sendMessage", func() error {
		if rm != nil {
			return c.Send(text, &tele.SendOptions{ReplyMarkup: rm})
		}
		return c.Send(text)
	})
}

// SendHTML sends a message with HTML parse mode and optional reply markup.
func SendHTML(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return sendAsync(c, "send.html", "sendMessage", func() error {
		return c.Send(text, &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: rm})
	})
}

// SendPhoto sends a photo by URL with a caption and optional reply markup.
func SendPhoto(c tele.Context, url, caption string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return sendAsync(c, "send.photo", "sendPhoto", func() error {
		photo := &tele.Photo{File: tele.FromURL(url), Caption: caption}
		return c.Send(photo, &tele.SendOptions{ReplyMarkup: rm})
	})
}
