package app

import (
	"fmt"
	"strings"

	"funbot/core/logger"
	"funbot/core/telegram/format"
	"funbot/core/telegram/helpers"
	"funbot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

func (a *App) handleStart(c tele.Context) error {
	a.store.Reset(c.Sender().ID)
	name := senderFullName(c.Sender())
	greeting := fmt.Sprintf(msgGreetingFmt, format.Bold(format.EscapeHTML(name)))
	return helpers.SendHTML(c, greeting, mainMenu())
}

func (a *App) handleReturn(c tele.Context) error {
	a.store.Reset(c.Sender().ID)
	return helpers.SendText(c, msgBackToMenu, mainMenu())
}

func (a *App) handleHelp(c tele.Context) error {
	return helpers.SendText(c, helpText, backMenu())
}

func (a *App) handleRandomNumber(c tele.Context) error {
	n := a.randInt(100) + 1
	return helpers.SendText(c, fmt.Sprintf(msgRandomFmt, n), backMenu())
}

func (a *App) handleCatImage(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	url, err := a.cats.Random(ctx)
	if err != nil {
		return helpers.SendText(c, msgCatFailed, backMenu())
	}
	return helpers.SendPhoto(c, url, msgCatCaption, backMenu())
}

func (a *App) handleQuizStart(c tele.Context) error {
	a.store.Save(c.Sender().ID, state.Session{State: state.AwaitingQuizAnswer, QuizIndex: 0})
	return a.sendQuestion(c, 0)
}

func (a *App) sendQuestion(c tele.Context, index int) error {
	if index >= len(a.questions) {
		a.store.Reset(c.Sender().ID)
		return helpers.SendText(c, msgQuizDone, backMenu())
	}
	q := a.questions[index]
	return helpers.SendText(c, q.Question, quizMenu(q.Options))
}

// HandleQuizAnswer grades the answer to the current question. A correct
// answer advances the session; a wrong one ends the quiz.
func (a *App) HandleQuizAnswer(c tele.Context) error {
	userID := c.Sender().ID
	sess := a.store.Get(userID)
	index := sess.QuizIndex
	if index < 0 || index >= len(a.questions) {
		a.store.Reset(userID)
		return helpers.SendText(c, msgQuizDone, backMenu())
	}

	q := a.questions[index]
	if c.Text() != q.Answer {
		a.store.Reset(userID)
		return helpers.SendText(c, fmt.Sprintf(msgQuizWrongFmt, q.Answer), backMenu())
	}

	if err := helpers.SendText(c, msgQuizCorrect); err != nil {
		return err
	}
	next := index + 1
	a.store.Save(userID, state.Session{State: state.AwaitingQuizAnswer, QuizIndex: next})
	return a.sendQuestion(c, next)
}

func (a *App) handleWeatherAsk(c tele.Context) error {
	a.store.Save(c.Sender().ID, state.Session{State: state.AwaitingCity})
	return helpers.SendText(c, msgAskCity, backMenu())
}

// HandleCity resolves the city, fetches the forecast, and finishes the
// conversation. Every branch ends Idle: a failed lookup reports the
// failure and returns the user to the menu rather than re-prompting.
func (a *App) HandleCity(c tele.Context) error {
	city := strings.TrimSpace(c.Text())
	ctx := helpers.BuildContext(c)
	a.store.Reset(c.Sender().ID)

	lat, lon, found, err := a.geo.Lookup(ctx, city)
	if err != nil || !found {
		return helpers.SendText(c, msgCityNotFound, backMenu())
	}
	logger.Debug(ctx, "api", "weather.geocoded",
		slog.String("city", city),
		slog.String("lat", lat),
		slog.String("lon", lon),
	)

	report := msgWeatherFailed
	if fact, err := a.weather.Current(ctx, lat, lon); err == nil {
		report = formatWeatherReport(fact)
	}
	return helpers.SendText(c, fmt.Sprintf(msgWeatherInFmt, city, report), backMenu())
}

func (a *App) handleMovie(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	page := a.randInt(10) + 1
	movies, err := a.movies.Popular(ctx, page)
	if err != nil {
		return helpers.SendText(c, msgMovieFailed, backMenu())
	}
	if len(movies) == 0 {
		return helpers.SendText(c, msgMovieNotFound, backMenu())
	}

	pick := movies[a.randInt(len(movies))]
	overview := format.DerefString(pick.Overview, msgNoOverview)
	caption := pick.Title + "\n\n" + overview

	if poster := a.movies.PosterURL(pick); poster != "" {
		return helpers.SendPhoto(c, poster, caption, backMenu())
	}
	return helpers.SendText(c, "🎬 "+caption, backMenu())
}

func senderFullName(u *tele.User) string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return strings.TrimSpace(name)
}
