package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"funbot/core/telegram/helpers"
	"funbot/core/telegram/sender"
	"funbot/core/telegram/state"
	"funbot/internal/api"
	"funbot/internal/quiz"

	tele "gopkg.in/telebot.v4"
)

type sentMessage struct {
	what any
	opts []any
}

type testContext struct {
	tele.Context
	text   string
	sender *tele.User
	values map[string]any
	sent   []sentMessage
	// sendDelay stalls the n-th Send call, n counted from zero.
	sendDelay func(n int) time.Duration
}

func newTestContext(userID int64, text string) *testContext {
	return &testContext{
		text:   text,
		sender: &tele.User{ID: userID, FirstName: "Тест"},
		values: map[string]any{},
	}
}

func (t *testContext) Text() string       { return t.text }
func (t *testContext) Sender() *tele.User { return t.sender }
func (t *testContext) Chat() *tele.Chat   { return &tele.Chat{ID: t.sender.ID} }
func (t *testContext) Update() tele.Update {
	return tele.Update{ID: 1, Message: &tele.Message{Text: t.text}}
}
func (t *testContext) Get(key string) any      { return t.values[key] }
func (t *testContext) Set(key string, val any) { t.values[key] = val }
func (t *testContext) Send(what any, opts ...any) error {
	if t.sendDelay != nil {
		time.Sleep(t.sendDelay(len(t.sent)))
	}
	t.sent = append(t.sent, sentMessage{what: what, opts: opts})
	return nil
}

func (t *testContext) lastText(tb testing.TB) string {
	tb.Helper()
	if len(t.sent) == 0 {
		tb.Fatal("nothing was sent")
	}
	s, ok := t.sent[len(t.sent)-1].what.(string)
	if !ok {
		tb.Fatalf("last send is not text: %T", t.sent[len(t.sent)-1].what)
	}
	return s
}

func (t *testContext) lastPhoto(tb testing.TB) *tele.Photo {
	tb.Helper()
	if len(t.sent) == 0 {
		tb.Fatal("nothing was sent")
	}
	p, ok := t.sent[len(t.sent)-1].what.(*tele.Photo)
	if !ok {
		tb.Fatalf("last send is not a photo: %T", t.sent[len(t.sent)-1].what)
	}
	return p
}

type fakeCats struct {
	url string
	err error
}

func (f fakeCats) Random(context.Context) (string, error) { return f.url, f.err }

type fakeGeo struct {
	lat, lon string
	found    bool
	err      error
}

func (f fakeGeo) Lookup(context.Context, string) (string, string, bool, error) {
	return f.lat, f.lon, f.found, f.err
}

type fakeWeather struct {
	fact api.Fact
	err  error
}

func (f fakeWeather) Current(context.Context, string, string) (api.Fact, error) {
	return f.fact, f.err
}

type fakeMovies struct {
	movies []api.Movie
	err    error
}

func (f fakeMovies) Popular(context.Context, int) ([]api.Movie, error) {
	return f.movies, f.err
}

func (f fakeMovies) PosterURL(m api.Movie) string {
	if m.PosterPath == nil || *m.PosterPath == "" {
		return ""
	}
	return "https://img.test" + *m.PosterPath
}

func newTestApp() *App {
	return &App{
		store: state.NewMemoryStore(time.Hour),
		questions: []quiz.Question{
			{Question: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
			{Question: "Столица Франции?", Options: []string{"Париж", "Лион"}, Answer: "Париж"},
		},
		cats:    fakeCats{url: "https://cdn.test/cat.jpg"},
		geo:     fakeGeo{lat: "48.85", lon: "2.35", found: true},
		weather: fakeWeather{fact: api.Fact{Temp: 20, FeelsLike: 18, Condition: "clear", WindSpeed: 3.5, PressureMM: 755, Humidity: 40}},
		movies:  fakeMovies{},
		randInt: func(n int) int { return 0 },
	}
}

func TestStartGreetsAndResetsState(t *testing.T) {
	a := newTestApp()
	a.store.Save(7, state.Session{State: state.AwaitingCity})

	c := newTestContext(7, "/start")
	c.sender.FirstName = "Иван"
	c.sender.LastName = "<Петров>"
	if err := a.handleStart(c); err != nil {
		t.Fatalf("handleStart: %v", err)
	}
	if a.store.InProgress(7) {
		t.Fatal("start must clear conversation state")
	}
	greeting := c.lastText(t)
	if !strings.Contains(greeting, "<b>Иван &lt;Петров&gt;</b>") {
		t.Fatalf("greeting not escaped: %q", greeting)
	}
}

func TestQuizFullRunThrough(t *testing.T) {
	a := newTestApp()

	c := newTestContext(1, labelQuiz)
	if err := a.handleQuizStart(c); err != nil {
		t.Fatalf("quiz start: %v", err)
	}
	if got := c.lastText(t); got != "2+2?" {
		t.Fatalf("expected first question, got %q", got)
	}
	if !a.store.InProgress(1) {
		t.Fatal("quiz start must enter the answering state")
	}

	c = newTestContext(1, "4")
	if err := a.HandleQuizAnswer(c); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if got := c.sent[0].what; got != msgQuizCorrect {
		t.Fatalf("expected %q first, got %v", msgQuizCorrect, got)
	}
	if got := c.lastText(t); got != "Столица Франции?" {
		t.Fatalf("expected second question, got %q", got)
	}

	c = newTestContext(1, "Париж")
	if err := a.HandleQuizAnswer(c); err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if got := c.lastText(t); got != msgQuizDone {
		t.Fatalf("expected completion message, got %q", got)
	}
	if a.store.InProgress(1) {
		t.Fatal("finished quiz must reset the session")
	}
}

func TestQuizCorrectAnswerOrderWithDispatcher(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{})
	helpers.SetDispatcher(d)
	defer helpers.SetDispatcher(nil)

	a := newTestApp()
	a.store.Save(1, state.Session{State: state.AwaitingQuizAnswer, QuizIndex: 0})

	c := newTestContext(1, "4")
	// Stall the confirmation so a reordering dispatcher would deliver
	// the next question first.
	c.sendDelay = func(n int) time.Duration {
		if n == 0 {
			return 50 * time.Millisecond
		}
		return 0
	}
	if err := a.HandleQuizAnswer(c); err != nil {
		t.Fatalf("HandleQuizAnswer: %v", err)
	}
	d.Close()

	if len(c.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(c.sent))
	}
	if got := c.sent[0].what; got != msgQuizCorrect {
		t.Fatalf("confirmation must arrive first, got %v", got)
	}
	if got := c.sent[1].what; got != "Столица Франции?" {
		t.Fatalf("next question must arrive second, got %v", got)
	}
}

func TestQuizWrongAnswerEndsQuiz(t *testing.T) {
	a := newTestApp()
	a.store.Save(1, state.Session{State: state.AwaitingQuizAnswer, QuizIndex: 0})

	c := newTestContext(1, "3")
	if err := a.HandleQuizAnswer(c); err != nil {
		t.Fatalf("HandleQuizAnswer: %v", err)
	}
	if got := c.lastText(t); got != "Неверно! Правильный ответ: 4" {
		t.Fatalf("unexpected reply %q", got)
	}
	if a.store.InProgress(1) {
		t.Fatal("wrong answer must reset the session")
	}
}

func TestQuizQuestionKeyboardLayout(t *testing.T) {
	a := newTestApp()
	c := newTestContext(1, labelQuiz)
	if err := a.handleQuizStart(c); err != nil {
		t.Fatalf("quiz start: %v", err)
	}

	last := c.sent[len(c.sent)-1]
	if len(last.opts) == 0 {
		t.Fatal("question must carry a reply keyboard")
	}
	so, ok := last.opts[0].(*tele.SendOptions)
	if !ok || so.ReplyMarkup == nil {
		t.Fatalf("expected send options with markup, got %v", last.opts[0])
	}
	kb := so.ReplyMarkup.ReplyKeyboard
	if len(kb) != 2 {
		t.Fatalf("expected 2 keyboard rows, got %d", len(kb))
	}
	if len(kb[0]) != 2 || kb[0][0].Text != "3" || kb[0][1].Text != "4" {
		t.Fatalf("unexpected options row %+v", kb[0])
	}
	if len(kb[1]) != 1 || kb[1][0].Text != labelReturn {
		t.Fatalf("expected return button row, got %+v", kb[1])
	}
}

func TestWeatherHappyPath(t *testing.T) {
	a := newTestApp()
	c := newTestContext(2, labelWeather)
	if err := a.handleWeatherAsk(c); err != nil {
		t.Fatalf("weather ask: %v", err)
	}
	if got := c.lastText(t); got != msgAskCity {
		t.Fatalf("expected city prompt, got %q", got)
	}

	c = newTestContext(2, " Paris ")
	if err := a.HandleCity(c); err != nil {
		t.Fatalf("HandleCity: %v", err)
	}
	report := c.lastText(t)
	want := "Погода в Paris:\n\nЯсно\nТемпература: 20°C (ощущается как 18°C)\nВетер: 3.5 м/с\nДавление: 755 мм рт. ст.\nВлажность: 40%"
	if report != want {
		t.Fatalf("unexpected report:\n got %q\nwant %q", report, want)
	}
	if a.store.InProgress(2) {
		t.Fatal("completed weather flow must reset the session")
	}
}

func TestWeatherUnknownCityEndsIdle(t *testing.T) {
	a := newTestApp()
	a.geo = fakeGeo{found: false}
	a.store.Save(2, state.Session{State: state.AwaitingCity})

	c := newTestContext(2, "Nowhereville")
	if err := a.HandleCity(c); err != nil {
		t.Fatalf("HandleCity: %v", err)
	}
	if got := c.lastText(t); got != msgCityNotFound {
		t.Fatalf("unexpected reply %q", got)
	}
	if a.store.InProgress(2) {
		t.Fatal("failed geocode must still return the user to the menu")
	}
}

func TestWeatherFetchFailureStillFinishes(t *testing.T) {
	a := newTestApp()
	a.weather = fakeWeather{err: errors.New("boom")}
	a.store.Save(2, state.Session{State: state.AwaitingCity})

	c := newTestContext(2, "Paris")
	if err := a.HandleCity(c); err != nil {
		t.Fatalf("HandleCity: %v", err)
	}
	if got := c.lastText(t); got != "Погода в Paris:\n\n"+msgWeatherFailed {
		t.Fatalf("unexpected reply %q", got)
	}
	if a.store.InProgress(2) {
		t.Fatal("weather failure still ends the conversation")
	}
}

func TestWeatherUnknownConditionPassesThrough(t *testing.T) {
	if got := conditionName("hail"); got != "hail" {
		t.Fatalf("unknown condition must pass through, got %q", got)
	}
	if got := conditionName("clear"); got != "Ясно" {
		t.Fatalf("expected translation, got %q", got)
	}
}

func TestRandomNumberBounds(t *testing.T) {
	a := newTestApp()
	a.randInt = rand.IntN

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		c := newTestContext(3, labelRandom)
		if err := a.handleRandomNumber(c); err != nil {
			t.Fatalf("handleRandomNumber: %v", err)
		}
		text := c.lastText(t)
		var n int
		if _, err := fmt.Sscanf(text, "Твое число: %d", &n); err != nil {
			t.Fatalf("unexpected reply %q: %v", text, err)
		}
		if n < 1 || n > 100 {
			t.Fatalf("number %d out of [1,100]", n)
		}
		seen[text] = true
	}
	if len(seen) < 2 {
		t.Fatal("random number generator looks degenerate")
	}
}

func TestCatImageSendsPhoto(t *testing.T) {
	a := newTestApp()
	c := newTestContext(4, labelCat)
	if err := a.handleCatImage(c); err != nil {
		t.Fatalf("handleCatImage: %v", err)
	}
	photo := c.lastPhoto(t)
	if photo.Caption != msgCatCaption {
		t.Fatalf("unexpected caption %q", photo.Caption)
	}
	if photo.FileURL != "https://cdn.test/cat.jpg" {
		t.Fatalf("unexpected photo url %q", photo.FileURL)
	}
}

func TestCatImageFailureFallsBackToText(t *testing.T) {
	a := newTestApp()
	a.cats = fakeCats{err: errors.New("unavailable")}
	c := newTestContext(4, labelCat)
	if err := a.handleCatImage(c); err != nil {
		t.Fatalf("handleCatImage: %v", err)
	}
	if got := c.lastText(t); got != msgCatFailed {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestMovieWithPoster(t *testing.T) {
	a := newTestApp()
	overview := "Неплохое кино"
	poster := "/p.jpg"
	a.movies = fakeMovies{movies: []api.Movie{
		{Title: "Фильм", Overview: &overview, PosterPath: &poster},
	}}

	c := newTestContext(5, labelMovie)
	if err := a.handleMovie(c); err != nil {
		t.Fatalf("handleMovie: %v", err)
	}
	photo := c.lastPhoto(t)
	if photo.Caption != "Фильм\n\nНеплохое кино" {
		t.Fatalf("unexpected caption %q", photo.Caption)
	}
	if photo.FileURL != "https://img.test/p.jpg" {
		t.Fatalf("unexpected poster url %q", photo.FileURL)
	}
}

func TestMovieWithoutPosterOrOverview(t *testing.T) {
	a := newTestApp()
	a.movies = fakeMovies{movies: []api.Movie{{Title: "Фильм"}}}

	c := newTestContext(5, labelMovie)
	if err := a.handleMovie(c); err != nil {
		t.Fatalf("handleMovie: %v", err)
	}
	if got := c.lastText(t); got != "🎬 Фильм\n\n"+msgNoOverview {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestMovieEmptyPage(t *testing.T) {
	a := newTestApp()
	a.movies = fakeMovies{}

	c := newTestContext(5, labelMovie)
	if err := a.handleMovie(c); err != nil {
		t.Fatalf("handleMovie: %v", err)
	}
	if got := c.lastText(t); got != msgMovieNotFound {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestReturnToMenuResetsStateAndShowsMainMenu(t *testing.T) {
	a := newTestApp()
	a.store.Save(6, state.Session{State: state.AwaitingQuizAnswer, QuizIndex: 1})

	c := newTestContext(6, labelReturn)
	if err := a.handleReturn(c); err != nil {
		t.Fatalf("handleReturn: %v", err)
	}
	if a.store.InProgress(6) {
		t.Fatal("return must reset the session")
	}
	if got := c.lastText(t); got != msgBackToMenu {
		t.Fatalf("unexpected reply %q", got)
	}

	last := c.sent[len(c.sent)-1]
	so, ok := last.opts[0].(*tele.SendOptions)
	if !ok || so.ReplyMarkup == nil {
		t.Fatal("return must restore the main menu keyboard")
	}
	if rows := len(so.ReplyMarkup.ReplyKeyboard); rows != 6 {
		t.Fatalf("expected 6 menu rows, got %d", rows)
	}
}

func TestHelpListsFeatures(t *testing.T) {
	a := newTestApp()
	c := newTestContext(8, labelHelp)
	if err := a.handleHelp(c); err != nil {
		t.Fatalf("handleHelp: %v", err)
	}
	text := c.lastText(t)
	for _, label := range []string{labelRandom, labelCat, labelWeather, labelQuiz, labelReturn} {
		if !strings.Contains(text, label) {
			t.Fatalf("help text missing %q", label)
		}
	}
}
