package router

import (
	"testing"
	"time"

	tg "funbot/core/telegram"
	"funbot/core/telegram/commands"
	"funbot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	text   string
	sender *tele.User
	values map[string]any
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		text:   text,
		sender: &tele.User{ID: userID},
		values: make(map[string]any),
	}
}

func (f *fakeContext) Text() string       { return f.text }
func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Chat() *tele.Chat   { return &tele.Chat{ID: f.sender.ID} }
func (f *fakeContext) Update() tele.Update {
	return tele.Update{ID: 1, Message: &tele.Message{Text: f.text}}
}
func (f *fakeContext) Get(key string) any      { return f.values[key] }
func (f *fakeContext) Set(key string, val any) { f.values[key] = val }

type fakeStates struct {
	quizCalls int
	cityCalls int
}

func (s *fakeStates) HandleQuizAnswer(tele.Context) error { s.quizCalls++; return nil }
func (s *fakeStates) HandleCity(tele.Context) error       { s.cityCalls++; return nil }

func fixedStore(st state.State) state.Store {
	store := state.NewMemoryStore(time.Hour)
	if st != state.Idle {
		store.Save(42, state.Session{State: st})
	}
	return store
}

func dispatch(t *testing.T, store state.Store, states *fakeStates, reg *tg.Registry, returnCalls *int, text string) {
	t.Helper()
	route := TextRoute(reg, TextOptions{
		Store:       store,
		States:      states,
		ReturnLabel: "back",
		OnReturn: func(tele.Context) error {
			if returnCalls != nil {
				*returnCalls++
			}
			return nil
		},
	})
	if err := route.Handler(newFakeContext(42, text)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
}

func TestTextRouteReturnLabelWinsOverStateHandler(t *testing.T) {
	states := &fakeStates{}
	returns := 0
	dispatch(t, fixedStore(state.AwaitingQuizAnswer), states, tg.NewRegistry(), &returns, "back")
	if returns != 1 {
		t.Fatalf("expected return handler, got %d calls", returns)
	}
	if states.quizCalls != 0 {
		t.Fatal("state handler must not run when the return label matches")
	}
}

func TestTextRouteStateHandlerWinsOverMenu(t *testing.T) {
	reg := tg.NewRegistry()
	menuCalls := 0
	reg.RegisterMenu("quiz please", commands.MenuEntry{
		Name:    "quiz",
		Handler: func(tele.Context) error { menuCalls++; return nil },
	})

	states := &fakeStates{}
	dispatch(t, fixedStore(state.AwaitingCity), states, reg, nil, "quiz please")
	if states.cityCalls != 1 {
		t.Fatalf("expected city handler, got %d calls", states.cityCalls)
	}
	if menuCalls != 0 {
		t.Fatal("menu handler must not run while a state is active")
	}
}

func TestTextRouteIdleMenuMatch(t *testing.T) {
	reg := tg.NewRegistry()
	menuCalls := 0
	reg.RegisterMenu("weather", commands.MenuEntry{
		Name:    "weather",
		Handler: func(tele.Context) error { menuCalls++; return nil },
	})

	states := &fakeStates{}
	dispatch(t, fixedStore(state.Idle), states, reg, nil, "weather")
	if menuCalls != 1 {
		t.Fatalf("expected menu handler, got %d calls", menuCalls)
	}
	if states.quizCalls+states.cityCalls != 0 {
		t.Fatal("no state handler should run from Idle")
	}
}

func TestTextRouteSavedIdleSessionRoutesToMenu(t *testing.T) {
	store := state.NewMemoryStore(time.Hour)
	store.Save(42, state.Session{State: state.Idle})

	reg := tg.NewRegistry()
	menuCalls := 0
	reg.RegisterMenu("weather", commands.MenuEntry{
		Name:    "weather",
		Handler: func(tele.Context) error { menuCalls++; return nil },
	})

	states := &fakeStates{}
	dispatch(t, store, states, reg, nil, "weather")
	if menuCalls != 1 {
		t.Fatalf("expected menu handler, got %d calls", menuCalls)
	}
	if states.quizCalls+states.cityCalls != 0 {
		t.Fatal("idle session must not trigger a state handler")
	}
}

func TestTextRouteIdleUnmatchedTextIsDropped(t *testing.T) {
	reg := tg.NewRegistry()
	reg.RegisterMenu("weather", commands.MenuEntry{
		Name:    "weather",
		Handler: func(tele.Context) error { t.Fatal("must not run"); return nil },
	})

	store := fixedStore(state.Idle)
	states := &fakeStates{}
	returns := 0
	dispatch(t, store, states, reg, &returns, "WEATHER") // case differs, no match
	if returns != 0 || states.quizCalls != 0 || states.cityCalls != 0 {
		t.Fatal("unmatched text must not invoke any handler")
	}
	if store.InProgress(42) {
		t.Fatal("unmatched text must leave the session untouched")
	}
}
