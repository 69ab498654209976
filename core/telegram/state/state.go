// Package state tracks per-user conversation state for Telegram bots.
// Sessions live in process memory only and expire after a period of
// inactivity.
package state

import "time"

// State identifies the conversational step a user is currently in.
type State uint8

const (
	// Idle indicates there is no active conversation with the user.
	Idle State = iota
	// AwaitingQuizAnswer means the next text message is a quiz answer.
	AwaitingQuizAnswer
	// AwaitingCity means the next text message is a city name for the
	// weather lookup.
	AwaitingCity
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingQuizAnswer:
		return "awaiting_quiz_answer"
	case AwaitingCity:
		return "awaiting_city"
	}
	return "unknown"
}

// Session stores conversation state and step data for a single user.
type Session struct {
	State State
	// QuizIndex is the current question index. It is meaningful only in
	// AwaitingQuizAnswer and is always a valid index into the question
	// list or equal to its length (quiz complete).
	QuizIndex int
	// LastSeen drives TTL eviction.
	LastSeen time.Time
}

// Store owns per-user sessions. Get returns a session lazily created
// with default Idle state; Save persists handler mutations back.
// InProgress reports a mid-conversation user without materializing a
// session; Len counts tracked sessions.
type Store interface {
	Get(userID int64) Session
	Save(userID int64, s Session)
	Reset(userID int64)
	InProgress(userID int64) bool
	Len() int
}
