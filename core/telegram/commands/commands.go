package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a slash command with its handler and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Hidden      bool
	Aliases     []string
}

// MenuEntry binds an exact button label to its handler. Labels are
// matched against incoming text verbatim; there is no fuzzy matching.
type MenuEntry struct {
	Handler tele.HandlerFunc
	// Name is a short identifier used in logs instead of the raw label.
	Name string
}
