package telegram

import (
	"context"
	"sort"
	"strings"

	"funbot/core/logger"
	"funbot/core/telegram/commands"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Registry holds slash commands and the exact-text menu table.
type Registry struct {
	commands map[string]commands.Command
	menu     map[string]commands.MenuEntry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]commands.Command),
		menu:     make(map[string]commands.MenuEntry),
	}
}

// RegisterCommand adds a new slash command.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	if r == nil || name == "" || cmd.Handler == nil || cmd.Description == "" {
		logger.Warn(context.Background(), "tg.wire", "register.command.skip",
			slog.String("name", name),
			slog.String("reason", "invalid"),
		)
		return
	}
	if name[0] != '/' {
		logger.Warn(context.Background(), "tg.wire", "register.command.skip",
			slog.String("name", name),
			slog.String("reason", "no_slash_prefix"),
		)
		return
	}
	if _, exists := r.commands[name]; exists {
		logger.Warn(context.Background(), "tg.wire", "register.command.duplicate",
			slog.String("name", name),
		)
		return
	}
	r.commands[name] = cmd
}

// RegisterMenu adds a menu entry keyed by its exact button label.
func (r *Registry) RegisterMenu(label string, entry commands.MenuEntry) {
	if r == nil || label == "" || entry.Handler == nil {
		logger.Warn(context.Background(), "tg.wire", "register.menu.skip",
			slog.String("label", label),
			slog.String("reason", "invalid"),
		)
		return
	}
	if _, exists := r.menu[label]; exists {
		logger.Warn(context.Background(), "tg.wire", "register.menu.duplicate",
			slog.String("label", label),
		)
		return
	}
	if entry.Name == "" {
		entry.Name = strings.ToLower(strings.ReplaceAll(label, " ", "_"))
	}
	r.menu[label] = entry
}

// ListCommands returns a slice of tele.Command, optionally filtering out hidden commands.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	var list []tele.Command
	for cmd, meta := range r.commands {
		if visibleOnly && meta.Hidden {
			continue
		}
		list = append(list, tele.Command{Text: cmd, Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand searches for a slash command by name or alias.
func (r *Registry) LookupCommand(name string) (string, commands.Command, bool) {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if cmd, ok := r.commands[name]; ok {
		return name, cmd, true
	}
	for key, cmd := range r.commands {
		for _, alias := range cmd.Aliases {
			if alias == name || "/"+alias == name {
				return key, cmd, true
			}
		}
	}
	return "", commands.Command{}, false
}

// LookupMenu matches text against the menu table verbatim.
func (r *Registry) LookupMenu(text string) (commands.MenuEntry, bool) {
	entry, ok := r.menu[text]
	return entry, ok
}

// Commands returns all registered slash commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// MenuSize returns the number of registered menu entries.
func (r *Registry) MenuSize() int {
	return len(r.menu)
}

// SetupCommands sets the Telegram bot commands shown in the command menu.
func SetupCommands(bot *tele.Bot, reg *Registry) {
	list := reg.ListCommands(true)
	if err := bot.SetCommands(list); err != nil {
		logger.Error(context.Background(), "tg.wire", "register.commands.set_failed",
			slog.String("err", err.Error()),
		)
	}
}
