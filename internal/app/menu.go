package app

import (
	tg "funbot/core/telegram"
	"funbot/core/telegram/commands"
	"funbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func (a *App) registerCommands(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Главное меню",
	})
}

func (a *App) registerMenu(reg *tg.Registry) {
	reg.RegisterMenu(labelHelp, commands.MenuEntry{Name: "help", Handler: a.handleHelp})
	reg.RegisterMenu(labelRandom, commands.MenuEntry{Name: "random_number", Handler: a.handleRandomNumber})
	reg.RegisterMenu(labelCat, commands.MenuEntry{Name: "cat_image", Handler: a.handleCatImage})
	reg.RegisterMenu(labelWeather, commands.MenuEntry{Name: "weather_ask", Handler: a.handleWeatherAsk})
	reg.RegisterMenu(labelQuiz, commands.MenuEntry{Name: "quiz_start", Handler: a.handleQuizStart})
	reg.RegisterMenu(labelMovie, commands.MenuEntry{Name: "movie", Handler: a.handleMovie})
}

// mainMenu is the top-level keyboard, one button per row.
func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{labelHelp},
		[]string{labelRandom},
		[]string{labelCat},
		[]string{labelWeather},
		[]string{labelQuiz},
		[]string{labelMovie},
	)
}

// backMenu offers only the return-to-menu button.
func backMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{labelReturn})
}

// quizMenu lays out answer options two per row with the return button last.
func quizMenu(options []string) *tele.ReplyMarkup {
	rows := keyboard.ChunkLabels(options, 2)
	rows = append(rows, []string{labelReturn})
	return keyboard.ReplyButtons(rows...)
}
