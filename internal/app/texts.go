package app

import (
	"fmt"
	"strconv"

	"funbot/internal/api"
)

// Menu button labels. Matched verbatim against incoming text.
const (
	labelHelp    = "Помощь"
	labelRandom  = "Случайное число"
	labelCat     = "Генерация котика"
	labelWeather = "Погода"
	labelQuiz    = "Игра угадай"
	labelMovie   = "Фильм на вечер"
	labelReturn  = "Вернуться в меню"
)

const helpText = "Вот что я умею:\n\n" +
	"Случайное число — выдаю случайное число от 1 до 100.\n" +
	"Генерация котика — пришлю случайного милого котика.\n" +
	"Погода — покажу погоду в выбранном городе.\n" +
	"Игра угадай — маленькая викторина с вопросами.\n" +
	"Вернуться в меню — возвращает тебя в главное меню.\n" +
	"Фильм на вечер - подберет вам фильм для вечернего просмотра.\n"

const (
	msgBackToMenu    = "<--- Возвращаемся в главное меню:"
	msgAskCity       = "Введи название города:"
	msgCityNotFound  = "Не удалось определить координаты города"
	msgWeatherFailed = "Не удалось получить погоду"
	msgCatCaption    = "Вот твой котик"
	msgCatFailed     = "Не удалось получить котика"
	msgQuizCorrect   = "Верно!"
	msgQuizDone      = "Поздравляю вы ответили на все вопросы"
	msgMovieNotFound = "Не удалось найти фильм"
	msgMovieFailed   = "Ошибка при получении фильма"
	msgNoOverview    = "Описание отсутствует"

	msgGreetingFmt  = "Привет, %s!\nВыбери пункт меню:"
	msgRandomFmt    = "Твое число: %d"
	msgQuizWrongFmt = "Неверно! Правильный ответ: %s"
	msgWeatherInFmt = "Погода в %s:\n\n%s"
)

// conditionNames maps provider condition codes to Russian descriptions.
// Unknown codes pass through untranslated.
var conditionNames = map[string]string{
	"clear":         "Ясно",
	"partly-cloudy": "Малооблачно",
	"cloudy":        "Облачно",
	"overcast":      "Пасмурно",
	"drizzle":       "Морось",
	"light-rain":    "Лёгкий дождь",
	"rain":          "Дождь",
	"heavy-rain":    "Сильный дождь",
	"snow":          "Снег",
	"thunderstorm":  "Гроза",
}

func conditionName(code string) string {
	if name, ok := conditionNames[code]; ok {
		return name
	}
	return code
}

func formatWeatherReport(fact api.Fact) string {
	return fmt.Sprintf(
		"%s\nТемпература: %d°C (ощущается как %d°C)\nВетер: %s м/с\nДавление: %d мм рт. ст.\nВлажность: %d%%",
		conditionName(fact.Condition),
		fact.Temp,
		fact.FeelsLike,
		strconv.FormatFloat(fact.WindSpeed, 'f', -1, 64),
		fact.PressureMM,
		fact.Humidity,
	)
}
