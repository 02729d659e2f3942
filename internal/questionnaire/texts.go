package questionnaire

import "golang.org/x/text/language"

// Texts holds the interface strings that accompany a bank.
type Texts struct {
	TestsTab       string
	ResultsTab     string
	TestTitle      string
	QuestionOf     string // format: current, total
	Back           string
	Next           string
	Finish         string
	Completed      string
	AnsweredAll    string // format: total
	ViewResults    string
	Restart        string
	RestartAgain   string
	YourResults    string
	ByCategory     string
	Comparison     string
	ComparisonHint string
	YourAverage    string
	GlobalAverage  string
	BetterThan     string
	Analysis       string
	You            string
	Average        string
	Insight        string
	InsightLoading string
	StartTest      string
	History        string
	Exit           string
}

var texts = map[language.Tag]Texts{
	language.Russian: {
		TestsTab:       "Тесты",
		ResultsTab:     "Результаты",
		TestTitle:      "Психологический тест",
		QuestionOf:     "Вопрос %d из %d",
		Back:           "Назад",
		Next:           "Далее",
		Finish:         "Завершить",
		Completed:      "Тест завершён!",
		AnsweredAll:    "Вы ответили на все %d вопросов",
		ViewResults:    "Посмотреть результаты",
		Restart:        "Пройти заново",
		RestartAgain:   "Пройти тест снова",
		YourResults:    "Ваши результаты",
		ByCategory:     "Детальная оценка по категориям",
		Comparison:     "Сравнение с другими пользователями",
		ComparisonHint: "Как ваши результаты соотносятся со средними показателями",
		YourAverage:    "Ваш средний балл",
		GlobalAverage:  "Средний балл",
		BetterThan:     "Лучше чем других",
		Analysis:       "Сравнительный анализ",
		You:            "Вы",
		Average:        "Средний",
		Insight:        "Комментарий",
		InsightLoading: "Готовим комментарий...",
		StartTest:      "НАЧАТЬ ТЕСТ",
		History:        "ИСТОРИЯ",
		Exit:           "ВЫХОД",
	},
	language.English: {
		TestsTab:       "Tests",
		ResultsTab:     "Results",
		TestTitle:      "Psychological test",
		QuestionOf:     "Question %d of %d",
		Back:           "Back",
		Next:           "Next",
		Finish:         "Finish",
		Completed:      "Test complete!",
		AnsweredAll:    "You answered all %d questions",
		ViewResults:    "View results",
		Restart:        "Start over",
		RestartAgain:   "Take the test again",
		YourResults:    "Your results",
		ByCategory:     "Detailed score by category",
		Comparison:     "Comparison with other users",
		ComparisonHint: "How your results relate to the averages",
		YourAverage:    "Your average",
		GlobalAverage:  "Average",
		BetterThan:     "Better than others",
		Analysis:       "Comparative analysis",
		You:            "You",
		Average:        "Average",
		Insight:        "Insight",
		InsightLoading: "Preparing insight...",
		StartTest:      "START TEST",
		History:        "HISTORY",
		Exit:           "EXIT",
	},
}

// TextsFor returns the interface strings for a bank locale.
func TextsFor(locale string) Texts {
	return texts[MatchLocale(locale)]
}
