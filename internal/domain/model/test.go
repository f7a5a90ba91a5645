package model

type Test struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

// TestInfo расширяет Test количеством вопросов для отчётов администратора.
type TestInfo struct {
	Test
	QuestionCount int `json:"question_count"`
}
