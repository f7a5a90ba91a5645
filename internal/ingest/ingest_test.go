package ingest

import (
	"reflect"
	"testing"
)

// TestParse_Upload проверяет разбор полного пакета: заголовок и два вопроса.
func TestParse_Upload(t *testing.T) {
	up, err := Parse("101 | Math | 10\n2+2=? | 3,4,5 | 4\n3+3=? | 5,6,7 | 6")
	if err != nil {
		t.Fatalf("Parse вернул ошибку: %v", err)
	}

	if up.Test.Code != "101" || up.Test.Title != "Math" || up.Test.Duration != 10 {
		t.Errorf("Неверный заголовок: %+v", up.Test)
	}
	if len(up.Questions) != 2 {
		t.Fatalf("Ожидалось 2 вопроса, получено %d", len(up.Questions))
	}

	q := up.Questions[0]
	if q.Text != "2+2=?" || q.CorrectAnswer != "4" || q.TestCode != "101" {
		t.Errorf("Неверный первый вопрос: %+v", q)
	}
	if !reflect.DeepEqual(q.Options, []string{"3", "4", "5"}) {
		t.Errorf("Неверные варианты: %v", q.Options)
	}
	if up.Questions[1].CorrectAnswer != "6" {
		t.Errorf("Неверный ответ второго вопроса: %q", up.Questions[1].CorrectAnswer)
	}
}

// TestParse_IgnoresLinesWithoutPipe проверяет, что строки без "|" пропускаются.
func TestParse_IgnoresLinesWithoutPipe(t *testing.T) {
	up, err := Parse("quyidagi testni yuklayman\n\n101 | Tarix | 15\n\nSavol? | a,b | a\n")
	if err != nil {
		t.Fatalf("Parse вернул ошибку: %v", err)
	}
	if up.Test.Code != "101" {
		t.Errorf("Ожидался код 101, получен %q", up.Test.Code)
	}
	if len(up.Questions) != 1 {
		t.Errorf("Ожидался 1 вопрос, получено %d", len(up.Questions))
	}
}

// TestParse_StripsNumberPrefix проверяет отбрасывание нумерации "N. " в начале вопроса.
func TestParse_StripsNumberPrefix(t *testing.T) {
	up, err := Parse("101 | Math | 10\n1. Birinchi savol | a,b | a\n12. Ikkinchi savol | a,b | b")
	if err != nil {
		t.Fatalf("Parse вернул ошибку: %v", err)
	}
	if up.Questions[0].Text != "Birinchi savol" {
		t.Errorf("Префикс не отброшен: %q", up.Questions[0].Text)
	}
	if up.Questions[1].Text != "Ikkinchi savol" {
		t.Errorf("Префикс не отброшен: %q", up.Questions[1].Text)
	}
}

// TestParse_HeaderOnly проверяет, что пакет без вопросов валиден.
func TestParse_HeaderOnly(t *testing.T) {
	up, err := Parse("101 | Math | 10")
	if err != nil {
		t.Fatalf("Parse вернул ошибку: %v", err)
	}
	if len(up.Questions) != 0 {
		t.Errorf("Ожидалось 0 вопросов, получено %d", len(up.Questions))
	}
}

// TestParse_Errors проверяет, что любая некорректная строка отклоняет весь пакет.
func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"нет заголовка", "oddiy matn\nyana matn"},
		{"заголовок из двух полей", "101 | Math"},
		{"заголовок из четырех полей", "101 | Math | 10 | extra"},
		{"нечисловая длительность", "101 | Math | o'n"},
		{"нулевая длительность", "101 | Math | 0"},
		{"пустой код", " | Math | 10"},
		{"вопрос из двух полей", "101 | Math | 10\nSavol? | a,b"},
		{"вопрос из четырех полей", "101 | Math | 10\nSavol? | a,b | a | extra"},
		{"один вариант", "101 | Math | 10\nSavol? | a | a"},
		{"пустой вариант", "101 | Math | 10\nSavol? | a,,b | a"},
		{"пустой ответ", "101 | Math | 10\nSavol? | a,b | "},
		{"пустой текст вопроса", "101 | Math | 10\n | a,b | a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.text); err == nil {
				t.Errorf("Ожидалась ошибка для %q", tc.text)
			}
		})
	}
}

// TestParse_CommaHasNoEscaping фиксирует ограничение грамматики: запятая всегда
// разделяет варианты, экранирования нет.
func TestParse_CommaHasNoEscaping(t *testing.T) {
	up, err := Parse("101 | Math | 10\nSavol? | bir, ikki, uch | ikki")
	if err != nil {
		t.Fatalf("Parse вернул ошибку: %v", err)
	}
	if !reflect.DeepEqual(up.Questions[0].Options, []string{"bir", "ikki", "uch"}) {
		t.Errorf("Неверные варианты: %v", up.Questions[0].Options)
	}
}
