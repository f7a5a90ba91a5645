// Package ingest разбирает текстовый протокол массовой загрузки тестов.
//
// Формат:
//
//	kod | nomi | daqiqa
//	savol | variant1,variant2,... | to'g'ri javob
//	...
//
// Строки без символа "|" игнорируются (разделители, пустые строки).
// Числовой префикс "N. " в начале вопроса отбрасывается.
// Экранирования нет: запятая внутри варианта и "|" внутри вопроса невыразимы —
// это ограничение грамматики, унаследованное от протокола, а не недоработка.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uzquiz/quizbot/internal/domain/model"
)

// Upload — типизированное представление загрузки: заголовок и вопросы.
// Разбор полностью отделён от записи в каталог: либо валиден весь пакет,
// либо хранилище не трогается вовсе.
type Upload struct {
	Test      model.Test
	Questions []model.Question
}

// Parse разбирает загрузку целиком. Любая некорректная строка
// (неверное число полей, нечисловая длительность, меньше двух вариантов)
// отклоняет весь пакет.
func Parse(text string) (*Upload, error) {
	up := &Upload{}
	headerParsed := false

	for i, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		lineNo := i + 1

		if !headerParsed {
			test, err := parseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			up.Test = test
			headerParsed = true
			continue
		}

		question, err := parseQuestion(line, up.Test.Code)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		up.Questions = append(up.Questions, question)
	}

	if !headerParsed {
		return nil, fmt.Errorf("no header line found")
	}
	return up, nil
}

// parseHeader разбирает строку "kod | nomi | daqiqa".
func parseHeader(line string) (model.Test, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		return model.Test{}, fmt.Errorf("header must have 3 fields, got %d", len(parts))
	}

	code := strings.TrimSpace(parts[0])
	title := strings.TrimSpace(parts[1])
	if code == "" || title == "" {
		return model.Test{}, fmt.Errorf("header code and title must not be empty")
	}

	duration, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return model.Test{}, fmt.Errorf("duration %q is not an integer", strings.TrimSpace(parts[2]))
	}
	if duration <= 0 {
		return model.Test{}, fmt.Errorf("duration must be positive, got %d", duration)
	}

	return model.Test{Code: code, Title: title, Duration: duration}, nil
}

// parseQuestion разбирает строку "savol | variantlar | javob".
func parseQuestion(line, testCode string) (model.Question, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		return model.Question{}, fmt.Errorf("question must have 3 fields, got %d", len(parts))
	}

	text := stripNumberPrefix(strings.TrimSpace(parts[0]))
	if text == "" {
		return model.Question{}, fmt.Errorf("question text must not be empty")
	}

	var options []string
	for _, opt := range strings.Split(parts[1], ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return model.Question{}, fmt.Errorf("empty option in question %q", text)
		}
		options = append(options, opt)
	}
	if len(options) < 2 {
		return model.Question{}, fmt.Errorf("question %q must have at least 2 options, got %d", text, len(options))
	}

	answer := strings.TrimSpace(parts[2])
	if answer == "" {
		return model.Question{}, fmt.Errorf("answer for question %q must not be empty", text)
	}

	return model.Question{
		TestCode:      testCode,
		Text:          text,
		Options:       options,
		CorrectAnswer: answer,
	}, nil
}

// stripNumberPrefix отбрасывает нумерацию вида "1. " в начале вопроса.
// Префикс распознаётся по точке в первых четырёх символах.
func stripNumberPrefix(text string) string {
	if idx := strings.Index(text, "."); idx >= 0 && idx < 4 {
		return strings.TrimSpace(text[idx+1:])
	}
	return text
}
