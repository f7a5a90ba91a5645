package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/uzquiz/quizbot/internal/domain/model"
)

// Catalog — читающая часть каталога, необходимая для сборки теста.
type Catalog interface {
	GetTest(ctx context.Context, code string) (*model.Test, error)
	GetQuestions(ctx context.Context, code string) ([]model.Question, error)
}

// Payload — тест в том виде, в котором его получает мини-приложение.
// Payload уходит недоверенному клиенту: поле "a" содержит правильный ответ,
// проверка ответов выполняется только на стороне клиента. Это принятая
// граница доверия, сервер результаты не верифицирует.
type Payload struct {
	Title     string            `json:"title"`
	Time      int               `json:"time"`
	Questions []PayloadQuestion `json:"questions"`
}

// PayloadQuestion — вопрос в формате мини-приложения.
type PayloadQuestion struct {
	Q string   `json:"q"`
	O []string `json:"o"`
	A string   `json:"a"`
}

// QuizService собирает случайно перемешанный тест из данных каталога.
type QuizService struct {
	catalog Catalog
}

// NewQuizService создает новый экземпляр QuizService.
func NewQuizService(catalog Catalog) *QuizService {
	return &QuizService{catalog: catalog}
}

// BuildQuizPayload возвращает тест с равновероятно перемешанными вариантами
// каждого вопроса и перемешанным порядком самих вопросов. Правильный ответ
// идентифицирует вариант по значению, поэтому перестановка его не ломает.
func (s *QuizService) BuildQuizPayload(ctx context.Context, code string) (*Payload, error) {
	test, err := s.catalog.GetTest(ctx, code)
	if err != nil {
		return nil, err
	}

	questions, err := s.catalog.GetQuestions(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	payload := &Payload{
		Title:     test.Title,
		Time:      test.Duration,
		Questions: make([]PayloadQuestion, 0, len(questions)),
	}

	for _, q := range questions {
		options := append([]string(nil), q.Options...)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		payload.Questions = append(payload.Questions, PayloadQuestion{
			Q: q.Text,
			O: options,
			A: q.CorrectAnswer,
		})
	}

	rand.Shuffle(len(payload.Questions), func(i, j int) {
		payload.Questions[i], payload.Questions[j] = payload.Questions[j], payload.Questions[i]
	})

	return payload, nil
}
