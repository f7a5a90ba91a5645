package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/uzquiz/quizbot/internal/domain/model"
	"github.com/uzquiz/quizbot/internal/domain/results/repository"
	"github.com/uzquiz/quizbot/pkg/sanitize"
)

// ratingLimit — размер таблицы лидеров для /rating.
const ratingLimit = 10

// Notifier доставляет сообщение оператору. Доставка best-effort:
// ошибка уведомления никогда не влияет на результат записи.
type Notifier interface {
	Notify(text string) error
}

// Submission — результат теста, присланный мини-приложением.
type Submission struct {
	UserID   int64
	UserName string
	Nickname string
	Code     string
	Title    string
	Score    int
	Total    int
}

// ResultService записывает результаты и уведомляет оператора.
type ResultService struct {
	repo     repository.ResultRepository
	notifier Notifier
	log      *zap.Logger
}

// NewResultService создает новый экземпляр ResultService.
func NewResultService(repo repository.ResultRepository, notifier Notifier, log *zap.Logger) *ResultService {
	return &ResultService{repo: repo, notifier: notifier, log: log}
}

// RecordResult очищает отображаемые строки, сохраняет результат и после фиксации
// отправляет уведомление оператору. Сбой уведомления логируется и не откатывает
// запись: успех возвращается, как только строка долговечно сохранена.
func (s *ResultService) RecordResult(ctx context.Context, sub Submission) error {
	result := model.Result{
		UserID:      sub.UserID,
		UserName:    sanitize.Clean(sub.UserName),
		Nickname:    sanitize.Clean(sub.Nickname),
		TestCode:    sub.Code,
		TestTitle:   sanitize.Clean(sub.Title),
		Score:       sub.Score,
		Total:       sub.Total,
		SubmittedAt: time.Now(),
	}

	if err := s.repo.Insert(ctx, result); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	text := fmt.Sprintf("📊 Yangi natija!\n\n👤 %s (@%s)\n📝 %s (%s)\n✅ Natija: %d/%d",
		result.UserName, result.Nickname, result.TestTitle, result.TestCode, result.Score, result.Total)
	if err := s.notifier.Notify(text); err != nil {
		s.log.Warn("operator notification failed",
			zap.Int64("user_id", result.UserID),
			zap.String("test_code", result.TestCode),
			zap.Error(err))
	}

	return nil
}

// TopResults возвращает таблицу лидеров теста.
func (s *ResultService) TopResults(ctx context.Context, code string) ([]model.Result, error) {
	results, err := s.repo.TopByTest(ctx, code, ratingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top results: %w", err)
	}
	return results, nil
}
