package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/uzquiz/quizbot/internal/domain/catalog/repository"
	"github.com/uzquiz/quizbot/internal/domain/model"
)

// ErrTestNotFound возвращается, когда тест с указанным кодом отсутствует в каталоге.
var ErrTestNotFound = errors.New("test not found")

// CatalogService содержит бизнес-операции каталога тестов.
type CatalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// SaveUpload применяет загрузку администратора целиком: тест и все его вопросы
// сохраняются в одной транзакции, частичная загрузка невозможна.
func (s *CatalogService) SaveUpload(ctx context.Context, test model.Test, questions []model.Question) error {
	if err := s.repo.ReplaceTest(ctx, test, questions); err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	return nil
}

// UpsertTest вставляет или перезаписывает тест по коду.
func (s *CatalogService) UpsertTest(ctx context.Context, test model.Test) error {
	if err := s.repo.UpsertTest(ctx, test); err != nil {
		return fmt.Errorf("failed to upsert test: %w", err)
	}
	return nil
}

// ReplaceQuestions полностью заменяет набор вопросов теста.
func (s *CatalogService) ReplaceQuestions(ctx context.Context, code string, questions []model.Question) error {
	if err := s.repo.ReplaceQuestions(ctx, code, questions); err != nil {
		return fmt.Errorf("failed to replace questions: %w", err)
	}
	return nil
}

// GetTest возвращает тест по коду или ErrTestNotFound.
func (s *CatalogService) GetTest(ctx context.Context, code string) (*model.Test, error) {
	test, err := s.repo.GetTest(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	if test == nil {
		return nil, ErrTestNotFound
	}
	return test, nil
}

// GetQuestions возвращает вопросы теста в порядке вставки.
// Пустой набор не является ошибкой.
func (s *CatalogService) GetQuestions(ctx context.Context, code string) ([]model.Question, error) {
	questions, err := s.repo.GetQuestions(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

// ListTests возвращает все тесты с количеством вопросов.
func (s *CatalogService) ListTests(ctx context.Context) ([]model.TestInfo, error) {
	tests, err := s.repo.ListTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	return tests, nil
}

// DeleteTest удаляет тест, его вопросы и результаты. Для несуществующего кода
// возвращает ErrTestNotFound.
func (s *CatalogService) DeleteTest(ctx context.Context, code string) error {
	test, err := s.repo.GetTest(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to get test: %w", err)
	}
	if test == nil {
		return ErrTestNotFound
	}
	if err := s.repo.DeleteTest(ctx, code); err != nil {
		return fmt.Errorf("failed to delete test: %w", err)
	}
	return nil
}
