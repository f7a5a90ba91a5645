package service

import (
	"context"
	"errors"
	"testing"

	"github.com/uzquiz/quizbot/internal/domain/model"
)

// fakeCatalogRepo — каталог тестов в памяти.
type fakeCatalogRepo struct {
	tests     map[string]model.Test
	questions map[string][]model.Question
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		tests:     make(map[string]model.Test),
		questions: make(map[string][]model.Question),
	}
}

func (f *fakeCatalogRepo) UpsertTest(_ context.Context, test model.Test) error {
	f.tests[test.Code] = test
	return nil
}

func (f *fakeCatalogRepo) ReplaceQuestions(_ context.Context, code string, questions []model.Question) error {
	f.questions[code] = append([]model.Question(nil), questions...)
	return nil
}

func (f *fakeCatalogRepo) ReplaceTest(_ context.Context, test model.Test, questions []model.Question) error {
	f.tests[test.Code] = test
	f.questions[test.Code] = append([]model.Question(nil), questions...)
	return nil
}

func (f *fakeCatalogRepo) GetTest(_ context.Context, code string) (*model.Test, error) {
	test, ok := f.tests[code]
	if !ok {
		return nil, nil
	}
	return &test, nil
}

func (f *fakeCatalogRepo) GetQuestions(_ context.Context, code string) ([]model.Question, error) {
	return f.questions[code], nil
}

func (f *fakeCatalogRepo) ListTests(_ context.Context) ([]model.TestInfo, error) {
	var infos []model.TestInfo
	for _, test := range f.tests {
		infos = append(infos, model.TestInfo{Test: test, QuestionCount: len(f.questions[test.Code])})
	}
	return infos, nil
}

func (f *fakeCatalogRepo) DeleteTest(_ context.Context, code string) error {
	delete(f.tests, code)
	delete(f.questions, code)
	return nil
}

// TestGetTest_NotFound проверяет, что отсутствующий код даёт ErrTestNotFound.
func TestGetTest_NotFound(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())

	_, err := svc.GetTest(context.Background(), "999")
	if !errors.Is(err, ErrTestNotFound) {
		t.Errorf("Ожидалась ErrTestNotFound, получено %v", err)
	}
}

// TestSaveUpload_ReplacesWholeTest проверяет, что повторная загрузка того же кода
// полностью заменяет вопросы, а не дописывает новые к старым.
func TestSaveUpload_ReplacesWholeTest(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()

	first := []model.Question{
		{TestCode: "101", Text: "eski savol 1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{TestCode: "101", Text: "eski savol 2", Options: []string{"a", "b"}, CorrectAnswer: "b"},
		{TestCode: "101", Text: "eski savol 3", Options: []string{"a", "b"}, CorrectAnswer: "a"},
	}
	if err := svc.SaveUpload(ctx, model.Test{Code: "101", Title: "Eski", Duration: 10}, first); err != nil {
		t.Fatalf("SaveUpload вернул ошибку: %v", err)
	}

	second := []model.Question{
		{TestCode: "101", Text: "yangi savol", Options: []string{"a", "b"}, CorrectAnswer: "a"},
	}
	if err := svc.SaveUpload(ctx, model.Test{Code: "101", Title: "Yangi", Duration: 20}, second); err != nil {
		t.Fatalf("SaveUpload вернул ошибку: %v", err)
	}

	test, err := svc.GetTest(ctx, "101")
	if err != nil {
		t.Fatalf("GetTest вернул ошибку: %v", err)
	}
	if test.Title != "Yangi" || test.Duration != 20 {
		t.Errorf("Заголовок не перезаписан: %+v", test)
	}

	questions, err := svc.GetQuestions(ctx, "101")
	if err != nil {
		t.Fatalf("GetQuestions вернул ошибку: %v", err)
	}
	if len(questions) != 1 || questions[0].Text != "yangi savol" {
		t.Errorf("Вопросы не заменены целиком: %+v", questions)
	}
}

// TestGetQuestions_Empty проверяет, что пустой набор вопросов не ошибка.
func TestGetQuestions_Empty(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()

	if err := svc.UpsertTest(ctx, model.Test{Code: "101", Title: "Math", Duration: 10}); err != nil {
		t.Fatalf("UpsertTest вернул ошибку: %v", err)
	}

	questions, err := svc.GetQuestions(ctx, "101")
	if err != nil {
		t.Fatalf("GetQuestions вернул ошибку: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("Ожидался пустой набор, получено %d", len(questions))
	}
}

// TestDeleteTest проверяет удаление и ошибку для несуществующего кода.
func TestDeleteTest(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()

	if err := svc.SaveUpload(ctx, model.Test{Code: "101", Title: "Math", Duration: 10}, nil); err != nil {
		t.Fatalf("SaveUpload вернул ошибку: %v", err)
	}

	if err := svc.DeleteTest(ctx, "101"); err != nil {
		t.Fatalf("DeleteTest вернул ошибку: %v", err)
	}
	if _, err := svc.GetTest(ctx, "101"); !errors.Is(err, ErrTestNotFound) {
		t.Errorf("Тест должен быть удалён, получено %v", err)
	}

	if err := svc.DeleteTest(ctx, "101"); !errors.Is(err, ErrTestNotFound) {
		t.Errorf("Повторное удаление должно давать ErrTestNotFound, получено %v", err)
	}
}
