package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uzquiz/quizbot/internal/domain/model"
)

// CatalogRepository определяет контракт хранилища тестов и вопросов.
type CatalogRepository interface {
	UpsertTest(ctx context.Context, test model.Test) error
	ReplaceQuestions(ctx context.Context, code string, questions []model.Question) error
	// ReplaceTest применяет загрузку целиком в одной транзакции:
	// upsert теста, удаление старых вопросов и вставка новых.
	ReplaceTest(ctx context.Context, test model.Test, questions []model.Question) error
	GetTest(ctx context.Context, code string) (*model.Test, error)
	GetQuestions(ctx context.Context, code string) ([]model.Question, error)
	ListTests(ctx context.Context) ([]model.TestInfo, error)
	// DeleteTest удаляет тест вместе с вопросами и результатами.
	DeleteTest(ctx context.Context, code string) error
}

// TestRepository реализация CatalogRepository поверх PostgreSQL.
type TestRepository struct {
	db *pgxpool.Pool
}

// NewTestRepository создает новый экземпляр TestRepository.
func NewTestRepository(db *pgxpool.Pool) *TestRepository {
	return &TestRepository{db: db}
}

// UpsertTest вставляет или перезаписывает тест по коду (last writer wins).
func (r *TestRepository) UpsertTest(ctx context.Context, test model.Test) error {
	_, err := r.db.Exec(ctx, `
                INSERT INTO tests (code, title, duration)
                VALUES ($1, $2, $3)
                ON CONFLICT (code) DO UPDATE SET
                        title    = excluded.title,
                        duration = excluded.duration
        `, test.Code, test.Title, test.Duration)
	if err != nil {
		return fmt.Errorf("failed to upsert test: %w", err)
	}
	return nil
}

// ReplaceQuestions полностью заменяет набор вопросов теста.
func (r *TestRepository) ReplaceQuestions(ctx context.Context, code string, questions []model.Question) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := replaceQuestionsTx(ctx, tx, code, questions); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceTest применяет тест и его вопросы атомарно.
func (r *TestRepository) ReplaceTest(ctx context.Context, test model.Test, questions []model.Question) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
                INSERT INTO tests (code, title, duration)
                VALUES ($1, $2, $3)
                ON CONFLICT (code) DO UPDATE SET
                        title    = excluded.title,
                        duration = excluded.duration
        `, test.Code, test.Title, test.Duration)
	if err != nil {
		return fmt.Errorf("failed to upsert test: %w", err)
	}

	if err := replaceQuestionsTx(ctx, tx, test.Code, questions); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// replaceQuestionsTx удаляет старые вопросы и вставляет новые в рамках переданной транзакции.
// Порядок вставки сохраняет порядок входной последовательности.
func replaceQuestionsTx(ctx context.Context, tx pgx.Tx, code string, questions []model.Question) error {
	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE test_code = $1`, code); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}

	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}
		_, err = tx.Exec(ctx, `
                        INSERT INTO questions (test_code, question, options, correct_answer)
                        VALUES ($1, $2, $3, $4)
                `, code, q.Text, options, q.CorrectAnswer)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	}
	return nil
}

// GetTest возвращает тест по коду или nil, если тест не найден.
func (r *TestRepository) GetTest(ctx context.Context, code string) (*model.Test, error) {
	var test model.Test
	err := r.db.QueryRow(ctx, `SELECT code, title, duration FROM tests WHERE code = $1`, code).
		Scan(&test.Code, &test.Title, &test.Duration)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	return &test, nil
}

// GetQuestions возвращает вопросы теста в порядке вставки.
func (r *TestRepository) GetQuestions(ctx context.Context, code string) ([]model.Question, error) {
	rows, err := r.db.Query(ctx, `
                SELECT id, test_code, question, options, correct_answer
                FROM questions
                WHERE test_code = $1
                ORDER BY id
        `, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var options []byte
		if err := rows.Scan(&q.ID, &q.TestCode, &q.Text, &options, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return questions, nil
}

// ListTests возвращает все тесты с количеством вопросов.
func (r *TestRepository) ListTests(ctx context.Context) ([]model.TestInfo, error) {
	rows, err := r.db.Query(ctx, `
                SELECT t.code, t.title, t.duration, COUNT(q.id)
                FROM tests t
                LEFT JOIN questions q ON q.test_code = t.code
                GROUP BY t.code, t.title, t.duration
                ORDER BY t.code
        `)
	if err != nil {
		return nil, fmt.Errorf("failed to query tests: %w", err)
	}
	defer rows.Close()

	var tests []model.TestInfo
	for rows.Next() {
		var info model.TestInfo
		if err := rows.Scan(&info.Code, &info.Title, &info.Duration, &info.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan test: %w", err)
		}
		tests = append(tests, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return tests, nil
}

// DeleteTest удаляет тест, его вопросы и связанные результаты одной транзакцией.
func (r *TestRepository) DeleteTest(ctx context.Context, code string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM results WHERE test_code = $1`, code); err != nil {
		return fmt.Errorf("failed to delete results: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE test_code = $1`, code); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tests WHERE code = $1`, code); err != nil {
		return fmt.Errorf("failed to delete test: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
