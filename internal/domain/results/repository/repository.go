package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uzquiz/quizbot/internal/domain/model"
)

// ResultRepository определяет контракт append-only хранилища результатов.
type ResultRepository interface {
	Insert(ctx context.Context, result model.Result) error
	TopByTest(ctx context.Context, code string, limit int) ([]model.Result, error)
}

// ResultRepositoryPg реализация ResultRepository поверх PostgreSQL.
type ResultRepositoryPg struct {
	db *pgxpool.Pool
}

// NewResultRepository создает новый экземпляр ResultRepositoryPg.
func NewResultRepository(db *pgxpool.Pool) *ResultRepositoryPg {
	return &ResultRepositoryPg{db: db}
}

// Insert добавляет результат. Строки никогда не обновляются и не удаляются,
// кроме массовой очистки при удалении родительского теста.
func (r *ResultRepositoryPg) Insert(ctx context.Context, result model.Result) error {
	_, err := r.db.Exec(ctx, `
                INSERT INTO results (user_id, user_name, nickname, test_code, test_title, score, total, submitted_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        `, result.UserID, result.UserName, result.Nickname, result.TestCode,
		result.TestTitle, result.Score, result.Total, result.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// TopByTest возвращает лучшие результаты теста по убыванию балла.
func (r *ResultRepositoryPg) TopByTest(ctx context.Context, code string, limit int) ([]model.Result, error) {
	rows, err := r.db.Query(ctx, `
                SELECT id, user_id, user_name, nickname, test_code, test_title, score, total, submitted_at
                FROM results
                WHERE test_code = $1
                ORDER BY score DESC, submitted_at ASC
                LIMIT $2
        `, code, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		var res model.Result
		if err := rows.Scan(&res.ID, &res.UserID, &res.UserName, &res.Nickname,
			&res.TestCode, &res.TestTitle, &res.Score, &res.Total, &res.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return results, nil
}
