package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uzquiz/quizbot/internal/infra/config"
)

// InitDatabase устанавливает подключение к базе данных.
func InitDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(context.Background(), connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	if err := migrate(context.Background(), db); err != nil {
		return nil, fmt.Errorf("%s: failed to migrate: %w", op, err)
	}

	return db, nil
}

// migrate создает таблицы при первом запуске.
func migrate(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tests (
                        code     TEXT PRIMARY KEY,
                        title    TEXT NOT NULL,
                        duration INTEGER NOT NULL
                )`,
		`CREATE TABLE IF NOT EXISTS questions (
                        id             BIGSERIAL PRIMARY KEY,
                        test_code      TEXT NOT NULL,
                        question       TEXT NOT NULL,
                        options        JSONB NOT NULL,
                        correct_answer TEXT NOT NULL
                )`,
		`CREATE TABLE IF NOT EXISTS users (
                        user_id      BIGINT PRIMARY KEY,
                        invited_by   BIGINT,
                        invite_count INTEGER NOT NULL DEFAULT 0,
                        joined_at    TIMESTAMPTZ NOT NULL DEFAULT now()
                )`,
		`CREATE TABLE IF NOT EXISTS results (
                        id           BIGSERIAL PRIMARY KEY,
                        user_id      BIGINT NOT NULL,
                        user_name    TEXT NOT NULL DEFAULT '',
                        nickname     TEXT NOT NULL DEFAULT '',
                        test_code    TEXT NOT NULL,
                        test_title   TEXT NOT NULL DEFAULT '',
                        score        INTEGER NOT NULL,
                        total        INTEGER NOT NULL,
                        submitted_at TIMESTAMPTZ NOT NULL
                )`,
		`CREATE INDEX IF NOT EXISTS idx_questions_test_code ON questions (test_code)`,
		`CREATE INDEX IF NOT EXISTS idx_results_test_code ON results (test_code, score DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to exec migration: %w", err)
		}
	}
	return nil
}
