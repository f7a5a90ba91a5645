package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uzquiz/quizbot/internal/domain/model"
)

// ReferralRepository определяет контракт хранилища пользователей и счётчика приглашений.
type ReferralRepository interface {
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	// Register вставляет нового пользователя и, если указан пригласивший,
	// увеличивает его счётчик в той же транзакции. Повторная регистрация
	// не является ошибкой: возвращается inserted=false.
	Register(ctx context.Context, userID int64, invitedBy *int64) (bool, error)
	// ForceUnlock выставляет счётчик приглашений пользователя в указанное значение (upsert).
	ForceUnlock(ctx context.Context, userID int64, inviteCount int) error
	CountUsers(ctx context.Context) (int, error)
}

// UserRepository реализация ReferralRepository поверх PostgreSQL.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser возвращает пользователя или nil, если он не зарегистрирован.
func (r *UserRepository) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := r.db.QueryRow(ctx, `
                SELECT user_id, invited_by, invite_count, joined_at
                FROM users
                WHERE user_id = $1
        `, userID).Scan(&user.UserID, &user.InvitedBy, &user.InviteCount, &user.JoinedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Register вставляет пользователя (ON CONFLICT DO NOTHING) и начисляет приглашение.
// Начисление идёт в одной транзакции со вставкой, чтобы не кредитовать пригласившего
// за несостоявшуюся регистрацию. Обновление несуществующего пригласившего — no-op.
func (r *UserRepository) Register(ctx context.Context, userID int64, invitedBy *int64) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
                INSERT INTO users (user_id, invited_by, invite_count, joined_at)
                VALUES ($1, $2, 0, CURRENT_TIMESTAMP)
                ON CONFLICT (user_id) DO NOTHING
        `, userID, invitedBy)
	if err != nil {
		return false, fmt.Errorf("failed to insert user: %w", err)
	}

	inserted := result.RowsAffected() > 0

	if inserted && invitedBy != nil {
		_, err := tx.Exec(ctx, `
                        UPDATE users SET invite_count = invite_count + 1 WHERE user_id = $1
                `, *invitedBy)
		if err != nil {
			return false, fmt.Errorf("failed to increment invite count: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

// ForceUnlock выставляет invite_count напрямую, регистрируя пользователя при необходимости.
func (r *UserRepository) ForceUnlock(ctx context.Context, userID int64, inviteCount int) error {
	_, err := r.db.Exec(ctx, `
                INSERT INTO users (user_id, invited_by, invite_count, joined_at)
                VALUES ($1, NULL, $2, CURRENT_TIMESTAMP)
                ON CONFLICT (user_id) DO UPDATE SET invite_count = excluded.invite_count
        `, userID, inviteCount)
	if err != nil {
		return fmt.Errorf("failed to force unlock user: %w", err)
	}
	return nil
}

// CountUsers возвращает общее количество зарегистрированных пользователей.
func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
