package service

import (
	"context"
	"fmt"

	"github.com/uzquiz/quizbot/internal/domain/referral/repository"
)

// InviteThreshold — количество приглашений, открывающее доступ к тестам.
const InviteThreshold = 3

// ReferralService содержит логику регистрации и реферального гейта.
type ReferralService struct {
	repo repository.ReferralRepository
}

// NewReferralService создает новый экземпляр ReferralService.
func NewReferralService(repo repository.ReferralRepository) *ReferralService {
	return &ReferralService{repo: repo}
}

// GetOrRegister возвращает состояние пользователя, регистрируя его при первом обращении.
// Самоприглашение не считается: inviter сбрасывается в NULL, регистрация продолжается.
// Для уже существующего пользователя переданный inviter игнорируется.
func (s *ReferralService) GetOrRegister(ctx context.Context, userID int64, invitedBy *int64) (bool, int, error) {
	if invitedBy != nil && *invitedBy == userID {
		invitedBy = nil
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return false, user.InviteCount, nil
	}

	inserted, err := s.repo.Register(ctx, userID, invitedBy)
	if err != nil {
		return false, 0, fmt.Errorf("failed to register user: %w", err)
	}
	if !inserted {
		// Конкурентная регистрация: строку уже вставил параллельный запрос.
		user, err := s.repo.GetUser(ctx, userID)
		if err != nil {
			return false, 0, fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return false, 0, fmt.Errorf("user %d disappeared after registration", userID)
		}
		return false, user.InviteCount, nil
	}

	return true, 0, nil
}

// IsUnlocked сообщает, открыт ли пользователю доступ к тестам:
// оператор всегда открыт, остальным нужно InviteThreshold приглашений.
func (s *ReferralService) IsUnlocked(ctx context.Context, userID, adminID int64) (bool, error) {
	if userID == adminID {
		return true, nil
	}
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return false, nil
	}
	return user.InviteCount >= InviteThreshold, nil
}

// InviteCount возвращает текущий счётчик приглашений (0 для незарегистрированных).
func (s *ReferralService) InviteCount(ctx context.Context, userID int64) (int, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, nil
	}
	return user.InviteCount, nil
}

// ForceUnlock выставляет счётчик приглашений на порог — намеренный обходной путь,
// вызываемый отдельной командой, а не нарушение инварианта счётчика.
func (s *ReferralService) ForceUnlock(ctx context.Context, userID int64) error {
	if err := s.repo.ForceUnlock(ctx, userID, InviteThreshold); err != nil {
		return fmt.Errorf("failed to force unlock: %w", err)
	}
	return nil
}

// CountUsers возвращает общее количество зарегистрированных пользователей.
func (s *ReferralService) CountUsers(ctx context.Context) (int, error) {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
