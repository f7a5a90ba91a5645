package users_count_handler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	referralService "github.com/uzquiz/quizbot/internal/domain/referral/service"
)

const requestTimeout = 10 * time.Second

// UsersCountHandler структура для обработки команды /users_count.
type UsersCountHandler struct {
	referralService *referralService.ReferralService
	adminID         int64
	log             *zap.Logger
}

// NewUsersCountHandler возвращает структуру обработчика.
func NewUsersCountHandler(referralService *referralService.ReferralService, adminID int64, log *zap.Logger) *UsersCountHandler {
	return &UsersCountHandler{referralService: referralService, adminID: adminID, log: log}
}

// Handle показывает оператору общее количество пользователей.
func (h *UsersCountHandler) Handle(c telebot.Context) error {
	if c.Sender().ID != h.adminID {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	count, err := h.referralService.CountUsers(ctx)
	if err != nil {
		h.log.Error("failed to count users", zap.Error(err))
		return c.Send(fmt.Sprintf("❌ Xatolik: %v", err))
	}

	return c.Send(fmt.Sprintf("👥 Foydalanuvchilar soni: %d", count))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *UsersCountHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
