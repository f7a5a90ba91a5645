package unlock_handler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	referralService "github.com/uzquiz/quizbot/internal/domain/referral/service"
)

const requestTimeout = 10 * time.Second

// UnlockHandler структура для обработки команды принудительной разблокировки.
// Это намеренный обходной путь мимо реферального гейта, а не его нарушение.
type UnlockHandler struct {
	referralService *referralService.ReferralService
	log             *zap.Logger
}

// NewUnlockHandler возвращает структуру обработчика.
func NewUnlockHandler(referralService *referralService.ReferralService, log *zap.Logger) *UnlockHandler {
	return &UnlockHandler{referralService: referralService, log: log}
}

// Handle выставляет счётчик приглашений отправителя на порог разблокировки.
func (h *UnlockHandler) Handle(c telebot.Context) error {
	sender := c.Sender()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := h.referralService.ForceUnlock(ctx, sender.ID); err != nil {
		h.log.Error("failed to force unlock", zap.Int64("user_id", sender.ID), zap.Error(err))
		return c.Send("❌ Xatolik yuz berdi. Birozdan so'ng qayta urinib ko'ring.")
	}

	return c.Send("✅ Kirish ochildi! /start buyrug'ini qayta yuboring.")
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *UnlockHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
