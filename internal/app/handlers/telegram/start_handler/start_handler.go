package start_handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	referralService "github.com/uzquiz/quizbot/internal/domain/referral/service"
)

const requestTimeout = 10 * time.Second

// StartHandler структура для обработки команды /start.
type StartHandler struct {
	referralService *referralService.ReferralService
	adminID         int64
	webAppURL       string
	log             *zap.Logger
}

// NewStartHandler возвращает структуру обработчика.
func NewStartHandler(referralService *referralService.ReferralService, adminID int64, webAppURL string, log *zap.Logger) *StartHandler {
	return &StartHandler{
		referralService: referralService,
		adminID:         adminID,
		webAppURL:       webAppURL,
		log:             log,
	}
}

// Handle регистрирует пользователя (начисляя приглашение, если пришёл по ссылке)
// и показывает либо кнопку мини-приложения, либо реферальную ссылку.
func (h *StartHandler) Handle(c telebot.Context) error {
	sender := c.Sender()

	// Аргумент /start — ID пригласившего из реферальной ссылки.
	var invitedBy *int64
	if payload := strings.TrimSpace(c.Message().Payload); payload != "" {
		if id, err := strconv.ParseInt(payload, 10, 64); err == nil {
			invitedBy = &id
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, _, err := h.referralService.GetOrRegister(ctx, sender.ID, invitedBy); err != nil {
		h.log.Error("failed to register user", zap.Int64("user_id", sender.ID), zap.Error(err))
		return c.Send("❌ Xatolik yuz berdi. Birozdan so'ng qayta urinib ko'ring.")
	}

	unlocked, err := h.referralService.IsUnlocked(ctx, sender.ID, h.adminID)
	if err != nil {
		h.log.Error("failed to check unlock state", zap.Int64("user_id", sender.ID), zap.Error(err))
		return c.Send("❌ Xatolik yuz berdi. Birozdan so'ng qayta urinib ko'ring.")
	}

	if !unlocked {
		count, err := h.referralService.InviteCount(ctx, sender.ID)
		if err != nil {
			h.log.Error("failed to get invite count", zap.Int64("user_id", sender.ID), zap.Error(err))
			return c.Send("❌ Xatolik yuz berdi. Birozdan so'ng qayta urinib ko'ring.")
		}
		link := fmt.Sprintf("https://t.me/%s?start=%d", c.Bot().(*telebot.Bot).Me.Username, sender.ID)
		return c.Send(fmt.Sprintf(
			"Assalomu alaykum, %s! 👋\n\n"+
				"🔒 Testlarni ochish uchun %d ta do'stingizni taklif qiling.\n\n"+
				"👥 Takliflar: %d/%d\n\n"+
				"🔗 Sizning havolangiz:\n%s",
			sender.FirstName, referralService.InviteThreshold, count, referralService.InviteThreshold, link))
	}

	markup := &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{{
			{Text: "📝 Testni ochish", WebApp: &telebot.WebApp{URL: h.webAppURL}},
		}},
	}
	return c.Send(
		fmt.Sprintf("Assalomu alaykum, %s! 👋\n\nTest kodini kiritish uchun tugmani bosing.", sender.FirstName),
		markup)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
