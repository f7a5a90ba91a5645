package delete_test_handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	catalogService "github.com/uzquiz/quizbot/internal/domain/catalog/service"
)

const requestTimeout = 10 * time.Second

// DeleteTestHandler структура для обработки команды /delete_test <kod>.
type DeleteTestHandler struct {
	catalogService *catalogService.CatalogService
	adminID        int64
	log            *zap.Logger
}

// NewDeleteTestHandler возвращает структуру обработчика.
func NewDeleteTestHandler(catalogService *catalogService.CatalogService, adminID int64, log *zap.Logger) *DeleteTestHandler {
	return &DeleteTestHandler{catalogService: catalogService, adminID: adminID, log: log}
}

// Handle удаляет тест вместе с вопросами и результатами.
func (h *DeleteTestHandler) Handle(c telebot.Context) error {
	if c.Sender().ID != h.adminID {
		return nil
	}

	code := strings.TrimSpace(c.Message().Payload)
	if code == "" {
		return c.Send("Foydalanish: /delete_test <kod>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := h.catalogService.DeleteTest(ctx, code); err != nil {
		if errors.Is(err, catalogService.ErrTestNotFound) {
			return c.Send(fmt.Sprintf("❌ Test topilmadi: %s", code))
		}
		h.log.Error("failed to delete test", zap.String("code", code), zap.Error(err))
		return c.Send(fmt.Sprintf("❌ Xatolik: %v", err))
	}

	return c.Send(fmt.Sprintf("🗑 Test o'chirildi: %s (savollari va natijalari bilan).", code))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *DeleteTestHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
