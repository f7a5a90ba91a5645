package tests_handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	catalogService "github.com/uzquiz/quizbot/internal/domain/catalog/service"
)

const requestTimeout = 10 * time.Second

// TestsHandler структура для обработки команды /tests.
type TestsHandler struct {
	catalogService *catalogService.CatalogService
	adminID        int64
	log            *zap.Logger
}

// NewTestsHandler возвращает структуру обработчика.
func NewTestsHandler(catalogService *catalogService.CatalogService, adminID int64, log *zap.Logger) *TestsHandler {
	return &TestsHandler{catalogService: catalogService, adminID: adminID, log: log}
}

// Handle показывает оператору список тестов с количеством вопросов.
func (h *TestsHandler) Handle(c telebot.Context) error {
	if c.Sender().ID != h.adminID {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	tests, err := h.catalogService.ListTests(ctx)
	if err != nil {
		h.log.Error("failed to list tests", zap.Error(err))
		return c.Send(fmt.Sprintf("❌ Xatolik: %v", err))
	}

	if len(tests) == 0 {
		return c.Send("Hozircha testlar yo'q.")
	}

	var sb strings.Builder
	sb.WriteString("📚 Testlar:\n\n")
	for _, t := range tests {
		sb.WriteString(fmt.Sprintf("• %s — %s (%d daqiqa, %d ta savol)\n",
			t.Code, t.Title, t.Duration, t.QuestionCount))
	}
	return c.Send(sb.String())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *TestsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
