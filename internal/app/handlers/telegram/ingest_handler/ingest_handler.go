package ingest_handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	catalogService "github.com/uzquiz/quizbot/internal/domain/catalog/service"
	"github.com/uzquiz/quizbot/internal/ingest"
)

const requestTimeout = 10 * time.Second

// IngestHandler принимает текстовые сообщения и выполняет массовую загрузку
// тестов оператором. Сообщения без "|" и сообщения не от оператора игнорируются.
type IngestHandler struct {
	catalogService *catalogService.CatalogService
	adminID        int64
	log            *zap.Logger
}

// NewIngestHandler возвращает структуру обработчика.
func NewIngestHandler(catalogService *catalogService.CatalogService, adminID int64, log *zap.Logger) *IngestHandler {
	return &IngestHandler{catalogService: catalogService, adminID: adminID, log: log}
}

// Handle разбирает пакет целиком до какого-либо обращения к хранилищу:
// одна некорректная строка отклоняет всю загрузку без частичной записи.
func (h *IngestHandler) Handle(c telebot.Context) error {
	if c.Sender().ID != h.adminID {
		return nil
	}

	text := c.Text()
	if !strings.Contains(text, "|") {
		return nil
	}

	up, err := ingest.Parse(text)
	if err != nil {
		// Оператору показываем исходную ошибку для диагностики.
		return c.Send(fmt.Sprintf("❌ Yuklash rad etildi: %v", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := h.catalogService.SaveUpload(ctx, up.Test, up.Questions); err != nil {
		h.log.Error("failed to save upload", zap.String("code", up.Test.Code), zap.Error(err))
		return c.Send(fmt.Sprintf("❌ Saqlashda xatolik: %v", err))
	}

	return c.Send(fmt.Sprintf("✅ Test yaratildi: %s — %s (%d daqiqa, %d ta savol).",
		up.Test.Code, up.Test.Title, up.Test.Duration, len(up.Questions)))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *IngestHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
