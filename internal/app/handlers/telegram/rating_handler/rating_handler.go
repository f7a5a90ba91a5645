package rating_handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	resultsService "github.com/uzquiz/quizbot/internal/domain/results/service"
)

const requestTimeout = 10 * time.Second

// RatingHandler структура для обработки команды /rating <kod>.
type RatingHandler struct {
	resultService *resultsService.ResultService
	adminID       int64
	log           *zap.Logger
}

// NewRatingHandler возвращает структуру обработчика.
func NewRatingHandler(resultService *resultsService.ResultService, adminID int64, log *zap.Logger) *RatingHandler {
	return &RatingHandler{resultService: resultService, adminID: adminID, log: log}
}

// Handle показывает оператору лучшие результаты теста.
func (h *RatingHandler) Handle(c telebot.Context) error {
	if c.Sender().ID != h.adminID {
		return nil
	}

	code := strings.TrimSpace(c.Message().Payload)
	if code == "" {
		return c.Send("Foydalanish: /rating <kod>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	results, err := h.resultService.TopResults(ctx, code)
	if err != nil {
		h.log.Error("failed to get top results", zap.String("code", code), zap.Error(err))
		return c.Send(fmt.Sprintf("❌ Xatolik: %v", err))
	}

	if len(results) == 0 {
		return c.Send(fmt.Sprintf("%s bo'yicha natijalar hali yo'q.", code))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 %s — TOP %d:\n\n", code, len(results)))
	for i, res := range results {
		sb.WriteString(fmt.Sprintf("%d. %s (@%s) — %d/%d\n",
			i+1, res.UserName, res.Nickname, res.Score, res.Total))
	}
	return c.Send(sb.String())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *RatingHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
