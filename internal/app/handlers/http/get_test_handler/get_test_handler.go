package get_test_handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	catalogService "github.com/uzquiz/quizbot/internal/domain/catalog/service"
	quizService "github.com/uzquiz/quizbot/internal/domain/quiz/service"
	httpResponse "github.com/uzquiz/quizbot/pkg/http"
)

const requestTimeout = 10 * time.Second

// GetTestHandler отдаёт мини-приложению перемешанный тест по коду.
type GetTestHandler struct {
	quizService *quizService.QuizService
	log         *zap.Logger
}

// NewGetTestHandler создает новый экземпляр обработчика.
func NewGetTestHandler(quizService *quizService.QuizService, log *zap.Logger) *GetTestHandler {
	return &GetTestHandler{quizService: quizService, log: log}
}

// ServeHTTP метод для обработки запроса.
func (h *GetTestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	code := r.PathValue("code")

	payload, err := h.quizService.BuildQuizPayload(ctx, code)
	if err != nil {
		if errors.Is(err, catalogService.ErrTestNotFound) {
			// Мини-приложение различает ошибки по телу, а не по статусу,
			// поэтому неизвестный код отвечает 200 с {"error": ...}.
			httpResponse.ErrorResponse(w, http.StatusOK, "Not found")
			return
		}
		h.log.Error("failed to build quiz payload", zap.String("code", code), zap.Error(err))
		httpResponse.ErrorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpResponse.JSONResponse(w, http.StatusOK, payload)
}
