package submit_result_handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	resultsService "github.com/uzquiz/quizbot/internal/domain/results/service"
	httpResponse "github.com/uzquiz/quizbot/pkg/http"
)

const requestTimeout = 10 * time.Second

// SubmitResultHandler принимает результат теста от мини-приложения.
type SubmitResultHandler struct {
	resultService *resultsService.ResultService
	log           *zap.Logger
}

// NewSubmitResultHandler создает новый экземпляр обработчика.
func NewSubmitResultHandler(resultService *resultsService.ResultService, log *zap.Logger) *SubmitResultHandler {
	return &SubmitResultHandler{resultService: resultService, log: log}
}

// ServeHTTP метод для обработки запроса.
func (h *SubmitResultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req SubmitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpResponse.JSONResponse(w, http.StatusBadRequest, SubmitResultResponse{Status: "error"})
		return
	}

	err := h.resultService.RecordResult(ctx, resultsService.Submission{
		UserID:   req.UserID,
		UserName: req.UserName,
		Nickname: req.Nickname,
		Code:     req.Code,
		Title:    req.Title,
		Score:    req.Score,
		Total:    req.Total,
	})
	if err != nil {
		h.log.Error("failed to record result", zap.Int64("user_id", req.UserID), zap.Error(err))
		httpResponse.JSONResponse(w, http.StatusInternalServerError, SubmitResultResponse{Status: "error"})
		return
	}

	httpResponse.JSONResponse(w, http.StatusOK, SubmitResultResponse{Status: "success"})
}
