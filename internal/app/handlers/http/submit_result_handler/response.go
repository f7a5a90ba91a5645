package submit_result_handler

// SubmitResultRequest структура для данных запроса.
type SubmitResultRequest struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Nickname string `json:"nickname"`
	Code     string `json:"code"`
	Title    string `json:"title"`
	Score    int    `json:"score"`
	Total    int    `json:"total"`
}

// SubmitResultResponse структура для ответа.
type SubmitResultResponse struct {
	Status string `json:"status"`
}
