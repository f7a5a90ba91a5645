package model

import "time"

type Result struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name"`
	Nickname    string    `json:"nickname"`
	TestCode    string    `json:"test_code"`
	TestTitle   string    `json:"test_title"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}
