package model

type Question struct {
	ID            int64    `json:"id"`
	TestCode      string   `json:"test_code"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}
