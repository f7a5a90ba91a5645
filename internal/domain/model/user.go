package model

import "time"

type User struct {
	UserID      int64     `json:"user_id"`
	InvitedBy   *int64    `json:"invited_by,omitempty"`
	InviteCount int       `json:"invite_count"`
	JoinedAt    time.Time `json:"joined_at"`
}
