package models

import "time"

const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Vote - голос пользователя за отчёт, один на пару (отчёт, пользователь)
type Vote struct {
	ReportID  int64     `json:"report_id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

// IsValidVoteType проверяет тип голоса
func IsValidVoteType(voteType string) bool {
	return voteType == VoteUp || voteType == VoteDown
}
