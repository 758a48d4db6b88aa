package models

import (
	"time"
)

// Статусы модерации отчёта
const (
	ReportStatusPendingReview = "pending_review"
	ReportStatusOpen          = "open"
	ReportStatusApproved      = "approved"
	ReportStatusVerified      = "verified"
	ReportStatusResolved      = "resolved"
	ReportStatusRejected      = "rejected"
)

var reportStatuses = map[string]struct{}{
	ReportStatusPendingReview: {},
	ReportStatusOpen:          {},
	ReportStatusApproved:      {},
	ReportStatusVerified:      {},
	ReportStatusResolved:      {},
	ReportStatusRejected:      {},
}

// IsValidReportStatus проверяет, что статус входит в известный набор
func IsValidReportStatus(status string) bool {
	_, ok := reportStatuses[status]
	return ok
}

// Report - сообщение пользователя о происшествии с координатами
type Report struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lng"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReportScore - агрегат голосов по отчёту
type ReportScore struct {
	ReportID    int64     `json:"report_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	Score       int       `json:"score"`
}
