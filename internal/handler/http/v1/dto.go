package v1

import (
	"time"
)

// NotifyRequest DTO для запуска рассылки по отчёту
// @Description DTO для запуска рассылки по отчёту
type NotifyRequest struct {
	ReportID int64 `json:"report_id" validate:"gt=0" example:"42"`
}

// NotifiedUser - один уведомлённый подписчик
// @Description Один уведомлённый подписчик
type NotifiedUser struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// NotifyResponse DTO для ответа рассылки
// @Description DTO для ответа рассылки
type NotifyResponse struct {
	Message       string         `json:"message"`
	NotifiedUsers []NotifiedUser `json:"notified_users"`
}

// FlattenedErrors - ошибки проверки тела запроса на уровне формы и по полям
// @Description Ошибки проверки тела запроса на уровне формы и по полям
type FlattenedErrors struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// InvalidInputResponse DTO для ответа 400 на запрос рассылки
// @Description DTO для ответа 400 на запрос рассылки
type InvalidInputResponse struct {
	Error   string          `json:"error"`
	Details FlattenedErrors `json:"details"`
}

// CreateReportRequest DTO для создания отчёта
// @Description DTO для создания отчёта
type CreateReportRequest struct {
	UserID      string  `json:"user_id" validate:"required,max=128"`
	Latitude    float64 `json:"lat" validate:"latitude"`
	Longitude   float64 `json:"lng" validate:"longitude"`
	Category    string  `json:"category" validate:"required,report_category"`
	Description string  `json:"description" validate:"required,min=1,max=2000"`
	PhotoURL    string  `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// ReportResponse DTO для ответа с информацией об отчёте
// @Description DTO для ответа с информацией об отчёте
type ReportResponse struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lng"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReportScoreResponse DTO для рейтинга отчёта
// @Description DTO для рейтинга отчёта
type ReportScoreResponse struct {
	ReportID    int64     `json:"report_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	Score       int       `json:"score"`
}

// UpdateReportStatusRequest DTO для смены статуса модератором
// @Description DTO для смены статуса модератором
type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending_review open approved verified resolved rejected"`
}

// CastVoteRequest DTO для голоса за отчёт
// @Description DTO для голоса за отчёт
type CastVoteRequest struct {
	UserID   string `json:"user_id" validate:"required,max=128"`
	VoteType string `json:"vote_type" validate:"required,oneof=upvote downvote"`
}

// SubscriptionRequest DTO для создания или замены подписки
// @Description DTO для создания или замены подписки
type SubscriptionRequest struct {
	UserID       string  `json:"user_id" validate:"required,max=128"`
	CenterLat    float64 `json:"center_lat" validate:"latitude"`
	CenterLng    float64 `json:"center_lng" validate:"longitude"`
	RadiusMeters float64 `json:"radius_m" validate:"gt=0,lte=50000"`
}

// SubscriptionResponse DTO для ответа с подпиской
// @Description DTO для ответа с подпиской
type SubscriptionResponse struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	CenterLat    float64   `json:"center_lat"`
	CenterLng    float64   `json:"center_lng"`
	RadiusMeters float64   `json:"radius_m"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
