package models

import (
	"time"
)

// Subscription - круговая область, о новых отчётах внутри которой пользователь хочет узнавать.
// У пользователя не больше одной подписки.
type Subscription struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	CenterLat    float64   `json:"center_lat"`
	CenterLng    float64   `json:"center_lng"`
	RadiusMeters float64   `json:"radius_m"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
