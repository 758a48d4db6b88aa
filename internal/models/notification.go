package models

// NotificationStatusNotified - подписчик отобран и уведомление передано на доставку
const NotificationStatusNotified = "notified"

// NotificationIntent - решение уведомить конкретного пользователя о конкретном отчёте
type NotificationIntent struct {
	UserID   string `json:"user_id"`
	ReportID int64  `json:"report_id"`
	Status   string `json:"status"`
}

// NotifyResult - итог одной рассылки по отчёту.
// SubscriptionCount - сколько подписок было проверено.
type NotifyResult struct {
	NotifiedCount     int                  `json:"notified_count"`
	Notifications     []NotificationIntent `json:"notifications"`
	SubscriptionCount int                  `json:"subscription_count"`
}
