package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Рассылка уведомлений, вызывается из браузера и хуков
	notify := api.Group("/notify", corsMiddleware())
	{
		notify.POST("", h.notifySubscribers)
		notify.OPTIONS("", h.notifyPreflight)
	}

	reports := api.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/scores", h.listReportScores)
		reports.GET("/:id", h.getReport)
		reports.PUT("/:id/votes", h.castVote)
		reports.DELETE("/:id/votes/:user_id", h.retractVote)
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.PUT("", h.upsertSubscription)
		subscriptions.GET("/:user_id", h.getSubscription)
		subscriptions.DELETE("/:user_id", h.deleteSubscription)
	}

	// Модерация доступна только по API-ключу
	admin := api.Group("/admin", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		admin.PATCH("/reports/:id/status", h.updateReportStatus)
	}

	api.GET("/categories", h.listCategories)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
