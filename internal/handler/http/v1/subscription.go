package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Create or replace a subscription
// @Description Subscribe a user to reports inside a circle. A user has at most one subscription.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param subscription body SubscriptionRequest true "Subscription area"
// @Success 200 {object} SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subscriptions [put]
func (h *Handler) upsertSubscription(c *gin.Context) {
	var input SubscriptionRequest
	log := h.logger.WithField("method", "upsertSubscription")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToSubscriptionModel(input)
	if err := h.subscriptionService.Subscribe(c.Request.Context(), model); err != nil {
		respondServiceError(c, log, err, "subscription not found")
		return
	}
	c.JSON(http.StatusOK, ModelToSubscriptionResponse(model))
}

// @Summary Get a user's subscription
// @Tags Subscriptions
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} SubscriptionResponse
// @Failure 404 {object} map[string]string "Subscription not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subscriptions/{user_id} [get]
func (h *Handler) getSubscription(c *gin.Context) {
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "getSubscription").WithField("user_id", userID)

	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, log, err, "subscription not found")
		return
	}
	c.JSON(http.StatusOK, ModelToSubscriptionResponse(sub))
}

// @Summary Delete a user's subscription
// @Tags Subscriptions
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subscriptions/{user_id} [delete]
func (h *Handler) deleteSubscription(c *gin.Context) {
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "deleteSubscription").WithField("user_id", userID)

	if err := h.subscriptionService.Unsubscribe(c.Request.Context(), userID); err != nil {
		respondServiceError(c, log, err, "subscription not found")
		return
	}
	c.Status(http.StatusNoContent)
}
